// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/auth"
	authmocks "github.com/carehaven/carehaven/internal/auth/mocks"
	"github.com/carehaven/carehaven/internal/care"
	caremocks "github.com/carehaven/carehaven/internal/care/mocks"
	"github.com/carehaven/carehaven/internal/observability"
)

const testSecret = "test-signing-secret"

type fixture struct {
	accounts *authmocks.MockAccountRepository
	hasher   *authmocks.MockPasswordHasher
	notifier *authmocks.MockResetNotifier
	tx       *authmocks.MockTransactor
	tokens   *auth.TokenService

	elders   *caremocks.MockElderRepository
	invoices *caremocks.MockInvoiceRepository
	contacts *caremocks.MockContactRepository
	lookup   *caremocks.MockAccountLookup

	metrics *observability.Metrics
	logs    *bytes.Buffer
	server  *Server
}

func newFixture(t *testing.T, development bool) *fixture {
	t.Helper()

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	f := &fixture{
		accounts: authmocks.NewMockAccountRepository(t),
		hasher:   authmocks.NewMockPasswordHasher(t),
		notifier: authmocks.NewMockResetNotifier(t),
		tx:       authmocks.NewMockTransactor(t),
		tokens:   tokens,
		elders:   caremocks.NewMockElderRepository(t),
		invoices: caremocks.NewMockInvoiceRepository(t),
		contacts: caremocks.NewMockContactRepository(t),
		lookup:   caremocks.NewMockAccountLookup(t),
		metrics:  observability.NewMetrics(prometheus.NewRegistry()),
		logs:     &bytes.Buffer{},
	}
	logger := slog.New(slog.NewJSONHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	authSvc, err := auth.NewService(f.accounts, f.tx, f.hasher, tokens, f.notifier, auth.WithLogger(logger))
	require.NoError(t, err)
	gate, err := auth.NewGate(tokens, f.accounts)
	require.NoError(t, err)
	careSvc, err := care.NewService(care.ServiceConfig{
		Elders:        f.elders,
		Caregivers:    caremocks.NewMockCaregiverRepository(t),
		Staff:         caremocks.NewMockStaffRepository(t),
		Offerings:     caremocks.NewMockOfferingRepository(t),
		Bookings:      caremocks.NewMockBookingRepository(t),
		Invoices:      f.invoices,
		Payments:      caremocks.NewMockPaymentRepository(t),
		Documents:     caremocks.NewMockDocumentRepository(t),
		Contacts:      f.contacts,
		FamilyMembers: caremocks.NewMockFamilyMemberRepository(t),
		Accounts:      f.lookup,
		Tx:            caremocks.NewMockTransactor(t),
		Logger:        logger,
	})
	require.NoError(t, err)

	f.server, err = New(Config{
		Auth:        authSvc,
		Gate:        gate,
		Care:        careSvc,
		Metrics:     f.metrics,
		Logger:      logger,
		Development: development,
	})
	require.NoError(t, err)
	return f
}

func newAccount(role auth.Role) *auth.Account {
	return &auth.Account{
		ID:           ulid.Make(),
		FirstName:    "Ann",
		LastName:     "Lee",
		Email:        "ann@x.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:         role,
		IsActive:     true,
	}
}

// signIn issues a token for account and lets the gate resolve it.
func (f *fixture) signIn(t *testing.T, account *auth.Account) string {
	t.Helper()
	token, _, err := f.tokens.Issue(account.ID, account.Role)
	require.NoError(t, err)
	f.accounts.On("GetByID", mock.Anything, account.ID).Return(account, nil)
	return token
}

type response struct {
	status  int
	body    map[string]any
	cookies []*http.Cookie
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := f.server.App().Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := response{status: resp.StatusCode, cookies: resp.Cookies()}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.body), "body: %s", raw)
	}
	return out
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, false)

	resp := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "ok", resp.body["status"])
}

func TestRegister_ReturnsTokenWithoutPasswordHash(t *testing.T) {
	f := newFixture(t, false)
	f.accounts.On("EmailExists", mock.Anything, "ann@x.com").Return(false, nil)
	f.hasher.On("IsHashed", "secret1").Return(false)
	f.hasher.On("Hash", "secret1").Return("$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", nil)
	f.accounts.On("Create", mock.Anything, mock.AnythingOfType("*auth.Account")).Return(nil)

	resp := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Ann",
		"lastName":  "Lee",
		"email":     "ann@x.com",
		"password":  "secret1",
	})

	require.Equal(t, http.StatusCreated, resp.status, resp.body)
	assert.Equal(t, true, resp.body["success"])
	assert.NotEmpty(t, resp.body["token"])
	user, ok := resp.body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", user["email"])
	assert.Equal(t, string(auth.RoleUser), user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	require.Len(t, resp.cookies, 1)
	assert.Equal(t, TokenCookie, resp.cookies[0].Name)
	assert.True(t, resp.cookies[0].HttpOnly)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthEvents.WithLabelValues("register", observability.OutcomeSuccess)))
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	f := newFixture(t, false)
	f.accounts.On("EmailExists", mock.Anything, "ann@x.com").Return(true, nil)

	resp := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Ann",
		"lastName":  "Lee",
		"email":     "ann@x.com",
		"password":  "secret1",
	})

	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, false, resp.body["success"])
	assert.Equal(t, "User already exists", resp.body["error"])
	assert.Equal(t, "AUTH_EMAIL_TAKEN", resp.body["code"])
}

func TestRegister_MalformedBody(t *testing.T) {
	f := newFixture(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.server.App().Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture, account *auth.Account)
	}{
		{
			name: "wrong password",
			setup: func(f *fixture, account *auth.Account) {
				f.accounts.On("GetByEmail", mock.Anything, "ann@x.com").Return(account, nil)
				f.hasher.On("Verify", "wrong", account.PasswordHash).Return(false, nil)
			},
		},
		{
			name: "unknown email",
			setup: func(f *fixture, _ *auth.Account) {
				f.accounts.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, auth.ErrNotFound)
				f.hasher.On("Verify", "wrong", mock.Anything).Return(false, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			tt.setup(f, newAccount(auth.RoleUser))

			resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    "ann@x.com",
				"password": "wrong",
			})

			assert.Equal(t, http.StatusUnauthorized, resp.status)
			assert.Equal(t, "Invalid credentials", resp.body["error"])
			assert.Empty(t, resp.cookies)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthEvents.WithLabelValues("login", observability.OutcomeFailure)))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t, false)
	account := newAccount(auth.RoleUser)
	f.accounts.On("GetByEmail", mock.Anything, "ann@x.com").Return(account, nil)
	f.hasher.On("Verify", "secret1", account.PasswordHash).Return(true, nil)
	f.hasher.On("NeedsUpgrade", account.PasswordHash).Return(false)
	f.accounts.On("RecordLogin", mock.Anything, account.ID, mock.Anything, (*string)(nil)).Return(nil)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ann@x.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, resp.status, resp.body)
	token, ok := resp.body["token"].(string)
	require.True(t, ok)
	identity, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, identity.AccountID)
}

func TestMe(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		f := newFixture(t, false)

		resp := f.do(t, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.status)
		assert.Equal(t, "Not authorized to access this route", resp.body["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t, false)

		resp := f.do(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.status)
		assert.Equal(t, "Not authorized to access this route", resp.body["error"])
	})

	t.Run("deleted account", func(t *testing.T) {
		f := newFixture(t, false)
		account := newAccount(auth.RoleUser)
		token, _, err := f.tokens.Issue(account.ID, account.Role)
		require.NoError(t, err)
		f.accounts.On("GetByID", mock.Anything, account.ID).Return(nil, auth.ErrNotFound)

		resp := f.do(t, http.MethodGet, "/api/auth/me", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.Equal(t, "User not found", resp.body["error"])
	})

	t.Run("bearer token", func(t *testing.T) {
		f := newFixture(t, false)
		account := newAccount(auth.RoleUser)
		token := f.signIn(t, account)

		resp := f.do(t, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, resp.status)
		data, ok := resp.body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, account.ID.String(), data["id"])
		assert.NotContains(t, data, "passwordHash")
	})

	t.Run("cookie", func(t *testing.T) {
		f := newFixture(t, false)
		account := newAccount(auth.RoleUser)
		token := f.signIn(t, account)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		resp, err := f.server.App().Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLogout_ExpiresCookie(t *testing.T) {
	f := newFixture(t, false)

	resp := f.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	require.Len(t, resp.cookies, 1)
	assert.Equal(t, TokenCookie, resp.cookies[0].Name)
	assert.Empty(t, resp.cookies[0].Value)
	assert.True(t, resp.cookies[0].Expires.Before(time.Now()))
}

func TestForgotPassword_UnknownEmailLooksLikeSuccess(t *testing.T) {
	f := newFixture(t, false)
	f.accounts.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, auth.ErrNotFound)

	resp := f.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, true, resp.body["success"])
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	f := newFixture(t, false)
	token := f.signIn(t, newAccount(auth.RoleUser))

	resp := f.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, "User role User is not authorized to access this route", resp.body["error"])
}

func TestAdminListAccounts_RoleFilter(t *testing.T) {
	f := newFixture(t, false)
	admin := newAccount(auth.RoleAdmin)
	token := f.signIn(t, admin)
	caregiver := newAccount(auth.RoleCaregiver)
	f.accounts.On("List", mock.Anything, mock.MatchedBy(func(filter auth.AccountFilter) bool {
		return filter.Role != nil && *filter.Role == auth.RoleCaregiver && filter.ActiveOnly
	})).Return([]*auth.Account{caregiver}, nil)

	resp := f.do(t, http.MethodGet, "/api/admin/users?role=caregiver&active=true", token, nil)
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	assert.Equal(t, 1.0, resp.body["count"])

	resp = f.do(t, http.MethodGet, "/api/admin/users?role=pilot", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Invalid role", resp.body["error"])
}

func TestCheckEmail(t *testing.T) {
	f := newFixture(t, false)
	token := f.signIn(t, newAccount(auth.RoleUser))
	f.accounts.On("EmailExists", mock.Anything, "taken@x.com").Return(true, nil)

	resp := f.do(t, http.MethodGet, "/api/users/email/taken%40x.com", token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, true, resp.body["exists"])
	assert.Equal(t, "Email already exists", resp.body["message"])
}

func TestElders_ListScopedToOwner(t *testing.T) {
	f := newFixture(t, false)
	owner := newAccount(auth.RoleUser)
	token := f.signIn(t, owner)
	f.elders.On("List", mock.Anything, mock.MatchedBy(func(scope *ulid.ULID) bool {
		return scope != nil && *scope == owner.ID
	})).Return(nil, nil)

	resp := f.do(t, http.MethodGet, "/api/elders", token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, 0.0, resp.body["count"])
	assert.Equal(t, []any{}, resp.body["data"])
}

func TestElders_UpdateByStrangerIsForbidden(t *testing.T) {
	f := newFixture(t, false)
	stranger := newAccount(auth.RoleUser)
	token := f.signIn(t, stranger)
	elder := &care.Elder{ID: ulid.Make(), OwnerID: ulid.Make(), FullName: "Grace Hopper"}
	f.elders.On("Get", mock.Anything, elder.ID).Return(elder, nil)

	resp := f.do(t, http.MethodPut, "/api/elders/"+elder.ID.String(), token, map[string]string{"fullName": "X"})
	assert.Equal(t, http.StatusForbidden, resp.status)
	f.elders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestElders_BadID(t *testing.T) {
	f := newFixture(t, false)
	token := f.signIn(t, newAccount(auth.RoleUser))

	resp := f.do(t, http.MethodGet, "/api/elders/not-an-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "HTTP_INVALID_ID", resp.body["code"])
}

func TestElders_MissingIsNotFound(t *testing.T) {
	f := newFixture(t, false)
	token := f.signIn(t, newAccount(auth.RoleAdmin))
	id := ulid.Make()
	f.elders.On("Get", mock.Anything, id).Return(nil, care.ErrNotFound)

	resp := f.do(t, http.MethodGet, "/api/elders/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "Elder not found", resp.body["error"])
}

func TestInvoices_FilterValidation(t *testing.T) {
	f := newFixture(t, false)
	token := f.signIn(t, newAccount(auth.RoleAdmin))

	resp := f.do(t, http.MethodGet, "/api/invoices?status=lost", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = f.do(t, http.MethodGet, "/api/invoices?from=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "INVOICE_FILTER_INVALID", resp.body["code"])
}

func TestInvoices_ListPassesFilter(t *testing.T) {
	f := newFixture(t, false)
	token := f.signIn(t, newAccount(auth.RoleAdmin))
	f.invoices.On("List", mock.Anything, mock.MatchedBy(func(filter care.InvoiceFilter) bool {
		return filter.OwnerID == nil &&
			filter.Status != nil && *filter.Status == care.InvoicePaid &&
			filter.From != nil && filter.From.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			filter.To == nil
	})).Return([]*care.Invoice{}, nil)

	resp := f.do(t, http.MethodGet, "/api/invoices?status=paid&from=2026-01-01", token, nil)
	assert.Equal(t, http.StatusOK, resp.status, resp.body)
}

func TestContact_PublicSubmitAdminList(t *testing.T) {
	f := newFixture(t, false)
	f.contacts.On("Create", mock.Anything, mock.AnythingOfType("*care.ContactMessage")).Return(nil)

	resp := f.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Ann Lee",
		"email":   "ann@x.com",
		"subject": "Visiting hours",
		"message": "When can I visit?",
	})
	require.Equal(t, http.StatusCreated, resp.status, resp.body)

	resp = f.do(t, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	token := f.signIn(t, newAccount(auth.RoleCaregiver))
	resp = f.do(t, http.MethodGet, "/api/contact", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, false)

	resp := f.do(t, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, false, resp.body["success"])
}

func TestProtect_ResolvesOncePerRequest(t *testing.T) {
	f := newFixture(t, false)
	account := newAccount(auth.RoleUser)
	token, _, err := f.tokens.Issue(account.ID, account.Role)
	require.NoError(t, err)
	f.accounts.On("GetByID", mock.Anything, account.ID).Return(account, nil).Once()

	f.server.App().Get("/twice", f.server.protect, f.server.protect, func(c fiber.Ctx) error {
		return respond(c, http.StatusOK, currentAccount(c).ID)
	})

	resp := f.do(t, http.MethodGet, "/twice", token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, account.ID.String(), resp.body["data"])
}

func TestHandleError_Development(t *testing.T) {
	f := newFixture(t, true)
	f.server.App().Get("/boom", func(fiber.Ctx) error {
		return errors.New("database exploded")
	})

	resp := f.do(t, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.Equal(t, "Server Error", resp.body["error"])
	assert.Equal(t, "database exploded", resp.body["detail"])
	assert.Contains(t, f.logs.String(), "request failed")
}

func TestHandleError_ProductionHidesDetail(t *testing.T) {
	f := newFixture(t, false)
	f.server.App().Get("/boom", func(fiber.Ctx) error {
		return errors.New("database exploded")
	})

	resp := f.do(t, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.NotContains(t, resp.body, "detail")
	assert.NotContains(t, resp.body, "stack")
}

func TestRecover_PanicBecomesServerError(t *testing.T) {
	f := newFixture(t, false)
	f.server.App().Get("/panic", func(fiber.Ctx) error {
		panic("handler bug")
	})

	resp := f.do(t, http.MethodGet, "/panic", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/panic", "5xx")))
}

func TestRequestIDIsEchoedAndLogged(t *testing.T) {
	f := newFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := f.server.App().Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))
	assert.Contains(t, f.logs.String(), `"route":"/healthz"`)
}
