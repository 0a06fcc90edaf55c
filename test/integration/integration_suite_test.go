// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

//go:build integration

// Package integration provides end-to-end integration tests for CareHaven.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carehaven/carehaven/internal/auth"
	authpg "github.com/carehaven/carehaven/internal/auth/postgres"
	"github.com/carehaven/carehaven/internal/care"
	carepg "github.com/carehaven/carehaven/internal/care/postgres"
	"github.com/carehaven/carehaven/internal/httpapi"
	"github.com/carehaven/carehaven/internal/notify"
	"github.com/carehaven/carehaven/internal/store"
)

const adminInbox = "office@carehaven.test"

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Integration Suite")
}

// outbox records every message the mailer sends.
type outbox struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (o *outbox) Send(_ context.Context, msg notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *outbox) To(addr string) []notify.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []notify.Message
	for _, m := range o.messages {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

// testEnv holds all the resources needed for integration tests.
type testEnv struct {
	container testcontainers.Container
	pool      *pgxpool.Pool
	server    *httpapi.Server
	accounts  *authpg.AccountRepository
	auth      *auth.Service
	mail      *outbox
}

var env *testEnv

var _ = BeforeSuite(func() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("carehaven_test"),
		postgres.WithUsername("carehaven"),
		postgres.WithPassword("carehaven"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())
	env = &testEnv{container: container, mail: &outbox{}}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	migrator, err := store.NewMigrator(connStr)
	Expect(err).NotTo(HaveOccurred())
	Expect(migrator.Up()).To(Succeed())
	Expect(migrator.Close()).To(Succeed())

	env.pool, err = store.Connect(ctx, connStr, store.DefaultConnectOptions())
	Expect(err).NotTo(HaveOccurred())

	logger := slog.New(slog.NewTextHandler(GinkgoWriter, &slog.HandlerOptions{Level: slog.LevelWarn}))

	env.accounts = authpg.NewAccountRepository(env.pool)
	tx := store.NewTransactor(env.pool)
	tokens, err := auth.NewTokenService("integration-secret")
	Expect(err).NotTo(HaveOccurred())

	mailer, err := notify.NewMailer(env.mail, notify.WithAdminAddress(adminInbox), notify.WithLogger(logger))
	Expect(err).NotTo(HaveOccurred())

	env.auth, err = auth.NewService(env.accounts, tx, auth.NewArgon2idHasher(), tokens, mailer,
		auth.WithLogger(logger),
		auth.WithResetURL("http://app.test/reset-password"),
	)
	Expect(err).NotTo(HaveOccurred())

	careCfg := care.ServiceConfig{
		Accounts: env.accounts,
		Tx:       tx,
		Notifier: mailer,
		Logger:   logger,
	}
	carepg.NewRepositories(env.pool).Apply(&careCfg)
	careSvc, err := care.NewService(careCfg)
	Expect(err).NotTo(HaveOccurred())

	gate, err := auth.NewGate(tokens, env.accounts)
	Expect(err).NotTo(HaveOccurred())

	env.server, err = httpapi.New(httpapi.Config{
		Auth:     env.auth,
		Gate:     gate,
		Care:     careSvc,
		Logger:   logger,
		TokenTTL: tokens.Expiry(),
	})
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	if env == nil {
		return
	}
	if env.pool != nil {
		env.pool.Close()
	}
	if env.container != nil {
		Expect(env.container.Terminate(context.Background())).To(Succeed())
	}
})

// apiResponse is a decoded API reply.
type apiResponse struct {
	Status  int
	Body    map[string]any
	Cookies []*http.Cookie
}

// Data returns the "data" member as an object.
func (r apiResponse) Data() map[string]any {
	data, ok := r.Body["data"].(map[string]any)
	Expect(ok).To(BeTrue(), "data is not an object: %v", r.Body)
	return data
}

// List returns the "data" member as an array of objects.
func (r apiResponse) List() []map[string]any {
	items, ok := r.Body["data"].([]any)
	Expect(ok).To(BeTrue(), "data is not a list: %v", r.Body)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.(map[string]any))
	}
	return out
}

// call sends a JSON request with an optional bearer token.
func call(method, path, token string, body any) apiResponse {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.server.App().Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = resp.Body.Close() }()

	out := apiResponse{Status: resp.StatusCode, Cookies: resp.Cookies()}
	raw, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	if len(raw) > 0 {
		Expect(json.Unmarshal(raw, &out.Body)).To(Succeed(), "body: %s", raw)
	}
	return out
}

// register signs up a new account and returns its token and id.
func register(email, role string) (string, string) {
	resp := call(http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "secret123",
		"role":      role,
	})
	Expect(resp.Status).To(Equal(http.StatusCreated), "register: %v", resp.Body)
	user := resp.Body["user"].(map[string]any)
	return resp.Body["token"].(string), user["id"].(string)
}

// signInAdmin bootstraps an administrator through the service and logs in.
func signInAdmin(email string) string {
	_, _, err := env.auth.EnsureAdmin(context.Background(), auth.AccountInput{
		FirstName: "Site",
		LastName:  "Admin",
		Email:     email,
		Password:  "admin-secret",
	})
	Expect(err).NotTo(HaveOccurred())

	resp := call(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "admin-secret",
	})
	Expect(resp.Status).To(Equal(http.StatusOK), "admin login: %v", resp.Body)
	return resp.Body["token"].(string)
}
