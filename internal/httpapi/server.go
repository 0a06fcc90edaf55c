// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package httpapi exposes the CareHaven REST API over fiber.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/observability"
)

// TokenCookie is the cookie carrying the session token for browser clients.
const TokenCookie = "token"

// Resolver turns a presented session token into a live account.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*auth.Account, error)
}

// Config holds dependencies for Server.
type Config struct {
	Auth *auth.Service
	Gate Resolver
	Care *care.Service

	// Metrics is optional.
	Metrics *observability.Metrics
	Logger  *slog.Logger

	// Development adds error stacks to responses.
	Development bool
	// TokenTTL is the lifetime of the token cookie.
	TokenTTL time.Duration
	// SecureCookie marks the token cookie Secure.
	SecureCookie bool
}

// Server is the API server.
type Server struct {
	app          *fiber.App
	auth         *auth.Service
	gate         Resolver
	care         *care.Service
	metrics      *observability.Metrics
	logger       *slog.Logger
	development  bool
	tokenTTL     time.Duration
	secureCookie bool
}

// New creates a Server with every route registered.
func New(cfg Config) (*Server, error) {
	if cfg.Auth == nil {
		return nil, oops.Code("HTTP_INVALID_CONFIG").Errorf("auth service is required")
	}
	if cfg.Gate == nil {
		return nil, oops.Code("HTTP_INVALID_CONFIG").Errorf("gate is required")
	}
	if cfg.Care == nil {
		return nil, oops.Code("HTTP_INVALID_CONFIG").Errorf("care service is required")
	}

	s := &Server{
		auth:         cfg.Auth,
		gate:         cfg.Gate,
		care:         cfg.Care,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		development:  cfg.Development,
		tokenTTL:     cfg.TokenTTL,
		secureCookie: cfg.SecureCookie,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = auth.DefaultTokenExpiry
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "carehaven",
		ErrorHandler: s.handleError,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	})
	s.app.Use(requestid.New())
	s.app.Use(s.observe)
	s.app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Development}))
	s.routes()
	return s, nil
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		return oops.Code("HTTP_SERVE_FAILED").With("addr", ln.Addr().String()).Wrap(err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return oops.Code("HTTP_SHUTDOWN_FAILED").Wrap(err)
	}
	return nil
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	protect := s.protect
	admin := Authorize(auth.RoleAdmin)

	a := api.Group("/auth")
	a.Post("/register", s.register)
	a.Post("/login", s.login)
	a.Post("/logout", s.logout)
	a.Post("/forgot-password", s.forgotPassword)
	a.Put("/reset-password/:resettoken", s.resetPassword)
	a.Get("/me", protect, s.me)

	adm := api.Group("/admin", protect, admin)
	adm.Get("/users", s.listAccounts)
	adm.Post("/users", s.createAccount)
	adm.Get("/users/stats", s.accountStats)
	adm.Get("/users/:id", s.getAccount)
	adm.Put("/users/:id", s.updateAccount)
	adm.Delete("/users/:id", s.deleteAccount)
	adm.Get("/caregivers", s.listCaregivers)
	adm.Post("/caregivers", s.createCaregiver)

	api.Get("/users/email/:email", protect, s.checkEmail)

	api.Get("/elders", protect, s.listElders)
	api.Post("/elders", protect, s.createElder)
	api.Get("/elders/:elderId/family-members", protect, s.listFamilyMembers)
	api.Get("/elders/:id", protect, s.getElder)
	api.Put("/elders/:id", protect, s.updateElder)
	api.Delete("/elders/:id", protect, s.deleteElder)

	api.Get("/caregivers", protect, admin, s.listCaregivers)
	api.Post("/caregivers", protect, Authorize(auth.RoleAdmin, auth.RoleCaregiver), s.createCaregiver)
	api.Get("/caregivers/:id", protect, s.getCaregiver)
	api.Put("/caregivers/:id", protect, admin, s.updateCaregiver)
	api.Delete("/caregivers/:id", protect, admin, s.deleteCaregiver)

	staff := api.Group("/staff", protect, admin)
	staff.Get("/", s.listStaff)
	staff.Post("/", s.createStaff)
	staff.Get("/:id", s.getStaff)
	staff.Put("/:id", s.updateStaff)
	staff.Delete("/:id", s.deleteStaff)

	api.Get("/services", protect, s.listOfferings)
	api.Post("/services", protect, admin, s.createOffering)
	api.Get("/services/:id", protect, s.getOffering)
	api.Put("/services/:id", protect, admin, s.updateOffering)
	api.Delete("/services/:id", protect, admin, s.deleteOffering)

	api.Get("/bookings", protect, s.listBookings)
	api.Post("/bookings", protect, s.createBooking)
	api.Get("/bookings/:id", protect, s.getBooking)
	api.Put("/bookings/:id", protect, s.updateBooking)
	api.Delete("/bookings/:id", protect, admin, s.deleteBooking)

	api.Get("/invoices", protect, s.listInvoices)
	api.Post("/invoices", protect, s.createInvoice)
	api.Get("/invoices/:id", protect, s.getInvoice)
	api.Patch("/invoices/:id/status", protect, admin, s.updateInvoiceStatus)
	api.Delete("/invoices/:id", protect, admin, s.deleteInvoice)

	api.Get("/payments", protect, s.listPayments)
	api.Post("/payments", protect, s.createPayment)
	api.Get("/payments/:id", protect, s.getPayment)
	api.Put("/payments/:id", protect, s.updatePayment)
	api.Delete("/payments/:id", protect, admin, s.deletePayment)

	docs := api.Group("/documents", protect)
	docs.Get("/", s.listDocuments)
	docs.Post("/", s.createDocument)
	docs.Get("/:id", s.getDocument)
	docs.Put("/:id", s.updateDocument)
	docs.Delete("/:id", s.deleteDocument)

	api.Post("/contact", s.submitContact)
	api.Get("/contact", protect, admin, s.listContacts)

	family := api.Group("/family-members", protect)
	family.Post("/", s.addFamilyMember)
	family.Put("/:id", s.updateFamilyMember)
	family.Delete("/:id", s.removeFamilyMember)
}
