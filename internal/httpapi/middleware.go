// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/logging"
)

type localsKey int

const accountKey localsKey = iota

// observe logs every request and records it in the request metrics. Errors
// are rendered here so the logged status is the one the client sees.
func (s *Server) observe(c fiber.Ctx) error {
	start := time.Now()
	c.SetContext(logging.WithRequestID(c.Context(), requestid.FromContext(c)))

	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			return herr
		}
	}

	status := c.Response().StatusCode()
	elapsed := time.Since(start)
	route := c.Route().Path
	s.metrics.ObserveRequest(c.Method(), route, status, elapsed)
	s.logger.InfoContext(c.Context(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"route", route,
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
		"ip", c.IP())
	return nil
}

// protect is the access gate. It accepts a bearer token or the token
// cookie and stores the resolved account for the rest of the chain. A
// request that already carries an account is not resolved again.
func (s *Server) protect(c fiber.Ctx) error {
	if _, ok := c.Locals(accountKey).(*auth.Account); ok {
		return c.Next()
	}

	account, err := s.gate.Resolve(c.Context(), presentedToken(c))
	s.metrics.AuthEvent("gate", err)
	if err != nil {
		return err
	}
	c.Locals(accountKey, account)
	return c.Next()
}

// Authorize admits only accounts holding one of roles. It must run after
// the gate.
func Authorize(roles ...auth.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := auth.Authorize(currentAccount(c), roles...); err != nil {
			return err
		}
		return c.Next()
	}
}

func presentedToken(c fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return c.Cookies(TokenCookie)
}

func currentAccount(c fiber.Ctx) *auth.Account {
	account, _ := c.Locals(accountKey).(*auth.Account)
	return account
}

func actor(c fiber.Ctx) care.Actor {
	return care.ActorFor(currentAccount(c))
}
