// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/carehaven/carehaven/internal/auth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// sendSession writes the token both in the body and as an HttpOnly cookie.
func (s *Server) sendSession(c fiber.Ctx, status int, session *auth.Session) error {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   s.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"token":   session.Token,
		"user":    session.Account.Summary(),
	})
}

func (s *Server) register(c fiber.Ctx) error {
	var in auth.RegisterInput
	if err := decode(c, &in); err != nil {
		return err
	}
	session, err := s.auth.Register(c.Context(), in)
	s.metrics.AuthEvent("register", err)
	if err != nil {
		return err
	}
	return s.sendSession(c, http.StatusCreated, session)
}

func (s *Server) login(c fiber.Ctx) error {
	var in credentials
	if err := decode(c, &in); err != nil {
		return err
	}
	session, err := s.auth.Login(c.Context(), in.Email, in.Password)
	s.metrics.AuthEvent("login", err)
	if err != nil {
		return err
	}
	return s.sendSession(c, http.StatusOK, session)
}

// logout expires the token cookie. Bearer tokens stay valid until expiry.
func (s *Server) logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return respondDeleted(c)
}

func (s *Server) me(c fiber.Ctx) error {
	account, err := s.auth.Me(c.Context(), currentAccount(c).ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// forgotPassword answers the same way whether or not the email is known.
func (s *Server) forgotPassword(c fiber.Ctx) error {
	var in emailRequest
	if err := decode(c, &in); err != nil {
		return err
	}
	err := s.auth.ForgotPassword(c.Context(), in.Email)
	s.metrics.AuthEvent("reset_request", err)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Email sent")
}

func (s *Server) resetPassword(c fiber.Ctx) error {
	var in passwordRequest
	if err := decode(c, &in); err != nil {
		return err
	}
	session, err := s.auth.ResetPassword(c.Context(), c.Params("resettoken"), in.Password)
	s.metrics.AuthEvent("reset", err)
	if err != nil {
		return err
	}
	return s.sendSession(c, http.StatusOK, session)
}
