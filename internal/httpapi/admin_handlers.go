// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

func (s *Server) listAccounts(c fiber.Ctx) error {
	var filter auth.AccountFilter
	if raw := c.Query("role"); raw != "" {
		role, err := auth.ParseRole(raw)
		if err != nil {
			return oops.Code("ACCOUNT_FILTER_INVALID").With("role", raw).Wrap(err)
		}
		filter.Role = &role
	}
	filter.ActiveOnly = c.Query("active") == "true"

	accounts, err := s.auth.ListAccounts(c.Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, accounts)
}

func (s *Server) createAccount(c fiber.Ctx) error {
	var in auth.AccountInput
	if err := decode(c, &in); err != nil {
		return err
	}
	account, err := s.auth.CreateAccount(c.Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, account)
}

func (s *Server) accountStats(c fiber.Ctx) error {
	stats, err := s.auth.Stats(c.Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

func (s *Server) getAccount(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	account, err := s.auth.Me(c.Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

func (s *Server) updateAccount(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch auth.AccountPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	account, err := s.auth.UpdateAccount(c.Context(), id, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

func (s *Server) deleteAccount(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.auth.DeleteAccount(c.Context(), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

func (s *Server) checkEmail(c fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return oops.Code("ACCOUNT_EMAIL_INVALID").Wrap(errutil.Invalid("email", "Invalid email"))
	}
	taken, err := s.auth.EmailTaken(c.Context(), email)
	if err != nil {
		return err
	}
	message := "Email is available"
	if taken {
		message = "Email already exists"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"exists":  taken,
		"message": message,
	})
}
