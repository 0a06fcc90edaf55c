// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/pkg/errutil"
)

func respond(c fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func respondList[T any](c fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// respondDeleted mirrors the empty object clients already expect.
func respondDeleted(c fiber.Ctx) error {
	return respond(c, http.StatusOK, fiber.Map{})
}

// decode reads a JSON body into v. Fields absent from the body keep their
// current value, so decode also applies partial updates.
func decode(c fiber.Ctx, v any) error {
	if err := c.Bind().JSON(v); err != nil {
		return oops.Code("HTTP_INVALID_BODY").
			With("path", c.Path()).
			Wrap(&errutil.ValidationError{Field: "body", Message: "Invalid request body"})
	}
	return nil
}

func pathID(c fiber.Ctx, param string) (ulid.ULID, error) {
	raw := c.Params(param)
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code("HTTP_INVALID_ID").
			With("param", param).
			With("value", raw).
			Wrap(errutil.Invalid(param, "Invalid id"))
	}
	return id, nil
}
