// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/pkg/errutil"
)

const serverErrorMessage = "Server Error"

// classify maps err to an HTTP status and a client-safe message. Only
// messages carried by errutil values reach the client; everything else is
// reported as a generic server error. Error codes never pick the status.
func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	var verr *errutil.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}

	var pub *errutil.PublicError
	if errors.As(err, &pub) {
		switch {
		case errors.Is(pub.Kind, errutil.ErrUnauthorized):
			return http.StatusUnauthorized, pub.Message
		case errors.Is(pub.Kind, errutil.ErrForbidden):
			return http.StatusForbidden, pub.Message
		case errors.Is(pub.Kind, errutil.ErrNotFound):
			return http.StatusNotFound, pub.Message
		case errors.Is(pub.Kind, errutil.ErrConflict):
			return http.StatusConflict, pub.Message
		default:
			return http.StatusInternalServerError, pub.Message
		}
	}

	return http.StatusInternalServerError, serverErrorMessage
}

// handleError is the single place errors become responses.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	status, message := classify(err)

	if status >= http.StatusInternalServerError {
		errutil.LogErrorContext(c.Context(), s.logger, "request failed", err)
	} else {
		s.logger.DebugContext(c.Context(), "request rejected",
			"status", status,
			"code", errutil.Code(err),
			"path", c.Path())
	}

	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if code := errutil.Code(err); code != "" {
		body["code"] = code
	}
	if s.development {
		body["detail"] = err.Error()
		if oopsErr, ok := oops.AsOops(err); ok {
			body["stack"] = oopsErr.Stacktrace()
		}
	}
	return c.Status(status).JSON(body)
}
