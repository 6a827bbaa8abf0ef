package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code is
// only set for machine-readable conditions the client reacts to, such as
// TOKEN_EXPIRED which triggers the SDK's refresh-and-retry path.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// CodeTokenExpired tells clients that the access token (not the request
// itself) is the problem and a refresh should be attempted.
const CodeTokenExpired = "TOKEN_EXPIRED"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg, code := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Success: false, Message: msg, Code: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "access token expired", CodeTokenExpired
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", ""
	case errors.Is(err, domain.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "invalid refresh token", ""
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusForbidden, "account is deactivated", ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", ""
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, "plot not found", ""
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, "quote request not found", ""
	case errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound, "quote not found", ""
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists", ""
	case errors.Is(err, domain.ErrRequestClosed):
		return http.StatusConflict, "quote request is no longer open", ""
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error(), ""
	case errors.Is(err, domain.ErrInvalidBudgetRange):
		return http.StatusBadRequest, err.Error(), ""
	case errors.Is(err, domain.ErrAdvisorUnavailable):
		return http.StatusServiceUnavailable, "budget advisor is not configured", ""
	case errors.Is(err, domain.ErrAdvisorBadReply):
		return http.StatusBadGateway, "budget advisor returned an unusable reply", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", ""
}
