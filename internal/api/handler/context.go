package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plotbuild/marketplace/internal/core/ports"
)

// actorFromContext extracts the auth claims injected by the Auth middleware.
// An empty user_id or role means the middleware did not run (or the token
// carried no identity), which is always a 401.
func actorFromContext(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: userID, Role: role}, nil
}
