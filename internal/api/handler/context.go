package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bibliotekopol/library-system/internal/core/ports"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and performs a fast-fail check before any service call: a non-empty id and
// role prove the middleware ran and the token carried a usable identity.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	name, _ := c.Get("name").(string)

	if id == "" || role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Identity{ID: id, Role: role, Name: name}, nil
}
