package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// Named role sets for the capability table declared in the router. Keeping
// them here means every route states its allowed roles in one place.
var (
	// Staff covers catalog management and user administration.
	Staff = []string{domain.RoleLibrarian, domain.RoleAdmin}
	// AdminOnly covers hard deletions.
	AdminOnly = []string{domain.RoleAdmin}
	// AnyRole covers operations open to every authenticated user.
	AnyRole = []string{domain.RoleStudent, domain.RoleLibrarian, domain.RoleAdmin}
)

// RBAC enforces role-based access control against the claims injected by Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
