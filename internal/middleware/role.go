package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/smarotkar/trek-booking/internal/model"
)

// RequireRole returns a middleware enforcing that the authenticated
// user holds one of the given roles.  Roles are compared by strict
// equality against the JWT's role claim; there is no hierarchy between
// roles.  Assumes JWTAuth already stored the role in context.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    return requireRole("Forbidden", roles)
}

// RequireAdmin gates a route to admins only, with the admin-specific
// denial message clients display.
func RequireAdmin() echo.MiddlewareFunc {
    return requireRole("Admin access required", []string{model.RoleAdmin})
}

func requireRole(msg string, roles []string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(CtxRole).(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"message": msg})
            }
            return next(c)
        }
    }
}
