package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware

    "github.com/smarotkar/trek-booking/internal/utils" // token parsing
)

// Context keys under which JWTAuth stores the authenticated identity.
// Handlers read these with c.Get().
const (
    CtxUserID   = "user_id"
    CtxUsername = "username"
    CtxRole     = "role"
)

// JWTAuth returns a middleware that validates a Bearer session token
// and injects the identity claims into the request context.  The two
// failure modes carry distinct status codes on purpose: a missing
// credential is 401 Unauthorized, while a present-but-invalid (or
// expired) token is 403 Forbidden.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the token.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access token required"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            id, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid token"})
            }

            // Expose the identity to handlers and downstream middleware.
            c.Set(CtxUserID, id.UserID)
            c.Set(CtxUsername, id.Username)
            c.Set(CtxRole, id.Role)
            return next(c)
        }
    }
}

// Identity reconstructs the authenticated identity from context.  Only
// meaningful behind JWTAuth; elsewhere it returns zero values.
func Identity(c echo.Context) utils.Identity {
    id := utils.Identity{}
    if v, ok := c.Get(CtxUserID).(string); ok {
        id.UserID = v
    }
    if v, ok := c.Get(CtxUsername).(string); ok {
        id.Username = v
    }
    if v, ok := c.Get(CtxRole).(string); ok {
        id.Role = v
    }
    return id
}
