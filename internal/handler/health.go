package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/smarotkar/trek-booking/internal/store"
)

// Health reports service liveness plus which storage backend the
// process settled on at startup, so operators can tell a degraded
// memory-mode instance from a fully persistent one.
func Health(st *store.Store) echo.HandlerFunc {
    return func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{
            "status":    "OK",
            "message":   "Backend server is running",
            "storage":   st.Mode(),
            "timestamp": time.Now().UTC().Format(time.RFC3339),
        })
    }
}
