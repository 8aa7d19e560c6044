package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/store"
)

// AboutHandler serves the singleton about/contact content block.
type AboutHandler struct {
	Store *store.Store
}

func NewAboutHandler(st *store.Store) *AboutHandler {
	return &AboutHandler{Store: st}
}

// Get returns the content, creating the record with default content on
// first read.
func (h *AboutHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Store.About.Get(ctx)
	if err != nil {
		log.Printf("about: get: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, a)
}

// Update replaces the content (admin only).
func (h *AboutHandler) Update(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Content required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Store.About.Put(ctx, req.Content)
	if err != nil {
		log.Printf("about: put: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, a)
}
