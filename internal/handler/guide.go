package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/store"
)

// GuideHandler serves the admin-curated guide roster.  This roster is
// independent of users holding the guide role; the two are maintained
// separately on purpose.
type GuideHandler struct {
	Store *store.Store
}

func NewGuideHandler(st *store.Store) *GuideHandler {
	return &GuideHandler{Store: st}
}

type guideReq struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Experience string  `json:"experience"`
	Rating     float64 `json:"rating"`
	Status     string  `json:"status"`
}

func (r guideReq) toModel() model.Guide {
	g := model.Guide{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Experience: r.Experience,
		Rating:     r.Rating,
		Status:     r.Status,
	}
	if g.Rating == 0 {
		g.Rating = model.DefaultRating
	}
	if g.Status == "" {
		g.Status = model.GuideActive
	}
	return g
}

// List returns the full roster; inactive entries included, the client
// decides what to show.
func (h *GuideHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	guides, err := h.Store.Guides.List(ctx)
	if err != nil {
		log.Printf("guides: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, guides)
}

// Create adds a roster entry.
func (h *GuideHandler) Create(c echo.Context) error {
	var req guideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Experience == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name, email, phone and experience are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := req.toModel()
	if _, err := h.Store.Guides.Insert(ctx, &g); err != nil {
		log.Printf("guides: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusCreated, g)
}

// Update replaces a roster entry's fields wholesale, so the same
// required fields apply as on Create.
func (h *GuideHandler) Update(c echo.Context) error {
	var req guideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Experience == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name, email, phone and experience are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Store.Guides.Update(ctx, c.Param("id"), req.toModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guide not found"})
		}
		log.Printf("guides: update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, g)
}

// Delete removes a roster entry.
func (h *GuideHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Guides.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guide not found"})
		}
		log.Printf("guides: delete: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Guide deleted"})
}
