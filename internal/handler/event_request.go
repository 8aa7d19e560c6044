package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/middleware"
	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/store"
)

// EventRequestHandler bundles dependencies for the event proposal
// workflow: any authenticated user submits, an admin decides, approval
// derives a published Event.
type EventRequestHandler struct {
	Store *store.Store
	Pub   Publisher
}

func NewEventRequestHandler(st *store.Store, pub Publisher) *EventRequestHandler {
	return &EventRequestHandler{Store: st, Pub: pub}
}

// eventRequestReq is the submission schema.  Guide is a free-text
// name, not a user reference.
type eventRequestReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Guide       string    `json:"guide"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Date        time.Time `json:"date"`
	Duration    string    `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	GroupSize   int       `json:"groupSize"`
	Image       string    `json:"image"`
}

type decisionReq struct {
	Status string `json:"status"`
}

// Submit files a new proposal with status Pending, owned by the
// caller.
func (h *EventRequestHandler) Submit(c echo.Context) error {
	var req eventRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Title == "" || req.Description == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title, description and location are required"})
	}
	if req.Price < 0 || req.GroupSize <= 0 || req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid price, date or group size"})
	}

	r := model.EventRequest{
		Title:       req.Title,
		Description: req.Description,
		Guide:       req.Guide,
		Location:    req.Location,
		Price:       req.Price,
		Date:        req.Date,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		GroupSize:   req.GroupSize,
		Image:       req.Image,
		Status:      model.RequestPending,
		RequestedBy: middleware.Identity(c).UserID,
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Store.EventRequests.Insert(ctx, &r); err != nil {
		log.Printf("event requests: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Event request submitted successfully",
		"eventRequest": r,
	})
}

// ListMine returns the caller's own proposals.
func (h *EventRequestHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reqs, err := h.Store.EventRequests.ListByRequester(ctx, middleware.Identity(c).UserID)
	if err != nil {
		log.Printf("event requests: list mine: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, reqs)
}

// ListAll returns every proposal for the admin review queue.
func (h *EventRequestHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reqs, err := h.Store.EventRequests.List(ctx)
	if err != nil {
		log.Printf("event requests: list all: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, reqs)
}

// Decide applies an admin decision.  Approval additionally creates the
// derived Event with the request's fields, owned by the requester.
// The status write wins exactly once, so the side effect can never run
// twice for the same request.
func (h *EventRequestHandler) Decide(c echo.Context) error {
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Status != model.RequestApproved && req.Status != model.RequestRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Store.EventRequests.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event request not found"})
		case errors.Is(err, store.ErrAlreadyDecided):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event request already decided"})
		}
		log.Printf("event requests: decide: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if req.Status == model.RequestApproved {
		ev := r.ToEvent(time.Now().UTC())
		if _, err := h.Store.Events.Insert(ctx, &ev); err != nil {
			// The request is marked approved but the derived event is
			// missing; surface the failure so the admin retries via a
			// direct event creation.
			log.Printf("event requests: derive event: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
		if h.Pub != nil {
			h.Pub.EventPublished(ctx, eventPublishedFrom(ev))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Event request " + strings.ToLower(req.Status) + " successfully",
		"eventRequest": r,
	})
}
