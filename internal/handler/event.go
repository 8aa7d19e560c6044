package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/middleware"
	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/queue"
	"github.com/smarotkar/trek-booking/internal/store"
)

// Publisher decouples handlers from the broker so workflow side
// effects stay best-effort and tests can run without one.  A nil
// Publisher disables publishing entirely.
type Publisher interface {
	EventPublished(ctx context.Context, ev queue.EventPublishedEvent)
	GuideApproved(ctx context.Context, ev queue.GuideApprovedEvent)
}

// EventHandler bundles dependencies for event browsing, creation and
// the admin approval transitions.
type EventHandler struct {
	Store *store.Store
	Pub   Publisher
}

func NewEventHandler(st *store.Store, pub Publisher) *EventHandler {
	return &EventHandler{Store: st, Pub: pub}
}

// eventReq is the request schema for event creation.  Status,
// ownership and timestamps are always assigned server-side.
type eventReq struct {
	Title           string    `json:"title"`
	PlaceName       string    `json:"placeName"`
	Description     string    `json:"description"`
	NearAttractions string    `json:"nearAttractions"`
	ThingsToCarry   string    `json:"thingsToCarry"`
	PickupPoints    []string  `json:"pickupPoints"`
	MeetupTime      string    `json:"meetupTime"`
	PickupTime      string    `json:"pickupTime"`
	Location        string    `json:"location"`
	Price           float64   `json:"price"`
	Date            time.Time `json:"date"`
	Duration        string    `json:"duration"`
	Difficulty      string    `json:"difficulty"`
	GroupSize       int       `json:"groupSize"`
	BannerImage     string    `json:"bannerImage"`
	CardImage       string    `json:"cardImage"`
	Image           string    `json:"image"`
	Rating          float64   `json:"rating"`
}

func (r eventReq) validate() string {
	switch {
	case r.Title == "":
		return "Title is required"
	case r.Description == "":
		return "Description is required"
	case r.Location == "":
		return "Location is required"
	case r.Price < 0:
		return "Price must not be negative"
	case r.Date.IsZero():
		return "Date is required"
	case r.Duration == "":
		return "Duration is required"
	case r.Difficulty == "":
		return "Difficulty is required"
	case r.GroupSize <= 0:
		return "Group size must be positive"
	}
	return ""
}

// List returns events, filtered to an exact status when ?status= is
// present.  Visibility is the caller's responsibility: the public
// frontend passes status=approved, admin dashboards call unfiltered.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Store.Events.List(ctx, c.QueryParam("status"))
	if err != nil {
		log.Printf("events: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, events)
}

// Get returns a single event by id.
func (h *EventHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Store.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		log.Printf("events: get: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Create handles POST /events for guides and admins.  Admin-created
// events are published immediately; guide-created events start pending
// with the guide self-assigned and need a separate admin approval.
func (h *EventHandler) Create(c echo.Context) error {
	id := middleware.Identity(c)
	if id.Role != model.RoleGuide && id.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Only guides or admins can create events"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	rating := req.Rating
	if rating == 0 {
		rating = model.DefaultRating
	}
	ev := model.Event{
		Title:           req.Title,
		PlaceName:       req.PlaceName,
		Description:     req.Description,
		NearAttractions: req.NearAttractions,
		ThingsToCarry:   req.ThingsToCarry,
		PickupPoints:    req.PickupPoints,
		MeetupTime:      req.MeetupTime,
		PickupTime:      req.PickupTime,
		Location:        req.Location,
		Price:           req.Price,
		Date:            req.Date,
		Duration:        req.Duration,
		Difficulty:      req.Difficulty,
		GroupSize:       req.GroupSize,
		BannerImage:     req.BannerImage,
		CardImage:       req.CardImage,
		Image:           req.Image,
		Rating:          rating,
		CreatedBy:       id.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	message := "Event created successfully"
	if id.Role == model.RoleAdmin {
		ev.Status = model.EventApproved
	} else {
		ev.Status = model.EventPending
		ev.Guide = id.UserID
		message = "Event created (pending approval)"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Store.Events.Insert(ctx, &ev); err != nil {
		log.Printf("events: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if ev.Status == model.EventApproved {
		h.publishEvent(ctx, ev, "admin")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": message, "event": ev})
}

// Approve transitions a pending event to approved.  A second decision
// on the same event is rejected rather than silently repeated.
func (h *EventHandler) Approve(c echo.Context) error {
	return h.decide(c, model.EventApproved, "Event approved")
}

// Reject transitions a pending event to rejected, mirroring Approve.
func (h *EventHandler) Reject(c echo.Context) error {
	return h.decide(c, model.EventRejected, "Event rejected")
}

func (h *EventHandler) decide(c echo.Context, status, message string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Store.Events.UpdateStatus(ctx, c.Param("id"), status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		case errors.Is(err, store.ErrAlreadyDecided):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event already decided"})
		}
		log.Printf("events: update status: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if status == model.EventApproved {
		h.publishEvent(ctx, ev, "approval")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "event": ev})
}

// publishEvent emits the event.published message; failures are already
// logged by the publisher and never affect the response.
func (h *EventHandler) publishEvent(ctx context.Context, ev model.Event, source string) {
	if h.Pub == nil {
		return
	}
	msg := eventPublishedFrom(ev)
	msg.Source = source
	h.Pub.EventPublished(ctx, msg)
}

// eventPublishedFrom maps a freshly published event onto its broker
// payload; Source defaults to "request" for request-derived events.
func eventPublishedFrom(ev model.Event) queue.EventPublishedEvent {
	return queue.EventPublishedEvent{
		EventID:     ev.ID,
		Title:       ev.Title,
		Location:    ev.Location,
		Price:       ev.Price,
		Date:        ev.Date.Format(time.RFC3339),
		CreatedBy:   ev.CreatedBy,
		Source:      "request",
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
