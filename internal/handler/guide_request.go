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

// GuideRequestHandler bundles dependencies for the guide-role
// workflow: users petition, admins decide, approval promotes the user.
type GuideRequestHandler struct {
	Store *store.Store
	Pub   Publisher
}

func NewGuideRequestHandler(st *store.Store, pub Publisher) *GuideRequestHandler {
	return &GuideRequestHandler{Store: st, Pub: pub}
}

// Request files a guide-role petition for the caller.  At most one
// pending petition per user; a resolved one does not block retrying.
func (h *GuideRequestHandler) Request(c echo.Context) error {
	r := model.GuideRequest{
		User:        middleware.Identity(c).UserID,
		Status:      model.GuideReqPending,
		RequestedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Store.GuideRequests.Create(ctx, &r); err != nil {
		if errors.Is(err, store.ErrPendingExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Already requested"})
		}
		log.Printf("guide requests: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Guide request submitted",
		"request": r,
	})
}

// Decide applies an admin decision to a petition.  Approval flips the
// referenced user's role to guide; the one-shot status transition
// guarantees the promotion runs at most once per request.
func (h *GuideRequestHandler) Decide(c echo.Context) error {
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Status != model.GuideReqApproved && req.Status != model.GuideReqRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	r, err := h.Store.GuideRequests.Decide(ctx, c.Param("id"), req.Status, now)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		case errors.Is(err, store.ErrAlreadyDecided):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Request already decided"})
		}
		log.Printf("guide requests: decide: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if req.Status == model.GuideReqApproved {
		if err := h.Store.Users.UpdateRole(ctx, r.User, model.RoleGuide); err != nil {
			log.Printf("guide requests: promote user %s: %v", r.User, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
		if h.Pub != nil {
			username := ""
			if u, err := h.Store.Users.GetByID(ctx, r.User); err == nil {
				username = u.Username
			}
			h.Pub.GuideApproved(ctx, queue.GuideApprovedEvent{
				RequestID: r.ID,
				UserID:    r.User,
				Username:  username,
				DecidedAt: now.Format(time.RFC3339),
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Guide request " + req.Status,
		"request": r,
	})
}

// List returns every petition for the admin review queue.
func (h *GuideRequestHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reqs, err := h.Store.GuideRequests.List(ctx)
	if err != nil {
		log.Printf("guide requests: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, reqs)
}

// PublicProfile returns the public page of a role-guide user; a
// missing user or one without the guide role is a 404 either way.
func (h *GuideRequestHandler) PublicProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Store.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guide not found"})
		}
		log.Printf("guide profile: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	if u.Role != model.RoleGuide {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Guide not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":           u.ID,
		"username":     u.Username,
		"profile":      u.Profile,
		"guideProfile": u.GuideProfile,
		"role":         u.Role,
	})
}
