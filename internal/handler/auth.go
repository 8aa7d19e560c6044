package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/config"
	"github.com/smarotkar/trek-booking/internal/middleware"
	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/store"
	"github.com/smarotkar/trek-booking/internal/utils"
)

// AuthHandler bundles dependencies for registration, login, profile
// and the admin user listing.
type AuthHandler struct {
	Cfg   config.Config
	Store *store.Store
}

func NewAuthHandler(cfg config.Config, st *store.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: st}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// publicUser is the account shape returned by auth endpoints; the
// password hash never appears in any payload.
type publicUser struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email,omitempty"`
	Role     string         `json:"role"`
	Profile  *model.Profile `json:"profile,omitempty"`
}

// Register creates an account and returns a session token immediately.
// Duplicate usernames are a conflict; the role defaults to `user`
// unless a valid role is supplied explicitly.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}
	role := req.Role
	if role != model.RoleUser && role != model.RoleGuide && role != model.RoleAdmin {
		role = model.RoleUser
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	id, err := h.Store.Users.Create(ctx, &u)
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username already exists"})
		}
		log.Printf("register: create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret,
		utils.Identity{UserID: id, Username: u.Username, Role: u.Role}, h.Cfg.TokenTTLHours)
	if err != nil {
		log.Printf("register: issue token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    publicUser{ID: id, Username: u.Username, Email: u.Email, Role: u.Role},
	})
}

// Login verifies credentials and returns a fresh session token.  The
// unknown-username and wrong-password cases return the same message so
// the response does not leak which one failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Store.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
		}
		log.Printf("login: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret,
		utils.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}, h.Cfg.TokenTTLHours)
	if err != nil {
		log.Printf("login: issue token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	profile := u.Profile
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"user":    publicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, Profile: &profile},
	})
}

// GetProfile returns the caller's full account, password excluded by
// the model's json tags.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Store.Users.GetByID(ctx, middleware.Identity(c).UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Printf("profile: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateProfile applies a partial profile update: fields the client
// leaves empty keep their stored values.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var in model.Profile
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid := middleware.Identity(c).UserID
	u, err := h.Store.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Printf("profile update: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	updated, err := h.Store.Users.UpdateProfile(ctx, uid, u.Profile.Merge(in))
	if err != nil {
		log.Printf("profile update: save: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"profile": updated.Profile,
	})
}

// ListUsers returns every account for the admin dashboard, password
// hashes excluded by serialization.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Store.Users.List(ctx)
	if err != nil {
		log.Printf("admin users: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, users)
}
