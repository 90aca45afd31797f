// internal/app/features/authn/handler.go
package authn

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/authutil"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/httpjson"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/normalize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/ratelimit"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Handler serves registration, login, logout and the current-user probe.
type Handler struct {
	Store        storage.Storage
	SessionMgr   *auth.SessionManager
	LoginLimiter *ratelimit.LoginLimiter
	Log          *zap.Logger
}

// NewHandler constructs an authn Handler.
func NewHandler(st storage.Storage, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:        st,
		SessionMgr:   sm,
		LoginLimiter: ratelimit.NewLoginLimiter(),
		Log:          logger,
	}
}

type registerRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	UserType    string   `json:"userType"`
	PhoneNumber string   `json:"phoneNumber"`
	Location    string   `json:"location"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
}

// ServeRegister handles POST /api/register. On success the new user is
// signed in and returned with status 201.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}

	req.Username = normalize.Username(req.Username)
	req.Email = normalize.Email(req.Email)
	req.FullName = normalize.Name(req.FullName)

	if req.Username == "" || req.Password == "" || req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Username, password and email are required")
		return
	}
	if req.UserType != models.UserTypeVolunteer && req.UserType != models.UserTypeRecruiter {
		httpjson.Error(w, http.StatusBadRequest, "User type must be volunteer or recruiter")
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("register: hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user, err := h.Store.CreateUser(ctx, models.NewUser{
		Username:    req.Username,
		Password:    hash,
		Email:       req.Email,
		FullName:    req.FullName,
		UserType:    req.UserType,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Bio:         req.Bio,
		Interests:   req.Interests,
	})
	switch {
	case errors.Is(err, storage.ErrDuplicateUsername):
		httpjson.Error(w, http.StatusBadRequest, "Username already exists")
		return
	case errors.Is(err, storage.ErrDuplicateEmail):
		httpjson.Error(w, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		h.Log.Error("register: create user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID); err != nil {
		h.Log.Error("register: sign in", zap.Int64("user_id", user.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	h.Log.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("user_type", user.UserType))
	httpjson.Write(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeLogin handles POST /api/login. The username lookup is
// case-insensitive; the failure message never says which half was wrong.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}

	username := normalize.Username(req.Username)
	if allowed, reason := h.LoginLimiter.Check(r, username); !allowed {
		h.Log.Warn("login: rate limited",
			zap.String("ip", ratelimit.ClientIP(r)),
			zap.String("username", username))
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	user, err := h.Store.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpjson.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	case err != nil:
		h.Log.Error("login: lookup user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !authutil.VerifyPassword(user.Password, req.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID); err != nil {
		h.Log.Error("login: sign in", zap.Int64("user_id", user.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.LoginLimiter.ResetUser(username)
	h.Log.Info("user logged in", zap.Int64("user_id", user.ID))
	httpjson.Write(w, http.StatusOK, user)
}

// ServeLogout handles POST /api/logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ServeCurrentUser handles GET /api/user: the signed-in user, or 401.
func (h *Handler) ServeCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.Store.GetUser(ctx, su.ID)
	if err != nil {
		h.Log.Error("current user: lookup", zap.Int64("user_id", su.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}
