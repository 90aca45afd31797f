// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/htmlsanitize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/httpjson"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/normalize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Handler serves the signed-in user's profile.
type Handler struct {
	Store storage.Storage
	Log   *zap.Logger
}

// NewHandler constructs a profile Handler.
func NewHandler(st storage.Storage, logger *zap.Logger) *Handler {
	return &Handler{Store: st, Log: logger}
}

// ServeGet handles GET /api/profile.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	su, _ := auth.CurrentUser(r)

	user, err := h.Store.GetUser(ctx, su.ID)
	if err != nil {
		h.Log.Error("profile: get", zap.Int64("user_id", su.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

type updateRequest struct {
	FullName    *string  `json:"fullName"`
	PhoneNumber *string  `json:"phoneNumber"`
	Location    *string  `json:"location"`
	Bio         *string  `json:"bio"`
	Interests   []string `json:"interests"`
}

// ServeUpdate handles PATCH /api/profile. Identity and credential fields
// (username, email, password, user type) are not part of the request shape,
// so they cannot be smuggled in.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	su, _ := auth.CurrentUser(r)

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.FullName != nil {
		name := normalize.Name(*req.FullName)
		req.FullName = &name
	}
	if req.Bio != nil {
		clean := htmlsanitize.Sanitize(*req.Bio)
		req.Bio = &clean
	}

	user, err := h.Store.UpdateUser(ctx, su.ID, models.UserPatch{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Bio:         req.Bio,
		Interests:   req.Interests,
	})
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "Profile not found")
		return
	case err != nil:
		h.Log.Error("profile: update", zap.Int64("user_id", su.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}
