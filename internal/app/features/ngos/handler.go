// internal/app/features/ngos/handler.go
package ngos

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/htmlsanitize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/httpjson"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/normalize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Handler serves the NGO directory and recruiter-side NGO management.
type Handler struct {
	Store storage.Storage
	Log   *zap.Logger
}

// NewHandler constructs an ngos Handler.
func NewHandler(st storage.Storage, logger *zap.Logger) *Handler {
	return &Handler{Store: st, Log: logger}
}

// ServeList handles GET /api/ngos, optionally filtered by ?cause=
// (case-insensitive).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		list []models.NGO
		err  error
	)
	if cause := r.URL.Query().Get("cause"); cause != "" {
		list, err = h.Store.ListNGOsByCause(ctx, cause)
	} else {
		list, err = h.Store.ListNGOs(ctx)
	}
	if err != nil {
		h.Log.Error("ngos: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch NGOs")
		return
	}
	if list == nil {
		list = []models.NGO{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeGet handles GET /api/ngos/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid NGO ID")
		return
	}

	ngo, err := h.Store.GetNGO(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "NGO not found")
		return
	case err != nil:
		h.Log.Error("ngos: get", zap.Int64("ngo_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch NGO")
		return
	}
	httpjson.Write(w, http.StatusOK, ngo)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cause       string `json:"cause"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Website     string `json:"website"`
	Logo        string `json:"logo"`
}

// ServeCreate handles POST /api/ngos. Recruiters only; the creator is linked
// to the new organization.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" || req.Description == "" || req.Cause == "" {
		httpjson.Error(w, http.StatusBadRequest, "Name, description and cause are required")
		return
	}

	ngo, err := h.Store.CreateNGO(ctx, models.NewNGO{
		Name:        req.Name,
		Description: htmlsanitize.Sanitize(req.Description),
		Cause:       req.Cause,
		Location:    req.Location,
		Email:       normalize.Email(req.Email),
		PhoneNumber: req.PhoneNumber,
		Website:     req.Website,
		Logo:        req.Logo,
	})
	if err != nil {
		h.Log.Error("ngos: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create NGO")
		return
	}

	// Link the recruiter to the organization they just created.
	if _, err := h.Store.UpdateUser(ctx, user.ID, models.UserPatch{NGOID: &ngo.ID}); err != nil {
		h.Log.Error("ngos: link recruiter",
			zap.Int64("user_id", user.ID), zap.Int64("ngo_id", ngo.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create NGO")
		return
	}

	h.Log.Info("ngo created", zap.Int64("ngo_id", ngo.ID), zap.Int64("user_id", user.ID))
	httpjson.Write(w, http.StatusCreated, ngo)
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cause       *string `json:"cause"`
	Location    *string `json:"location"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Website     *string `json:"website"`
	Logo        *string `json:"logo"`
}

// ServeUpdate handles PATCH /api/ngos/{id}. Only the recruiter linked to the
// organization may edit it.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid NGO ID")
		return
	}
	if user.NGOID == nil || *user.NGOID != id {
		httpjson.Error(w, http.StatusForbidden, "Not authorized to update this NGO")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.Description != nil {
		clean := htmlsanitize.Sanitize(*req.Description)
		req.Description = &clean
	}
	if req.Email != nil {
		addr := normalize.Email(*req.Email)
		req.Email = &addr
	}

	ngo, err := h.Store.UpdateNGO(ctx, id, models.NGOPatch{
		Name:        req.Name,
		Description: req.Description,
		Cause:       req.Cause,
		Location:    req.Location,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Website:     req.Website,
		Logo:        req.Logo,
	})
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "NGO not found")
		return
	case err != nil:
		h.Log.Error("ngos: update", zap.Int64("ngo_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update NGO")
		return
	}
	httpjson.Write(w, http.StatusOK, ngo)
}
