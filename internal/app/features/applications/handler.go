// internal/app/features/applications/handler.go
package applications

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
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Handler serves volunteer applications and recruiter-side review.
type Handler struct {
	Store storage.Storage
	Log   *zap.Logger
}

// NewHandler constructs an applications Handler.
func NewHandler(st storage.Storage, logger *zap.Logger) *Handler {
	return &Handler{Store: st, Log: logger}
}

// ServeList handles GET /api/applications. Volunteers see their own
// applications; recruiters see every application to their NGO.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	var (
		list []models.Application
		err  error
	)
	switch {
	case user.IsVolunteer():
		list, err = h.Store.ListApplicationsByVolunteer(ctx, user.ID)
	case user.IsRecruiter():
		if user.NGOID == nil {
			httpjson.Error(w, http.StatusBadRequest, "Recruiter must be associated with an NGO")
			return
		}
		list, err = h.Store.ListApplicationsByNGO(ctx, *user.NGOID)
	default:
		httpjson.Error(w, http.StatusForbidden, "Invalid user type")
		return
	}
	if err != nil {
		h.Log.Error("applications: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	if list == nil {
		list = []models.Application{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeListByOpportunity handles GET /api/applications/opportunity/{id} for
// the recruiter who owns the posting.
func (h *Handler) ServeListByOpportunity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	opp, err := h.Store.GetOpportunity(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "Opportunity not found")
		return
	case err != nil:
		h.Log.Error("applications: get opportunity", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	if user.NGOID == nil || opp.NGOID != *user.NGOID {
		httpjson.Error(w, http.StatusForbidden, "Not authorized to view these applications")
		return
	}

	list, err := h.Store.ListApplicationsByOpportunity(ctx, id)
	if err != nil {
		h.Log.Error("applications: list by opportunity", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	if list == nil {
		list = []models.Application{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

type createRequest struct {
	OpportunityID int64  `json:"opportunityId"`
	Message       string `json:"message"`
	Resume        string `json:"resume"`
}

// ServeCreate handles POST /api/applications. Volunteers only; one
// application per opportunity. The store derives the NGO from the
// opportunity and rejects deleted or missing targets.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}

	app, err := h.Store.CreateApplication(ctx, models.NewApplication{
		VolunteerID:   user.ID,
		OpportunityID: req.OpportunityID,
		Message:       htmlsanitize.Sanitize(req.Message),
		Resume:        req.Resume,
	})
	switch {
	case errors.Is(err, storage.ErrOpportunityUnavailable):
		httpjson.Error(w, http.StatusNotFound, "Opportunity not found or has been deleted")
		return
	case errors.Is(err, storage.ErrDuplicateApplication):
		httpjson.Error(w, http.StatusBadRequest, "You have already applied for this opportunity")
		return
	case err != nil:
		h.Log.Error("applications: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	h.Log.Info("application created",
		zap.Int64("application_id", app.ID),
		zap.Int64("volunteer_id", app.VolunteerID),
		zap.Int64("opportunity_id", app.OpportunityID))
	httpjson.Write(w, http.StatusCreated, app)
}

type updateRequest struct {
	Status string `json:"status"`
}

// ServeUpdate handles PATCH /api/applications/{id}: a recruiter of the
// owning NGO moves the status out of pending.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := h.Store.GetApplication(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "Application not found")
		return
	case err != nil:
		h.Log.Error("applications: get for update", zap.Int64("application_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update application")
		return
	}
	if user.NGOID == nil || app.NGOID != *user.NGOID {
		httpjson.Error(w, http.StatusForbidden, "Not authorized to update this application")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if !models.ValidApplicationStatus(req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid status")
		return
	}

	updated, err := h.Store.UpdateApplication(ctx, id, models.ApplicationPatch{Status: &req.Status})
	switch {
	case errors.Is(err, storage.ErrStatusFinal):
		httpjson.Error(w, http.StatusConflict, "Application has already been decided")
		return
	case errors.Is(err, storage.ErrInvalidStatus):
		httpjson.Error(w, http.StatusBadRequest, "Invalid status")
		return
	case err != nil:
		h.Log.Error("applications: update", zap.Int64("application_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update application")
		return
	}

	h.Log.Info("application status updated",
		zap.Int64("application_id", id), zap.String("status", updated.Status))
	httpjson.Write(w, http.StatusOK, updated)
}
