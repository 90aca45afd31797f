// internal/app/features/opportunities/handler.go
package opportunities

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/htmlsanitize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/httpjson"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Handler serves the opportunity board and recruiter-side postings.
type Handler struct {
	Store storage.Storage
	Log   *zap.Logger
}

// NewHandler constructs an opportunities Handler.
func NewHandler(st storage.Storage, logger *zap.Logger) *Handler {
	return &Handler{Store: st, Log: logger}
}

// ServeList handles GET /api/opportunities, filtered by ?ngoId= or ?cause=.
// ngoId wins when both are present. Soft-deleted postings never appear.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		list []models.Opportunity
		err  error
	)
	switch {
	case r.URL.Query().Get("ngoId") != "":
		var ngoID int64
		ngoID, err = strconv.ParseInt(r.URL.Query().Get("ngoId"), 10, 64)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid NGO ID")
			return
		}
		list, err = h.Store.ListOpportunitiesByNGO(ctx, ngoID)
	case r.URL.Query().Get("cause") != "":
		list, err = h.Store.ListOpportunitiesByCause(ctx, r.URL.Query().Get("cause"))
	default:
		list, err = h.Store.ListOpportunities(ctx)
	}
	if err != nil {
		h.Log.Error("opportunities: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch opportunities")
		return
	}
	if list == nil {
		list = []models.Opportunity{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeGet handles GET /api/opportunities/{id}. The soft-deleted case is a
// 404 here even though the store can still fetch the record.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

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
		h.Log.Error("opportunities: get", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch opportunity")
		return
	}
	if opp.Deleted {
		httpjson.Error(w, http.StatusNotFound, "Opportunity not found or has been deleted")
		return
	}
	httpjson.Write(w, http.StatusOK, opp)
}

type createRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Remote      bool       `json:"remote"`
	Skills      []string   `json:"skills"`
	Commitment  string     `json:"commitment"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Openings    int        `json:"openings"`
}

// ServeCreate handles POST /api/opportunities. The posting is always owned
// by the recruiter's own NGO; the body cannot name another one.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)
	if user.NGOID == nil {
		httpjson.Error(w, http.StatusBadRequest, "Recruiter must be associated with an NGO")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.Title == "" || req.Description == "" {
		httpjson.Error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	opp, err := h.Store.CreateOpportunity(ctx, models.NewOpportunity{
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		NGOID:       *user.NGOID,
		Location:    req.Location,
		Remote:      req.Remote,
		Skills:      req.Skills,
		Commitment:  req.Commitment,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Openings:    req.Openings,
	})
	switch {
	case errors.Is(err, storage.ErrNGONotFound):
		httpjson.Error(w, http.StatusBadRequest, "Recruiter's NGO no longer exists")
		return
	case err != nil:
		h.Log.Error("opportunities: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create opportunity")
		return
	}

	h.Log.Info("opportunity created",
		zap.Int64("opportunity_id", opp.ID), zap.Int64("ngo_id", opp.NGOID))
	httpjson.Write(w, http.StatusCreated, opp)
}

type updateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Remote      *bool      `json:"remote"`
	Skills      []string   `json:"skills"`
	Commitment  *string    `json:"commitment"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Openings    *int       `json:"openings"`
}

// ServeUpdate handles PATCH /api/opportunities/{id} for the owning NGO's
// recruiter.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("opportunities: get for update", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update opportunity")
		return
	}
	if user.NGOID == nil || opp.NGOID != *user.NGOID {
		httpjson.Error(w, http.StatusForbidden, "Not authorized to update this opportunity")
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

	updated, err := h.Store.UpdateOpportunity(ctx, id, models.OpportunityPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Remote:      req.Remote,
		Skills:      req.Skills,
		Commitment:  req.Commitment,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Openings:    req.Openings,
	})
	if err != nil {
		h.Log.Error("opportunities: update", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update opportunity")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/opportunities/{id}: a soft delete that
// hides the posting from every list while keeping the record.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("opportunities: get for delete", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete opportunity")
		return
	}
	if user.NGOID == nil || opp.NGOID != *user.NGOID {
		httpjson.Error(w, http.StatusForbidden, "Not authorized to delete this opportunity")
		return
	}

	deleted := true
	if _, err := h.Store.UpdateOpportunity(ctx, id, models.OpportunityPatch{Deleted: &deleted}); err != nil {
		h.Log.Error("opportunities: delete", zap.Int64("opportunity_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete opportunity")
		return
	}

	h.Log.Info("opportunity deleted", zap.Int64("opportunity_id", id))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Opportunity deleted successfully"})
}
