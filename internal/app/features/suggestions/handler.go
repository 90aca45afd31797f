// internal/app/features/suggestions/handler.go
package suggestions

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/htmlsanitize"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/httpjson"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Handler serves volunteer-to-NGO suggestions.
type Handler struct {
	Store storage.Storage
	Log   *zap.Logger
}

// NewHandler constructs a suggestions Handler.
func NewHandler(st storage.Storage, logger *zap.Logger) *Handler {
	return &Handler{Store: st, Log: logger}
}

// ServeList handles GET /api/suggestions. Volunteers see suggestions they
// wrote; recruiters see suggestions sent to their NGO.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	var (
		list []models.Suggestion
		err  error
	)
	switch {
	case user.IsVolunteer():
		list, err = h.Store.ListSuggestionsByVolunteer(ctx, user.ID)
	case user.IsRecruiter():
		if user.NGOID == nil {
			httpjson.Error(w, http.StatusBadRequest, "Recruiter must be associated with an NGO")
			return
		}
		list, err = h.Store.ListSuggestionsByNGO(ctx, *user.NGOID)
	default:
		httpjson.Error(w, http.StatusForbidden, "Invalid user type")
		return
	}
	if err != nil {
		h.Log.Error("suggestions: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	if list == nil {
		list = []models.Suggestion{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

type createRequest struct {
	NGOID   int64  `json:"ngoId"`
	Content string `json:"content"`
}

// ServeCreate handles POST /api/suggestions. Volunteers only; suggestions
// are write-once.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, _ := auth.CurrentUser(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.Content == "" {
		httpjson.Error(w, http.StatusBadRequest, "Content is required")
		return
	}

	sug, err := h.Store.CreateSuggestion(ctx, models.NewSuggestion{
		VolunteerID: user.ID,
		NGOID:       req.NGOID,
		Content:     htmlsanitize.Sanitize(req.Content),
	})
	switch {
	case errors.Is(err, storage.ErrNGONotFound):
		httpjson.Error(w, http.StatusNotFound, "NGO not found")
		return
	case err != nil:
		h.Log.Error("suggestions: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create suggestion")
		return
	}

	h.Log.Info("suggestion created",
		zap.Int64("suggestion_id", sug.ID),
		zap.Int64("ngo_id", sug.NGOID))
	httpjson.Write(w, http.StatusCreated, sug)
}
