package applications_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/features/applications"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/memstore"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/seed"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

func newSeededHandler(t *testing.T) (*applications.Handler, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	if err := seed.Run(context.Background(), st, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return applications.NewHandler(st, zap.NewNop()), st
}

func serve(h *applications.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	applications.Routes(h).ServeHTTP(rec, req)
	return rec
}

func volunteer(id int64) *auth.SessionUser {
	return &auth.SessionUser{ID: id, UserType: models.UserTypeVolunteer}
}

func recruiterFor(ngoID int64) *auth.SessionUser {
	return &auth.SessionUser{ID: 99, UserType: models.UserTypeRecruiter, NGOID: &ngoID}
}

func apply(t *testing.T, h *applications.Handler, volunteerID, opportunityID int64) models.Application {
	t.Helper()
	body := `{"opportunityId": ` + strconv.FormatInt(opportunityID, 10) + `, "message": "I would love to help"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req = auth.WithTestUser(req, volunteer(volunteerID))
	rec := serve(h, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("apply: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var app models.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &app); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	return app
}

func TestServeCreate_DerivesNGOAndGuardsDuplicates(t *testing.T) {
	handler, _ := newSeededHandler(t)

	app := apply(t, handler, 10, 2)
	if app.NGOID != 2 {
		t.Errorf("ngoId: got %d, want 2 (derived from opportunity)", app.NGOID)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status: got %q, want %q", app.Status, models.ApplicationPending)
	}

	// Second application to the same opportunity is rejected.
	body := `{"opportunityId": 2}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req = auth.WithTestUser(req, volunteer(10))
	rec := serve(handler, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "already applied") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	// A different volunteer may still apply.
	apply(t, handler, 11, 2)
}

func TestServeCreate_DeletedOrMissingOpportunity(t *testing.T) {
	handler, st := newSeededHandler(t)

	deleted := true
	if _, err := st.UpdateOpportunity(context.Background(), 1, models.OpportunityPatch{Deleted: &deleted}); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	for _, oppID := range []string{"1", "999"} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"opportunityId": `+oppID+`}`))
		req = auth.WithTestUser(req, volunteer(10))
		rec := serve(handler, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("opportunity %s: got %d, want %d", oppID, rec.Code, http.StatusNotFound)
		}
	}
}

func TestServeList_SplitsByUserType(t *testing.T) {
	handler, _ := newSeededHandler(t)

	apply(t, handler, 10, 1)
	apply(t, handler, 10, 2)
	apply(t, handler, 11, 2)

	// Volunteer sees only their own.
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, volunteer(10))
	rec := serve(handler, req)
	var list []models.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("volunteer list: got %d, want 2", len(list))
	}

	// Recruiter sees all applications to their NGO.
	req = httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, recruiterFor(2))
	rec = serve(handler, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("recruiter list: got %d, want 2", len(list))
	}

	// Recruiter without an NGO gets a 400.
	req = httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 99, UserType: models.UserTypeRecruiter})
	rec = serve(handler, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ngo-less recruiter: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeUpdate_StatusTransitions(t *testing.T) {
	handler, _ := newSeededHandler(t)

	app := apply(t, handler, 10, 3)

	// A recruiter from another NGO may not decide it.
	req := httptest.NewRequest("PATCH", "/"+strconv.FormatInt(app.ID, 10), strings.NewReader(`{"status":"accepted"}`))
	req = auth.WithTestUser(req, recruiterFor(1))
	rec := serve(handler, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign recruiter: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// The owning recruiter accepts it.
	req = httptest.NewRequest("PATCH", "/"+strconv.FormatInt(app.ID, 10), strings.NewReader(`{"status":"accepted"}`))
	req = auth.WithTestUser(req, recruiterFor(3))
	rec = serve(handler, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var updated models.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if updated.Status != models.ApplicationAccepted {
		t.Errorf("status: got %q, want %q", updated.Status, models.ApplicationAccepted)
	}

	// Decisions are final.
	req = httptest.NewRequest("PATCH", "/"+strconv.FormatInt(app.ID, 10), strings.NewReader(`{"status":"rejected"}`))
	req = auth.WithTestUser(req, recruiterFor(3))
	rec = serve(handler, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-decide: got %d, want %d", rec.Code, http.StatusConflict)
	}

	// Unknown statuses are rejected before hitting the store.
	req = httptest.NewRequest("PATCH", "/"+strconv.FormatInt(app.ID, 10), strings.NewReader(`{"status":"maybe"}`))
	req = auth.WithTestUser(req, recruiterFor(3))
	rec = serve(handler, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
