package authn_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gsessions "github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/features/authn"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/memstore"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
)

func newTestHandler(t *testing.T) (*authn.Handler, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	cookies := gsessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	sm, err := auth.NewSessionManager(cookies, "vc_session", st, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return authn.NewHandler(st, sm, zap.NewNop()), st
}

func postJSON(t *testing.T, body string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func TestServeRegister_CreatesAndSignsIn(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, req := postJSON(t, `{
		"username": "Maria",
		"password": "SecurePass123",
		"email": "maria@example.com",
		"fullName": "Maria Lopez",
		"userType": "volunteer"
	}`)
	handler.ServeRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("id: got %d, want 1", user.ID)
	}
	if user.Username != "Maria" {
		t.Errorf("username: got %q, want %q", user.Username, "Maria")
	}
	if user.Password != "" {
		t.Error("password leaked in response body")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestServeRegister_DuplicateUsernameCaseInsensitive(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, req := postJSON(t, `{"username":"maria","password":"pw","email":"a@example.com","fullName":"A","userType":"volunteer"}`)
	handler.ServeRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: got %d", rec.Code)
	}

	rec, req = postJSON(t, `{"username":"MARIA","password":"pw","email":"b@example.com","fullName":"B","userType":"volunteer"}`)
	handler.ServeRegister(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Username already exists") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestServeRegister_RejectsUnknownUserType(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, req := postJSON(t, `{"username":"x","password":"pw","email":"x@example.com","fullName":"X","userType":"admin"}`)
	handler.ServeRegister(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeLogin_RoundTrip(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, req := postJSON(t, `{"username":"sam","password":"SecurePass123","email":"sam@example.com","fullName":"Sam","userType":"recruiter"}`)
	handler.ServeRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: got %d", rec.Code)
	}

	// Username lookup is case-insensitive.
	rec, req = postJSON(t, `{"username":"SAM","password":"SecurePass123"}`)
	handler.ServeLogin(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d (body %s)", rec.Code, rec.Body.String())
	}

	rec, req = postJSON(t, `{"username":"sam","password":"WrongPass"}`)
	handler.ServeLogin(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServeLogin_UnknownUser(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, req := postJSON(t, `{"username":"ghost","password":"pw"}`)
	handler.ServeLogin(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestServeLogin_RateLimited(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, req := postJSON(t, `{"username":"dana","password":"SecurePass123","email":"dana@example.com","fullName":"Dana","userType":"volunteer"}`)
	handler.ServeRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: got %d", rec.Code)
	}

	for i := 0; i < 5; i++ {
		rec, req = postJSON(t, `{"username":"dana","password":"WrongPass"}`)
		req.RemoteAddr = "203.0.113.7:1000"
		handler.ServeLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want %d", i+1, rec.Code, http.StatusUnauthorized)
		}
	}

	// Sixth attempt on the same account trips the limiter even with the
	// right password.
	rec, req = postJSON(t, `{"username":"DANA","password":"SecurePass123"}`)
	req.RemoteAddr = "198.51.100.4:2000"
	handler.ServeLogin(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("rate limited attempt: got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestServeCurrentUser_Unauthenticated(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/user", nil)
	rec := httptest.NewRecorder()
	handler.ServeCurrentUser(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
