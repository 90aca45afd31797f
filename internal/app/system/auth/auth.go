// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is what handlers see for the authenticated caller. It is
// rebuilt from storage on every request, so profile updates, NGO linking and
// user-type changes take effect immediately.
type SessionUser struct {
	ID       int64
	Username string
	UserType string
	NGOID    *int64
}

// IsVolunteer reports whether the caller is a volunteer.
func (u *SessionUser) IsVolunteer() bool { return u.UserType == models.UserTypeVolunteer }

// IsRecruiter reports whether the caller is a recruiter.
func (u *SessionUser) IsRecruiter() bool { return u.UserType == models.UserTypeRecruiter }

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager binds a gorilla session store (cookie-only for the volatile
// backend, Mongo-persisted for the durable one) to the Storage backend that
// resolves session user ids.
type SessionManager struct {
	store sessions.Store
	name  string
	st    storage.Storage
	log   *zap.Logger
}

// NewSessionManager wires the session store and storage backend together.
// The cookie name is fixed per deployment via config.
func NewSessionManager(store sessions.Store, name string, st storage.Storage, logger *zap.Logger) (*SessionManager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	if name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	return &SessionManager{store: store, name: name, st: st, log: logger}, nil
}

// SignIn records the user id in the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	delete(sess.Values, isAuthKey)
	delete(sess.Values, userIDKey)
	return sess.Save(r, w)
}

// LoadSessionUser injects the current user into the request context when the
// session is authenticated. A session pointing at a user that no longer
// resolves is treated as anonymous rather than an error.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			if id, ok := sess.Values[userIDKey].(int64); ok {
				u, err := m.st.GetUser(r.Context(), id)
				switch {
				case err == nil:
					r = withUser(r, &SessionUser{
						ID:       u.ID,
						Username: u.Username,
						UserType: u.UserType,
						NGOID:    u.NGOID,
					})
				case errors.Is(err, storage.ErrNotFound):
					// stale cookie; fall through anonymous
				default:
					m.log.Error("session user lookup failed",
						zap.Int64("user_id", id), zap.Error(err))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the session user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// RequireSignedIn rejects anonymous callers with a JSON 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUserType rejects callers who are signed in but not of the given
// user type with a JSON 403 (and anonymous callers with a 401).
func RequireUserType(userType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if u.UserType != userType {
				writeJSONError(w, http.StatusForbidden, "Not authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a user into the request context, bypassing the
// session middleware. Only for handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
