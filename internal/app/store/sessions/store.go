// internal/app/store/sessions/store.go
package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	gsessions "github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultTTL is how long an untouched session survives. Mongo's TTL monitor
// removes expired records server-side.
const DefaultTTL = 24 * time.Hour

// record is the persisted shape of one web session. Values are kept as an
// opaque securecookie-encoded blob so the cookie codec and the store codec
// never disagree.
type record struct {
	ID       string    `bson:"_id"`
	Data     string    `bson:"data"`
	Modified time.Time `bson:"modified_at"`
	Expires  time.Time `bson:"expires_at"`
}

// Store is a gorilla sessions.Store persisted in a Mongo collection. Only
// the session id travels in the cookie; values live server-side.
type Store struct {
	c      *mongo.Collection
	codecs []securecookie.Codec
	opts   *gsessions.Options
	ttl    time.Duration
}

var _ gsessions.Store = (*Store)(nil)

// New creates a Mongo-backed session store. keyPairs feed securecookie the
// same way gorilla's CookieStore takes them.
func New(db *mongo.Database, ttl time.Duration, keyPairs ...[]byte) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		c:      db.Collection("sessions"),
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		opts: &gsessions.Options{
			Path:     "/",
			MaxAge:   int(ttl / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		ttl: ttl,
	}
}

// Options overrides the default cookie options for new sessions.
func (s *Store) Options(opts gsessions.Options) { s.opts = &opts }

// EnsureIndexes creates the TTL index that expires stale sessions.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("idx_sessions_ttl").SetExpireAfterSeconds(0),
	})
	return err
}

// Get returns the cached session for this request, loading it once.
func (s *Store) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie, or starts a fresh one.
// A cookie pointing at a missing or expired record yields a fresh session,
// not an error.
func (s *Store) New(r *http.Request, name string) (*gsessions.Session, error) {
	sess := gsessions.NewSession(s, name)
	opts := *s.opts
	sess.Options = &opts
	sess.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.codecs...); err != nil {
		return sess, nil
	}

	var rec record
	err = s.c.FindOne(r.Context(), bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sess, nil
	}
	if err != nil {
		return sess, err
	}
	if time.Now().UTC().After(rec.Expires) {
		return sess, nil
	}
	if err := securecookie.DecodeMulti(name, rec.Data, &sess.Values, s.codecs...); err != nil {
		return sess, nil
	}
	sess.ID = rec.ID
	sess.IsNew = false
	return sess, nil
}

// Save persists the session and refreshes the cookie. MaxAge < 0 deletes the
// record and expires the cookie.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, sess *gsessions.Session) error {
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if _, err := s.c.DeleteOne(r.Context(), bson.M{"_id": sess.ID}); err != nil {
				return err
			}
		}
		http.SetCookie(w, gsessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	data, err := securecookie.EncodeMulti(sess.Name(), sess.Values, s.codecs...)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = s.c.UpdateOne(r.Context(),
		bson.M{"_id": sess.ID},
		bson.M{"$set": bson.M{
			"data":        data,
			"modified_at": now,
			"expires_at":  now.Add(s.ttl),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, gsessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}
