// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Storage backend names accepted in configuration.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging
// level, CORS). AppConfig is everything specific to VolunteerConnect: which
// storage backend to run, how to reach MongoDB, session cookie settings and
// whether to seed demonstration data on an empty backend.
type AppConfig struct {
	// StorageBackend selects the persistence layer: "memory" for the
	// volatile in-process store, "mongo" for the durable one.
	StorageBackend string

	// MongoDB connection configuration, used only with the mongo backend.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionTTL    time.Duration // How long an untouched session survives

	// SeedDemoData populates an empty backend with the demonstration
	// NGOs and opportunities at startup.
	SeedDemoData bool
}
