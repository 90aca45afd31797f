// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Store is always set and is the only thing handlers depend on. The Mongo
// fields are nil when the memory backend is selected; the health endpoint
// and the session store check for that.
type DBDeps struct {
	Store storage.Storage

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
