// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/memstore"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/mongostore"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/seed"
	sessionstore "github.com/volunteerconnect/volunteerconnect/internal/app/store/sessions"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/timeouts"
)

// ConnectDB selects and connects the storage backend named in config.
//
// The memory backend needs no connection at all; the mongo backend connects,
// pings and wraps the database in the durable store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if appCfg.StorageBackend == BackendMemory {
		logger.Info("using in-memory storage backend")
		return DBDeps{Store: memstore.New()}, nil
	}

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		Store:         mongostore.New(db),
		MongoClient:   client,
		MongoDatabase: db,
	}, nil
}

// EnsureSchema creates indexes and optionally seeds demonstration data.
// Everything here is idempotent: index creation tolerates existing indexes
// and the seed routine skips a non-empty backend.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if st, ok := deps.Store.(*mongostore.Store); ok {
		if err := st.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		if err := sessionstore.New(deps.MongoDatabase, appCfg.SessionTTL, []byte(appCfg.SessionKey)).EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure session indexes: %w", err)
		}
		logger.Info("MongoDB indexes ensured")
	}

	if appCfg.SeedDemoData {
		if err := seed.Run(ctx, deps.Store, logger); err != nil {
			return err
		}
	}
	return nil
}
