package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"applesapi/internal/config"
	"applesapi/internal/database"
	"applesapi/internal/database/migration"
	handlers "applesapi/internal/http/handler"
	"applesapi/internal/repository"
	"applesapi/internal/repository/objectstore"
	"applesapi/internal/repository/postgres"
	"applesapi/internal/service"
	"applesapi/internal/storage"
)

// backend bundles the storage-specific wiring for one STORE_BACKEND.
type backend struct {
	Service service.AppleService
	Health  handlers.Pinger
	Policy  service.IDPolicy
	close   func() error
}

func (b *backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Seams for tests.
var (
	openPostgres = database.NewPostgres
	openMinIO    = storage.NewMinIO
)

func newBackend(ctx context.Context, cfg *config.AppConfig, logger log.FieldLogger, reg prometheus.Registerer) (*backend, error) {
	maxRetry := time.Duration(cfg.StartupRetryMaxElapsedSec) * time.Second

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := openPostgres(cfg.Database, logger, maxRetry)
		if err != nil {
			return nil, errors.Wrap(err, "connect to database")
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "migrate database")
		}
		if reg != nil {
			if err := reg.Register(collectors.NewDBStatsCollector(db, cfg.Database.Name)); err != nil {
				_ = db.Close()
				return nil, errors.Wrap(err, "register db stats")
			}
		}
		return newBackendFromRepo(postgres.NewApplePostgres(db), handlers.PingerFunc(db.PingContext),
			service.IDPolicyServerGenerated, db.Close), nil

	case config.BackendObjectStore:
		store, err := openMinIO(cfg.MinIO, logger, maxRetry)
		if err != nil {
			return nil, errors.Wrap(err, "initialize object storage")
		}
		return newBackendFromRepo(objectstore.NewAppleObjectStore(store), store,
			service.IDPolicyClientSupplied, nil), nil

	default:
		return nil, errors.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newBackendFromRepo(repo repository.AppleRepository, health handlers.Pinger, policy service.IDPolicy, closeFn func() error) *backend {
	return &backend{
		Service: service.NewAppleService(repo, policy),
		Health:  health,
		Policy:  policy,
		close:   closeFn,
	}
}
