package main

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/relaycrm/crm-system/internal/core/ports"
	"github.com/relaycrm/crm-system/internal/core/service"
	"github.com/relaycrm/crm-system/internal/infrastructure/db/mongo"
	"github.com/relaycrm/crm-system/internal/infrastructure/db/relational"
	redisstore "github.com/relaycrm/crm-system/internal/infrastructure/db/redis"
	"github.com/relaycrm/crm-system/internal/infrastructure/report"
	"github.com/relaycrm/crm-system/internal/infrastructure/spreadsheet"
	"github.com/relaycrm/crm-system/internal/infrastructure/storage"
)

// app holds the open connections and the services built on them.
type app struct {
	db    *gorm.DB
	mongo *mongodriver.Client
	redis *redis.Client

	customers *relational.CustomerRepository
	users     *relational.UserRepository
	audit     ports.ImportAuditRepository
	denylist  ports.TokenDenylist
	media     *storage.MediaStore

	closers []func(context.Context) error
}

// openApp connects to the relational store and migrates it.
func openApp(ctx context.Context) (*app, error) {
	db, err := relational.Open(ctx, relational.Config{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		Debug:           cfg.Env == "development" && cfg.LogLevel == "debug",
	}, log)
	if err != nil {
		return nil, err
	}
	if err := relational.Migrate(db); err != nil {
		_ = relational.Close(db)
		return nil, err
	}

	a := &app{
		db:        db,
		customers: relational.NewCustomerRepository(db),
		users:     relational.NewUserRepository(db),
		media:     storage.NewMediaStore(cfg.Media.Root),
	}
	a.closers = append(a.closers, func(context.Context) error { return relational.Close(db) })
	log.Info().Str("driver", cfg.DB.Driver).Msg("relational store ready")
	return a, nil
}

// connectAudit opens the import audit trail.
func (a *app) connectAudit(ctx context.Context) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	repo := mongo.NewImportAuditRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	a.mongo = client
	a.audit = repo
	a.closers = append(a.closers, client.Disconnect)
	log.Info().Str("database", cfg.Mongo.Database).Msg("import audit ready")
	return nil
}

// connectDenylist opens the revoked-token store.
func (a *app) connectDenylist(ctx context.Context) error {
	client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}

	a.redis = client
	a.denylist = redisstore.NewTokenDenylist(client)
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	log.Info().Str("addr", cfg.Redis.Addr).Msg("token denylist ready")
	return nil
}

func (a *app) importService() ports.ImportService {
	return service.NewImportService(
		a.customers,
		spreadsheet.NewReader(),
		spreadsheet.NewTemplate(),
		a.audit,
		service.ImportOptions{StrictHeaders: cfg.Import.StrictHeaders},
		log,
	)
}

func (a *app) reportService() ports.ReportService {
	return service.NewReportService(a.customers, report.NewPDFRenderer(), log)
}

func (a *app) userService() *service.UserService {
	return service.NewUserService(a.users, a.media, log)
}

// Close releases connections in reverse order of opening.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	return errors.Join(errs...)
}
