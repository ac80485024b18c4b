package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ogurasousui/hotel-pms/internal/adapters/grpc/handler"
	"github.com/ogurasousui/hotel-pms/internal/adapters/repository/memory"
	"github.com/ogurasousui/hotel-pms/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/property"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
	"github.com/ogurasousui/hotel-pms/internal/core/stats"
	"github.com/ogurasousui/hotel-pms/internal/platform/admin"
	"github.com/ogurasousui/hotel-pms/internal/platform/config"
	pg "github.com/ogurasousui/hotel-pms/internal/platform/db/postgres"
	"github.com/ogurasousui/hotel-pms/internal/platform/logging"
	"github.com/ogurasousui/hotel-pms/internal/platform/metrics"
	"github.com/ogurasousui/hotel-pms/internal/platform/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	propertyName := flag.String("property-name", "", "name of the property created when none exists")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := config.LoadEnvFiles(".env"); err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log)
	if err := run(ctx, cfg, *propertyName, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server stopped")
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func run(ctx context.Context, cfg *config.Config, propertyName string, logger zerolog.Logger) error {
	loc := cfg.Schedule.Location

	store := memory.NewStore()
	if err := memory.Seed(ctx, store, time.Now(), loc); err != nil {
		return fmt.Errorf("seed entity store: %w", err)
	}
	counts := store.Counts()
	logger.Info().
		Int("employees", counts.Employees).
		Int("shifts", counts.Shifts).
		Int("departments", counts.Departments).
		Str("timezone", loc.String()).
		Msg("entity store seeded")

	kv, kvTx, closeKV, err := openPropertyStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	shifts := shift.NewService(store.Shifts(), nil, store, loc)
	employees := employee.NewService(store.Employees(), store.Shifts(), nil, store)
	departments := department.NewService(store.Departments(), nil, store)
	report := stats.NewService(store.Employees(), store.Shifts(), store.Departments(), nil, store, loc)
	properties := property.NewService(kv, nil, kvTx, cfg.Schedule.Timezone)

	current, err := properties.EnsureDefault(ctx, propertyName)
	if err != nil {
		return fmt.Errorf("ensure default property: %w", err)
	}
	logger.Info().Str("property_id", current.ID).Str("property", current.Name).Msg("current property")

	m := metrics.New()
	m.RegisterStoreSize("employees", func() int { return store.Counts().Employees })
	m.RegisterStoreSize("shifts", func() int { return store.Counts().Shifts })
	m.RegisterStoreSize("departments", func() int { return store.Counts().Departments })

	grpcServer := server.New(
		cfg.Server.ListenAddr,
		handler.NewStaffGrpcHandler(employees, shifts, departments, report),
		handler.NewPropertyGrpcHandler(properties),
		logger,
		m,
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return grpcServer.Run(gctx)
	})
	if cfg.Admin.ListenAddr != "" {
		adminServer := admin.New(cfg.Admin.ListenAddr, m.Registry(), logger)
		group.Go(func() error {
			return adminServer.Run(gctx)
		})
	}

	return group.Wait()
}

type propertyTransactions interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

func openPropertyStore(ctx context.Context, cfg *config.Config) (property.Store, propertyTransactions, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pg.NewPool(ctx, cfg.Database, cfg.Schedule.Timezone)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("initialize database pool: %w", err)
		}
		return postgres.NewKVRepository(pool), pg.NewTransactionManager(pool), pool.Close, nil
	default:
		kv := memory.NewKVStore()
		return kv, kv, func() {}, nil
	}
}
