// Package main is the entry point for the payment service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/paydesk/payment-service/docs"
	"github.com/paydesk/payment-service/internal/api"
	"github.com/paydesk/payment-service/internal/core/payment"
	"github.com/paydesk/payment-service/internal/core/ports"
	"github.com/paydesk/payment-service/internal/core/service"
	"github.com/paydesk/payment-service/internal/infrastructure/config"
	"github.com/paydesk/payment-service/internal/infrastructure/db/mongo"
	"github.com/paydesk/payment-service/internal/infrastructure/db/redis"
	"github.com/paydesk/payment-service/internal/infrastructure/db/sqlite"
	"github.com/paydesk/payment-service/internal/infrastructure/http/handlers"
	"github.com/paydesk/payment-service/internal/infrastructure/queue"
	"github.com/paydesk/payment-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storage bundles the repositories of the selected driver.
type storage struct {
	users        ports.UserRepository
	transactions ports.TransactionRepository
	check        handlers.Check
	close        func(context.Context) error
}

// @title Payment Service API
// @version 1.0
// @description Bearer-token protected payment execution and transaction history.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load(bootLog)

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("payment service stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing storage")
		}
	}()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	checks := []handlers.Check{store.check}

	// --- Core services ---
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	directory := service.NewUserDirectory(store.users, log)
	if cfg.Bootstrap.Username != "" {
		if _, err := directory.Provision(ctx, cfg.Bootstrap.Username, cfg.Bootstrap.Password, cfg.Bootstrap.Roles); err != nil {
			return err
		}
	}

	var publisher ports.TransactionPublisher
	var ledger ports.PaymentLedger
	if cfg.LedgerEnabled() {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		redisLedger := redis.NewLedger(rdb)
		dispatcher := queue.NewLedgerDispatcher(cfg.Redis.LedgerWorkers, redisLedger, logger.Component("ledger"))
		dispatcher.Start(ctx)

		publisher, ledger = dispatcher, redisLedger
		checks = append(checks, handlers.RedisCheck(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("payment ledger enabled")
	}

	payments := service.NewPaymentService(payment.NewDefaultRegistry(logger.Component("strategy")), store.transactions, publisher, log)
	if ledger != nil {
		payments.WithLedger(ledger)
	}

	e := api.NewRouter(api.Dependencies{
		Auth:               service.NewAuthService(tokens, log),
		Authenticator:      service.NewAuthenticator(tokens, directory, log),
		Payments:           payments,
		HealthChecks:       checks,
		PublicPaths:        cfg.Auth.PublicPaths,
		PaymentAuthorities: cfg.Auth.PaymentAuthorities,
		Log:                log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting payment service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &storage{
			users:        mongo.NewUserRepository(db),
			transactions: mongo.NewTransactionRepository(db),
			check:        handlers.MongoCheck(db),
			close:        client.Disconnect,
		}, nil
	default:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:        sqlite.NewUserRepository(db),
			transactions: sqlite.NewTransactionRepository(db),
			check:        handlers.SQLCheck("sqlite", db),
			close:        func(context.Context) error { return db.Close() },
		}, nil
	}
}
