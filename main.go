package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatali-fataliyev/budget_ledger/api"
	"github.com/fatali-fataliyev/budget_ledger/internal/auth"
	"github.com/fatali-fataliyev/budget_ledger/internal/budget"
	"github.com/fatali-fataliyev/budget_ledger/internal/config"
	"github.com/fatali-fataliyev/budget_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/budget_ledger/internal/events"
	"github.com/fatali-fataliyev/budget_ledger/internal/storage"
	"github.com/fatali-fataliyev/budget_ledger/logging"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type", api.TraceIDHeader},
	AllowCredentials: true,
})

type closableStorage interface {
	budget.Storage
	Close() error
}

func main() {
	hashKey := flag.String("hash-api-key", "", "print the bcrypt hash of the given API key and exit")
	flag.Parse()

	if *hashKey != "" {
		hash, err := auth.HashAPIKey(*hashKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if err := run(); err != nil {
		logging.Logger.Errorf("application stopped: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(cfg.LogLevel, cfg.AppEnv, cfg.LogDir); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.Logger.Info("application starting...")

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	publisher, err := openPublisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bt := budget.NewBudgetTracker(store, publisher)
	if err := bt.Load(contextutil.WithTraceID(ctx, "startup")); err != nil {
		return err
	}

	server := http.NewServeMux()
	api.NewApi(bt, cfg.APIKeyHash).Register(server)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsConf.Handler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Logger.Infof("Starting server on port: %s (storage: %s)", cfg.Port, bt.StorageType)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStorage(cfg *config.Config) (closableStorage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return nopCloser{storage.NewInMemoryStorage()}, nil
	case config.BackendFile:
		fileStorage, err := storage.NewFileStorage(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return nopCloser{fileStorage}, nil
	case config.BackendSQLite:
		return storage.NewSQLiteStorage(cfg.SQLiteDBPath)
	case config.BackendMySQL:
		db, err := storage.InitMySQL(storage.MySQLConfig{
			User:    cfg.DBUser,
			Pass:    cfg.DBPass,
			Host:    cfg.DBHost,
			Port:    cfg.DBPort,
			Name:    cfg.DBName,
			FullDSN: cfg.FullDSN,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewMySQLStorage(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func openPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		logging.Logger.Info("AMQP_URL not set, ledger events are not published")
		return events.NoopPublisher{}, nil
	}
	return events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
}

type nopCloser struct {
	budget.Storage
}

func (nopCloser) Close() error { return nil }
