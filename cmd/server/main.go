package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/St1cky1/task-tracker/internal/api"
	grpcapi "github.com/St1cky1/task-tracker/internal/api/grpc"
	"github.com/St1cky1/task-tracker/internal/api/handlers"
	"github.com/St1cky1/task-tracker/internal/config"
	"github.com/St1cky1/task-tracker/internal/infrastructure/client"
	"github.com/St1cky1/task-tracker/internal/infrastructure/logger"
	"github.com/St1cky1/task-tracker/internal/repository"
	"github.com/St1cky1/task-tracker/internal/usecase"
	"github.com/St1cky1/task-tracker/internal/validator"
	"github.com/St1cky1/task-tracker/internal/worker"
)

const healthCheckInterval = 10 * time.Second

func main() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище
	taskRepo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open storage")
	}

	// RabbitMQ
	var (
		publisher usecase.TaskEventPublisher
		rabbitMQ  *client.RabbitMQClient
	)
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err = client.NewRabbitMQClient(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		publisher = rabbitMQ
		log.Info().Str("queue", rabbitMQ.QueueName()).Msg("task events enabled")
	}

	taskService := usecase.NewTaskService(taskRepo, validator.NewTaskValidator(), publisher, log)
	taskHandler := handlers.NewTaskHandler(taskService, validator.NewRequestValidator(), log)
	healthHandler := handlers.NewHealthHandler(taskRepo, log)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      api.NewRouter(taskHandler, healthHandler, log),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	var grpcServer *grpcapi.HealthServer
	if cfg.GRPC.Enabled {
		grpcServer = grpcapi.NewHealthServer(taskRepo, log)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcServer != nil {
		g.Go(func() error {
			if err := grpcServer.Start(cfg.GRPC.Port); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			grpcServer.Watch(gctx, healthCheckInterval)
			return nil
		})
	}

	if cfg.RabbitMQ.WorkerEnabled {
		eventWorker := worker.NewEventWorker(rabbitMQ, log)
		g.Go(func() error {
			return eventWorker.Start(gctx)
		})
	}

	// фатальная ошибка любого из компонентов завершает процесс
	go func() {
		<-gctx.Done()
		if ctx.Err() == nil {
			log.Error().Err(context.Cause(gctx)).Msg("component stopped unexpectedly")
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.HTTP.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
		"grpc": func(ctx context.Context) error {
			if grpcServer != nil {
				grpcServer.Stop()
			}
			return nil
		},
		"background": func(ctx context.Context) error {
			cancel()
			return g.Wait()
		},
	})

	exitCode := <-wait

	// publisher and store go last, after in-flight requests are drained
	if rabbitMQ != nil {
		if err := rabbitMQ.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close rabbitmq")
			exitCode = 1
		}
	}
	if err := closeStore(); err != nil {
		log.Error().Err(err).Msg("failed to close storage")
		exitCode = 1
	}

	log.Info().Int("code", exitCode).Msg("application stopped")
	os.Exit(exitCode)
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.ITaskRepository, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := client.NewSQLiteClient(cfg.SQLite.DSN, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGormTaskRepository(db, log), func() error { return client.CloseSQLite(db) }, nil
	default:
		if cfg.Postgres.Migrate {
			if err := client.RunMigrations(cfg.Postgres.URL(), log); err != nil {
				return nil, nil, err
			}
		}
		pg, err := client.NewPostgresClient(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewTaskRepository(pg.Pool, log), func() error { pg.Close(); return nil }, nil
	}
}
