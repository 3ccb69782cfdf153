package main

import (
	"context"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/alphadate/api/handler"
	"github.com/fastygo/alphadate/internal/config"
	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/alphadate/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/alphadate/internal/infrastructure/redis"
	"github.com/fastygo/alphadate/internal/middleware"
	"github.com/fastygo/alphadate/internal/router"
	"github.com/fastygo/alphadate/internal/services"
	"github.com/fastygo/alphadate/internal/services/lifecycle"
	"github.com/fastygo/alphadate/pkg/httpcontext"
	"github.com/fastygo/alphadate/pkg/logger"
	"github.com/fastygo/alphadate/repository"
	"github.com/fastygo/alphadate/repository/local"
	"github.com/fastygo/alphadate/repository/postgres"
	redisRepo "github.com/fastygo/alphadate/repository/redis"
	"github.com/fastygo/alphadate/repository/rest"
	activityUC "github.com/fastygo/alphadate/usecase/activity"
	gateUC "github.com/fastygo/alphadate/usecase/gate"
	"github.com/fastygo/alphadate/usecase/gateway"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	localDB, err := localstore.Open(cfg.Local.Path, cfg.Local.Bucket)
	if err != nil {
		zapLogger.Fatal("failed to open local store", zap.Error(err))
	}
	manager.Register("local_store", func(ctx context.Context) error {
		return localDB.Close()
	})
	// The snapshot job and the gateway fallback share one activity repository.
	localActivities := local.NewActivityRepository(localDB, zapLogger)
	localStore := repository.Store{
		Name:       local.StoreName,
		Activities: localActivities,
		Feedbacks:  local.NewFeedbackRepository(localDB, zapLogger),
	}

	// The backend is fixed for the process lifetime.
	primary := localStore
	var remotePinger monitor.Pinger
	if cfg.Remote.Configured() {
		if cfg.Remote.IsPostgres() {
			if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
				zapLogger.Error("migrations failed, continuing with existing schema", zap.Error(err))
			}
			pool, err := pgInfra.NewPool(appCtx, cfg.Remote, zapLogger)
			if err != nil {
				zapLogger.Fatal("invalid postgres remote", zap.Error(err))
			}
			manager.Register("postgres", func(ctx context.Context) error {
				pool.Close()
				return nil
			})
			primary = postgres.NewStore(pool)
			remotePinger = pgInfra.Pinger{Pool: pool}
		} else {
			client := rest.NewClient(cfg.Remote.URL, cfg.Remote.Key, cfg.Remote.Timeout)
			primary = rest.NewStore(client)
			remotePinger = client
		}
	} else {
		zapLogger.Info("remote store not configured, using local store")
	}
	zapLogger.Info("storage backend selected", zap.String("backend", primary.Name))

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Warn("redis unavailable, current user kept locally", zap.Error(err))
		redisClient = nil
	}
	var currentUser repository.CurrentUserRepository = local.NewCurrentUserRepository(localDB)
	if redisClient != nil {
		currentUser = redisRepo.NewCurrentUserRepository(redisClient, cfg.Redis.UserKey, 0)
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	mon := monitor.New(primary.Name, remotePinger, redisClient, localDB, 10*time.Second, zapLogger)
	mon.Start()
	manager.RegisterFunc("monitor", mon.Stop)

	if primary.Name != local.StoreName && cfg.Snapshot.Enabled {
		snapshot := services.NewSnapshotJob(
			primary.Activities,
			localActivities,
			mon,
			zapLogger,
			services.SnapshotConfig{Interval: cfg.Snapshot.Interval},
		)
		snapshot.Start()
		manager.Register("snapshot", func(ctx context.Context) error {
			snapshot.Stop(ctx)
			return nil
		})
	}

	gw := gateway.New(primary, &localStore, zapLogger)
	activityUseCase := activityUC.New(gw, zapLogger)
	gateUseCase := gateUC.New(gateUC.Config{
		Code:     cfg.Gate.Passcode,
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		TokenTTL: cfg.JWT.TTL,
	}, currentUser, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Session:  apiHandler.NewSessionHandler(gateUseCase, ctxAdapter, zapLogger),
		Activity: apiHandler.NewActivityHandler(activityUseCase, gateUseCase, ctxAdapter, zapLogger),
		Letter:   apiHandler.NewLetterHandler(activityUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      middleware.AccessLog(zapLogger)(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
