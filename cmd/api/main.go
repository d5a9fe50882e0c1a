package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"content-hub/internal/config"
	pgRepo "content-hub/internal/infra/adapter/persistence/postgres"
	"content-hub/internal/infra/db"
	"content-hub/internal/infra/redisbus"
	"content-hub/internal/observability/logging"
	"content-hub/internal/observability/tracing"
	"content-hub/internal/resilience/retry"
	"content-hub/pkg/security/password"

	catUC "content-hub/internal/usecase/category"
	contentUC "content-hub/internal/usecase/content"
	"content-hub/internal/usecase/notify"
	"content-hub/internal/usecase/stats"
	topicUC "content-hub/internal/usecase/topic"
	userUC "content-hub/internal/usecase/user"

	hhttp "content-hub/internal/handler/http"
	hauth "content-hub/internal/handler/http/auth"
	hcategory "content-hub/internal/handler/http/category"
	hcontent "content-hub/internal/handler/http/content"
	"content-hub/internal/handler/http/requestid"
	htopic "content-hub/internal/handler/http/topic"
	huser "content-hub/internal/handler/http/user"
	"content-hub/internal/handler/ws"
	authservice "content-hub/internal/service/auth"

	_ "content-hub/docs" // swagger docs
)

// @title           Content Hub API
// @version         1.0
// @description     カテゴリ・トピック・コンテンツ管理とリアルタイム通知の REST API

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.InitProvider()
	defer func() { _ = shutdownTracing(context.Background()) }()

	database, err := initDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	rdb, err := redisbus.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	app := buildApp(cfg, logger, database, rdb)
	return app.serve(ctx)
}

// initDatabase opens the pool, waiting for the database with backoff, and
// applies migrations when enabled.
func initDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	var database *sql.DB
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		var err error
		database, err = db.Open(ctx, cfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("database migrations applied")
	}
	return database, nil
}

// application holds the long-running components started by serve.
type application struct {
	cfg        *config.AppConfig
	logger     *slog.Logger
	api        *http.Server
	realtime   *http.Server
	hub        *ws.Hub
	bridge     *redisbus.Bridge
	dispatcher *notify.Dispatcher
	refresher  *stats.Refresher
	limiter    *hauth.LoginLimiter
}

func buildApp(cfg *config.AppConfig, logger *slog.Logger, database *sql.DB, rdb *redis.Client) *application {
	txm := db.NewTxManager(database)
	contentRepo := pgRepo.NewContentRepo(database)
	categoryRepo := pgRepo.NewCategoryRepo(database)
	topicRepo := pgRepo.NewTopicRepo(database)
	userRepo := pgRepo.NewUserRepo(database)
	assocRepo := pgRepo.NewAssociationRepo(database, txm)

	hasher := password.NewHasher(cfg.Auth.PasswordHashCost)
	tokens := authservice.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authSvc := authservice.NewAuthService(userRepo, hasher, tokens)

	contentSvc := &contentUC.Service{
		Repo:         contentRepo,
		Associations: assocRepo,
		Logger:       logger,
	}

	// 通知チャネル: WebSocket ハブ + (任意) Redis ブリッジ
	hub := ws.NewHub(contentSvc, tokens, cfg.Realtime, logger)
	channels := []notify.Channel{hub}
	var bridge *redisbus.Bridge
	if rdb != nil {
		bridge = redisbus.NewBridge(rdb, cfg.Redis.Channel, logger)
		channels = append(channels, bridge)
	}
	dispatcher := notify.NewDispatcher(channels, cfg.Notify, logger)
	contentSvc.Publisher = dispatcher

	limiter := hauth.NewLoginLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginWindow)

	mux := http.NewServeMux()
	health := &hhttp.HealthHandler{DB: database, Version: cfg.Server.Version, Channels: dispatcher}
	if bridge != nil {
		health.Optional = map[string]hhttp.Pinger{"redis": bridge}
	}
	hhttp.RegisterProbes(mux, health)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)
	mux.Handle("POST /auth/login", hauth.LoginHandler(authSvc, limiter, logger))

	hcontent.Register(mux, contentSvc)
	hcategory.Register(mux, &catUC.Service{Repo: categoryRepo})
	htopic.Register(mux, &topicUC.Service{Repo: topicRepo, Categories: categoryRepo, Associations: assocRepo})
	huser.Register(mux, &userUC.Service{Repo: userRepo, Hasher: hasher})

	// CORS → Request ID → Recover → Logging → Tracing → Metrics → Input/Body limits → Authz
	handler := hhttp.Chain(mux,
		hhttp.CORS(cfg.CORS),
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes),
		hauth.Authz(tokens, logger),
	)

	app := &application{
		cfg:        cfg,
		logger:     logger,
		hub:        hub,
		bridge:     bridge,
		dispatcher: dispatcher,
		limiter:    limiter,
		api: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:           handler,
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		},
	}

	if cfg.Realtime.Enabled {
		rtMux := http.NewServeMux()
		rtMux.Handle("GET "+cfg.Realtime.Path, hub)
		app.realtime = &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Realtime.Port)),
			Handler:           requestid.Middleware(hhttp.Recover(logger)(rtMux)),
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		}
	}

	if cfg.Stats.Enabled {
		app.refresher = stats.NewRefresher(contentSvc, logger, 30*time.Second)
	}
	return app
}

// serve runs every server and background job until ctx is cancelled or one
// of them fails, then shuts everything down.
func (a *application) serve(ctx context.Context) error {
	if a.refresher != nil {
		if err := a.refresher.Start(a.cfg.Stats.Schedule); err != nil {
			return err
		}
		go func() { _ = a.refresher.RunOnce(ctx) }()
	}

	g, gctx := errgroup.WithContext(ctx)

	if a.bridge != nil {
		if err := a.bridge.Run(gctx, a.hub); err != nil {
			a.logger.Warn("redis bridge unavailable, running single instance", slog.Any("error", err))
		}
	}

	g.Go(func() error {
		return listen(a.api, "api", a.cfg.Server.Version, a.logger)
	})
	if a.realtime != nil {
		g.Go(func() error {
			return listen(a.realtime, "realtime", a.cfg.Server.Version, a.logger)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(a.cfg.Auth.LoginWindow)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := a.limiter.Cleanup(); n > 0 {
					a.logger.Debug("login limiter cleanup", slog.Int("removed", n))
				}
			}
		}
	})

	<-gctx.Done()
	a.logger.Info("shutting down")
	a.shutdown()
	return g.Wait()
}

func (a *application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.api.Shutdown(ctx); err != nil {
		a.logger.Error("api server shutdown failed", slog.Any("error", err))
	}
	// Shutdown は hijack 済みの WebSocket を待たないので先にハブを閉じる
	a.hub.Close()
	if a.realtime != nil {
		if err := a.realtime.Shutdown(ctx); err != nil {
			a.logger.Error("realtime server shutdown failed", slog.Any("error", err))
		}
	}
	if a.refresher != nil {
		a.refresher.Stop(ctx)
	}
	if err := a.dispatcher.Shutdown(ctx); err != nil {
		a.logger.Warn("notification dispatcher shutdown timed out", slog.Any("error", err))
	}
	a.logger.Info("server stopped")
}

// listen serves srv until it is shut down.
func listen(srv *http.Server, name, version string, logger *slog.Logger) error {
	logger.Info("server starting",
		slog.String("server", name),
		slog.String("addr", srv.Addr),
		slog.String("version", version))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}
