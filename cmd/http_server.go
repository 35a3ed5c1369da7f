package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tuanngo/material-management/internal"
	"github.com/tuanngo/material-management/internal/auth"
	authRepo "github.com/tuanngo/material-management/internal/auth/postgres"
	"github.com/tuanngo/material-management/internal/department"
	departmentRepo "github.com/tuanngo/material-management/internal/department/postgres"
	"github.com/tuanngo/material-management/internal/material"
	materialRepo "github.com/tuanngo/material-management/internal/material/postgres"
	"github.com/tuanngo/material-management/internal/preview"
	"github.com/tuanngo/material-management/internal/stats"
	statsRepo "github.com/tuanngo/material-management/internal/stats/postgres"
	"github.com/tuanngo/material-management/internal/storage"
	"github.com/tuanngo/material-management/internal/textextract"
	"github.com/tuanngo/material-management/internal/transport/rest"
	"github.com/tuanngo/material-management/internal/user"
	userRepo "github.com/tuanngo/material-management/internal/user/postgres"
	"github.com/tuanngo/material-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM shares the pgx connection pool instead of opening a second one.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	store, err := storage.NewFileStore(cfg.Storage, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration)
	authService := auth.NewService(authRepo.NewRepository(gormDB), tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	departmentService := department.NewService(departmentRepo.NewDepartmentRepository(gormDB), lg)
	departmentHandler := department.NewHandler(departmentService)

	materialService := material.NewService(
		materialRepo.NewMaterialRepository(gormDB),
		departmentService,
		store,
		textextract.ExtractFile,
		lg,
	)
	materialHandler := material.NewHandler(materialService)

	previewService := preview.NewService(materialService, store, lg)
	previewHandler := preview.NewHandler(previewService)

	statsService := stats.NewService(statsRepo.NewStatsRepository(gormDB), lg)
	statsHandler := stats.NewHandler(statsService)

	userService := user.NewService(userRepo.NewUserRepository(gormDB), authService, lg)
	userHandler := user.NewHandler(userService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:                db.DB,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		DepartmentHandler: departmentHandler,
		MaterialHandler:   materialHandler,
		PreviewHandler:    previewHandler,
		StatsHandler:      statsHandler,
		ContentDir:        store.ContentDir(),
		PublicPrefix:      store.PublicPrefix(),
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		Logger:            lg,
	})

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
