package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"strata/internal/config"
	"strata/internal/domain"
	"strata/internal/domain/services"
	"strata/internal/handler"
	"strata/internal/middleware"
	"strata/internal/repository/postgres"
	"strata/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and bootstrap schema
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	entityRepo := postgres.NewEntityRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	selectedRepo := postgres.NewSelectedViewRepository(repoConfig)
	settingsRepo := postgres.NewSettingsRepository(repoConfig)
	codes := postgres.NewCodeAllocator(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create the per-level services bottom-up so each level can cascade into
	// the one below it.
	levelServices := make(map[domain.Kind]services.EntityService)
	var child services.EntityService
	for i := len(domain.Levels) - 1; i >= 0; i-- {
		kind := domain.Levels[i]
		svc := service.NewEntityService(kind, entityRepo, folderRepo, codes, txManager, child, logger)
		levelServices[kind] = svc
		child = svc
	}

	folderService := service.NewFolderService(folderRepo, codes, txManager, logger)
	selectedService := service.NewSelectedViewService(selectedRepo, folderRepo, codes, txManager, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)

	// Move/reorder dispatch over the closed kind set
	registry := service.NewArrangeRegistry()
	for kind, svc := range levelServices {
		registry.Register(kind, svc)
	}
	registry.Register(domain.KindFolder, folderService)
	registry.Register(domain.KindSelected, selectedService)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	selectedHandler := handler.NewSelectedViewHandler(selectedService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	arrangeHandler := handler.NewArrangeHandler(registry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Hierarchy level routes
	levelPaths := map[domain.Kind]string{
		domain.KindShareholder: "shareholders",
		domain.KindCompany:     "companies",
		domain.KindProject:     "projects",
		domain.KindTable:       "tables",
		domain.KindView:        "views",
	}
	for kind, path := range levelPaths {
		h := handler.NewEntityHandler(kind, levelServices[kind], logger)
		mux.HandleFunc("GET /api/"+path, h.List)
		mux.HandleFunc("POST /api/"+path, h.Create)
		mux.HandleFunc("PUT /api/"+path+"/{id}", h.Update)
		mux.HandleFunc("DELETE /api/"+path+"/{id}", h.Delete)
	}

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("PUT /api/folders/{id}", folderHandler.Update)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)

	// Selected view routes
	mux.HandleFunc("GET /api/selected", selectedHandler.List)
	mux.HandleFunc("POST /api/selected", selectedHandler.Create)
	mux.HandleFunc("DELETE /api/selected/{id}", selectedHandler.Delete)
	mux.HandleFunc("GET /api/selected/check/{viewId}", selectedHandler.Check)
	mux.HandleFunc("GET /api/views/{id}/location", selectedHandler.Location)

	// Move/reorder routes
	mux.HandleFunc("PUT /api/move/{type}/{id}", arrangeHandler.Move)
	mux.HandleFunc("PUT /api/reorder", arrangeHandler.Reorder)

	// Settings routes
	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Put)

	// Build middleware chain
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS - outermost so OPTIONS pre-flight requests are handled first
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
