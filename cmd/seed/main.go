package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"strata/internal/config"
	"strata/internal/domain"
	"strata/internal/domain/services"
	"strata/internal/repository/postgres"
	"strata/internal/seed"
	"strata/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed sample data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("seeding database",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
		"schema_only", *schemaOnly,
	)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Ensure tables exist
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("schema ready")

	if *schemaOnly {
		return
	}

	// Build the level services so seeded rows get codes and sort keys the
	// normal way.
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	entityRepo := postgres.NewEntityRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	codes := postgres.NewCodeAllocator(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	levelServices := make(map[domain.Kind]services.EntityService)
	var child services.EntityService
	for i := len(domain.Levels) - 1; i >= 0; i-- {
		kind := domain.Levels[i]
		svc := service.NewEntityService(kind, entityRepo, folderRepo, codes, txManager, child, logger)
		levelServices[kind] = svc
		child = svc
	}

	dataset, err := seed.LoadDataset()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	seeder := seed.NewSeeder(levelServices, logger)
	if err := seeder.Run(ctx, dataset); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	logger.Info("seed complete")
}
