package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fatiguelens/internal/config"
	"fatiguelens/internal/db"
	"fatiguelens/internal/logging"
	"fatiguelens/internal/repository"
)

// fatigue-export dumps the predictions table to CSV for offline analysis, or
// with -check prints a store diagnostic instead.
func main() {
	output := flag.String("o", "predictions.csv", "output file path")
	check := flag.Bool("check", false, "print record count and latest rows instead of exporting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	pool, err := db.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	repo := repository.NewPredictionRepository(pool)
	ctx := context.Background()

	if *check {
		if err := runCheck(ctx, repo, os.Stdout); err != nil {
			logger.Fatal("store check failed", zap.Error(err))
		}
		return
	}

	file, err := os.Create(*output)
	if err != nil {
		logger.Fatal("failed to create output file", zap.Error(err))
	}
	defer file.Close()

	exported, err := runExport(ctx, repo, file)
	if err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}

	fmt.Printf("Exported %d records to %s\n", exported, *output)
}
