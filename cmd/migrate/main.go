// Command migrate applies, rolls back or reports the embedded schema migrations.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"shop-backend/pkg/database"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	command := flag.String("command", "up", "migration command: up, down or status")
	target := flag.Int64("target", 0, "target version for down (0 rolls back one step)")
	flag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	migrator := database.NewMigrator(database.DSN(config.Database), logger)
	ctx := context.Background()

	switch *command {
	case "up":
		err = migrator.Up(ctx)
	case "down":
		err = migrator.Down(ctx, *target)
	case "status":
		err = migrator.Status(ctx)
	default:
		logger.Error("Unknown migration command", zap.String("command", *command))
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatal("Migration failed", zap.String("command", *command), zap.Error(err))
	}
}
