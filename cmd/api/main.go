package main

import (
	"flag"

	"github.com/oguzk/noteshub/internal/bootstrap"
	"github.com/oguzk/noteshub/internal/pkg/logger"
	"github.com/oguzk/noteshub/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "path to SQL migrations directory")
	flag.Parse()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := bootstrap.SetupDatabase(cfg, *migrationsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up database")
	}

	deps, err := bootstrap.BuildDependencies(cfg, database)
	if err != nil {
		database.Close()
		logger.Fatal().Err(err).Msg("Failed to build dependencies")
	}

	if err := server.Run(deps); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
