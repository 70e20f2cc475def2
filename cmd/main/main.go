package main

import (
	"flag"
	"fmt"
	"os"

	"rate-relay/src/config"
	"rate-relay/src/interfaces"
	"rate-relay/src/logger"
	"rate-relay/src/network"
	"rate-relay/src/ratesource"
	"rate-relay/src/ratesource/privatbank"
	"rate-relay/src/server"
	"rate-relay/src/storage"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Optional .env for local overrides
	_ = godotenv.Load()

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	if err := logger.Configure(conf.LogLevel, conf.LogFormat, conf.LogOutput, conf.LogMaxAge); err != nil {
		fmt.Printf("Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.NewLogger(conf.Name)

	// DATABASE_URL overrides the configured postgres connection string
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		conf.Storage.DBConnectionString = dsn
	}

	// Setup rate store
	var store interfaces.IRateStore

	switch conf.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresDB(conf.MConfig, appLogger)
	default:
		// Default to SQLite
		store, err = storage.NewAsyncSQLiteDB(conf.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer store.Close()

	// Setup rate source chain: network -> provider -> cache
	var netMgr interfaces.INetworkManager = network.NewAsyncNetworkManager(conf.MConfig, appLogger)
	var source interfaces.IRateSource = ratesource.NewCachedSource(
		privatbank.NewPrivatBankSource(conf.MConfig, netMgr),
		store,
	)

	// Start server. Only a listen failure is fatal.
	srv := server.NewRelayServer(conf.MConfig, appLogger, source)
	if err := srv.Start(); err != nil {
		appLogger.Critical("Server failed: %v", err)
	}
}
