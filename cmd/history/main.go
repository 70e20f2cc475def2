package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"rate-relay/src/config"
	"rate-relay/src/history"
	"rate-relay/src/interfaces"
	"rate-relay/src/logger"
	"rate-relay/src/network"
	"rate-relay/src/ratesource"
	"rate-relay/src/ratesource/privatbank"
	"rate-relay/src/storage"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------

// currencyList collects repeatable -currency flags.
type currencyList []string

func (c *currencyList) String() string {
	return strings.Join(*c, ",")
}

func (c *currencyList) Set(value string) error {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return fmt.Errorf("currency code cannot be empty")
	}
	*c = append(*c, code)
	return nil
}

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	days := flag.Int("days", 1, "number of days to report, today included")
	var extra currencyList
	flag.Var(&extra, "currency", "additional currency code (repeatable)")
	flag.Parse()

	// Optional .env for local overrides
	_ = godotenv.Load()

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the report, so default logging moves to stderr
	logOutput := conf.LogOutput
	if logOutput == "" || logOutput == "stdout" {
		logOutput = "stderr"
	}
	if err := logger.Configure(conf.LogLevel, conf.LogFormat, logOutput, conf.LogMaxAge); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.NewLogger("history")

	if *days < 1 || *days > conf.Exchange.MaxHistoryDays {
		fmt.Fprintf(os.Stderr, "days must be between 1 and %d\n", conf.Exchange.MaxHistoryDays)
		os.Exit(1)
	}

	// DATABASE_URL overrides the configured postgres connection string
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		conf.Storage.DBConnectionString = dsn
	}

	// Setup rate store (shared cache with the server)
	var store interfaces.IRateStore

	switch conf.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresDB(conf.MConfig, appLogger)
	default:
		store, err = storage.NewAsyncSQLiteDB(conf.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer store.Close()

	var netMgr interfaces.INetworkManager = network.NewAsyncNetworkManager(conf.MConfig, appLogger)
	var source interfaces.IRateSource = ratesource.NewCachedSource(
		privatbank.NewPrivatBankSource(conf.MConfig, netMgr),
		store,
	)

	currencies := append([]string{}, conf.Exchange.Currencies...)
	currencies = append(currencies, extra...)

	report, err := history.BuildReport(context.Background(), source, *days, currencies, time.Now())
	if err != nil {
		appLogger.Error("Report failed: %v", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		appLogger.Error("Failed to render report: %v", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
