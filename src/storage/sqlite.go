package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"rate-relay/src/logger"
	"rate-relay/src/models"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) createTables() error {
	// Cached rates must survive restarts, so the table is created in place
	// rather than recreated. Rates are stored as TEXT to keep exact decimals.
	query := `
		CREATE TABLE IF NOT EXISTS exchange_rates (
			date TEXT,
			currency TEXT,
			sale TEXT,
			purchase TEXT,
			PRIMARY KEY (date, currency)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create exchange_rates: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) SaveRateRecord(record *models.MRateRecord) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO exchange_rates (date, currency, sale, purchase)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for currency, rate := range record.Rates {
		if _, err := stmt.Exec(record.Date, currency, rate.Sale.String(), rate.Purchase.String()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save rate %s/%s: %w", record.Date, currency, err)
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) GetRateRecord(dateKey string, currencies []string) (*models.MRateRecord, bool, error) {
	if len(currencies) == 0 {
		return nil, false, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(currencies)), ",")
	query := fmt.Sprintf(`
		SELECT currency, sale, purchase FROM exchange_rates
		WHERE date = ? AND currency IN (%s)
	`, placeholders)

	args := make([]interface{}, 0, len(currencies)+1)
	args = append(args, dateKey)
	for _, c := range currencies {
		args = append(args, c)
	}

	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	record := &models.MRateRecord{
		Date:  dateKey,
		Rates: make(map[string]models.MCurrencyRate),
	}

	for rows.Next() {
		var currency, sale, purchase string
		if err := rows.Scan(&currency, &sale, &purchase); err != nil {
			return nil, false, err
		}
		saleDec, err := decimal.NewFromString(sale)
		if err != nil {
			return nil, false, err
		}
		purchaseDec, err := decimal.NewFromString(purchase)
		if err != nil {
			return nil, false, err
		}
		record.Rates[currency] = models.MCurrencyRate{Sale: saleDec, Purchase: purchaseDec}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	// A partial row set is treated as a miss so the caller refetches.
	return record, len(record.Rates) == len(currencies), nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
