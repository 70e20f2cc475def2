package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"rate-relay/src/logger"
	"rate-relay/src/models"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	// Fixed schema so the server and the history CLI share one cache.
	return &PostgresDB{
		Config: cfg,
		Schema: "rate_relay",
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s".exchange_rates (
			date TEXT,
			currency TEXT,
			sale NUMERIC,
			purchase NUMERIC,
			PRIMARY KEY (date, currency)
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create exchange_rates: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveRateRecord(record *models.MRateRecord) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO "%s".exchange_rates (date, currency, sale, purchase)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date, currency) DO UPDATE
		SET sale = EXCLUDED.sale, purchase = EXCLUDED.purchase
	`, d.Schema))
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

func (d *PostgresDB) GetRateRecord(dateKey string, currencies []string) (*models.MRateRecord, bool, error) {
	if len(currencies) == 0 {
		return nil, false, nil
	}

	placeholders := make([]string, len(currencies))
	args := make([]interface{}, 0, len(currencies)+1)
	args = append(args, dateKey)
	for i, c := range currencies {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, c)
	}

	query := fmt.Sprintf(`
		SELECT currency, sale, purchase FROM "%s".exchange_rates
		WHERE date = $1 AND currency IN (%s)
	`, d.Schema, strings.Join(placeholders, ","))

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

	return record, len(record.Rates) == len(currencies), nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
