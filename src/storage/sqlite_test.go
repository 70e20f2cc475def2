package storage

import (
	"path/filepath"
	"testing"

	"rate-relay/src/logger"
	"rate-relay/src/models"

	"github.com/shopspring/decimal"
)

func testDB(t *testing.T) *AsyncSQLiteDB {
	t.Helper()
	cfg := &models.MConfig{
		Storage: models.MStorageConfig{
			DBType: "sqlite",
			DBPath: filepath.Join(t.TempDir(), "rates.db"),
		},
	}
	db, err := NewAsyncSQLiteDB(cfg, logger.NewLogger("sqlite-test"))
	if err != nil {
		t.Fatalf("NewAsyncSQLiteDB failed: %v", err)
	}
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// -----------------------------------------------------------------------------

func TestSQLiteSaveAndGet(t *testing.T) {
	db := testDB(t)

	record := &models.MRateRecord{
		Date: "01.01.2024",
		Rates: map[string]models.MCurrencyRate{
			"USD": {Sale: decimal.RequireFromString("38.5686"), Purchase: decimal.RequireFromString("37.5")},
			"EUR": {Sale: decimal.RequireFromString("42"), Purchase: decimal.RequireFromString("41")},
		},
	}
	if err := db.SaveRateRecord(record); err != nil {
		t.Fatalf("SaveRateRecord failed: %v", err)
	}

	got, found, err := db.GetRateRecord("01.01.2024", []string{"USD", "EUR"})
	if err != nil {
		t.Fatalf("GetRateRecord failed: %v", err)
	}
	if !found {
		t.Fatal("record not found")
	}
	if got.Rates["USD"].Sale.String() != "38.5686" {
		t.Errorf("USD sale = %s", got.Rates["USD"].Sale)
	}
	if got.Rates["EUR"].Purchase.String() != "41" {
		t.Errorf("EUR purchase = %s", got.Rates["EUR"].Purchase)
	}
}

// -----------------------------------------------------------------------------

func TestSQLitePartialRowsAreAMiss(t *testing.T) {
	db := testDB(t)

	record := &models.MRateRecord{
		Date: "01.01.2024",
		Rates: map[string]models.MCurrencyRate{
			"USD": {Sale: decimal.RequireFromString("38"), Purchase: decimal.RequireFromString("37.5")},
		},
	}
	if err := db.SaveRateRecord(record); err != nil {
		t.Fatalf("SaveRateRecord failed: %v", err)
	}

	// EUR is missing, so the lookup must report a miss.
	_, found, err := db.GetRateRecord("01.01.2024", []string{"USD", "EUR"})
	if err != nil {
		t.Fatalf("GetRateRecord failed: %v", err)
	}
	if found {
		t.Fatal("partial row set reported as a hit")
	}
}

// -----------------------------------------------------------------------------

func TestSQLiteUpsert(t *testing.T) {
	db := testDB(t)

	first := &models.MRateRecord{
		Date:  "01.01.2024",
		Rates: map[string]models.MCurrencyRate{"USD": {Sale: decimal.RequireFromString("38"), Purchase: decimal.RequireFromString("37.5")}},
	}
	second := &models.MRateRecord{
		Date:  "01.01.2024",
		Rates: map[string]models.MCurrencyRate{"USD": {Sale: decimal.RequireFromString("39"), Purchase: decimal.RequireFromString("38.5")}},
	}
	if err := db.SaveRateRecord(first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := db.SaveRateRecord(second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, found, err := db.GetRateRecord("01.01.2024", []string{"USD"})
	if err != nil || !found {
		t.Fatalf("GetRateRecord failed: %v found=%v", err, found)
	}
	if got.Rates["USD"].Sale.String() != "39" {
		t.Errorf("USD sale = %s after upsert, want 39", got.Rates["USD"].Sale)
	}
}
