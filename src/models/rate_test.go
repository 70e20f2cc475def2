package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateKey(t *testing.T) {
	d := time.Date(2024, 1, 5, 23, 30, 0, 0, time.Local)
	if got := DateKey(d); got != "05.01.2024" {
		t.Fatalf("DateKey = %q, want \"05.01.2024\"", got)
	}
}

// -----------------------------------------------------------------------------

func TestRateRecordMarshalJSON(t *testing.T) {
	record := MRateRecord{
		Date: "01.01.2024",
		Rates: map[string]MCurrencyRate{
			"USD": {Sale: decimal.NewFromFloat(38.0), Purchase: decimal.NewFromFloat(37.5)},
		},
	}

	out, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// The payload is a single object keyed by date.
	var decoded map[string]map[string]map[string]string
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("payload %s is not the expected shape: %v", out, err)
	}

	day, ok := decoded["01.01.2024"]
	if !ok {
		t.Fatalf("payload %s missing date key", out)
	}
	usd, ok := day["USD"]
	if !ok {
		t.Fatalf("payload %s missing USD", out)
	}
	if usd["sale"] != "38" || usd["purchase"] != "37.5" {
		t.Errorf("USD rates = %v, want sale 38 purchase 37.5", usd)
	}
}
