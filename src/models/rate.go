package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateKeyLayout is the DD.MM.YYYY format the upstream provider expects.
const DateKeyLayout = "02.01.2006"

// DateKey formats t as an upstream date key (local wall-clock date).
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// MCurrencyRate holds the national bank sale/purchase rates for one currency.
type MCurrencyRate struct {
	Sale     decimal.Decimal `json:"sale"`
	Purchase decimal.Decimal `json:"purchase"`
}

// MRateRecord is the parsed result of one exchange rate query: a date key and
// the rates for each requested currency that was present in the response.
// Constructed fresh per query, never mutated afterwards.
type MRateRecord struct {
	Date  string
	Rates map[string]MCurrencyRate
}

// MarshalJSON renders the record as {"<date>": {"USD": {...}, ...}} so the
// broadcast payload stays a single parseable JSON object keyed by date.
func (r MRateRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]MCurrencyRate{r.Date: r.Rates})
}
