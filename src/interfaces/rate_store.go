package interfaces

import "rate-relay/src/models"

// -----------------------------------------------------------------------------
// IRateStore defines the contract for the rate-history cache backends.
// -----------------------------------------------------------------------------

type IRateStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveRateRecord upserts per-currency rows for one date.
	SaveRateRecord(record *models.MRateRecord) error

	// -----------------------------------------------------------------------------

	// GetRateRecord loads the stored rates for a date. The second return value
	// is true only when every requested currency is present for that date.
	GetRateRecord(dateKey string, currencies []string) (*models.MRateRecord, bool, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
