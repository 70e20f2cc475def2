package interfaces

import (
	"context"

	"rate-relay/src/models"
)

// -----------------------------------------------------------------------------
// IRateSource interface for fetching exchange rates from external providers.
// -----------------------------------------------------------------------------

type IRateSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Fetch retrieves the rates for one date key (DD.MM.YYYY), keeping only
	// the requested currency codes. A requested currency that is absent from
	// the provider response is omitted from the result, not an error.
	// Performs exactly one round trip; retries are a caller concern.
	Fetch(ctx context.Context, dateKey string, currencies []string) (*models.MRateRecord, error)
}
