package history

import (
	"context"
	"fmt"
	"time"

	"rate-relay/src/interfaces"
	"rate-relay/src/models"
)

// -----------------------------------------------------------------------------
// Historical batch report: one record per day, today first, fetched
// sequentially through the shared rate source. No registry or concurrency
// concerns here.
// -----------------------------------------------------------------------------

// BuildReport fetches rates for the last days calendar days ending at now.
// The first fetch failure aborts the report.
func BuildReport(ctx context.Context, source interfaces.IRateSource, days int, currencies []string, now time.Time) ([]models.MRateRecord, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	result := make([]models.MRateRecord, 0, days)

	for day := 0; day < days; day++ {
		dateKey := models.DateKey(now.AddDate(0, 0, -day))

		record, err := source.Fetch(ctx, dateKey, currencies)
		if err != nil {
			return nil, fmt.Errorf("fetch for %s failed: %w", dateKey, err)
		}

		result = append(result, *record)
	}

	return result, nil
}
