package ratesource

import (
	"context"
	"time"

	"rate-relay/src/interfaces"
	"rate-relay/src/logger"
	"rate-relay/src/models"
)

// -----------------------------------------------------------------------------
// CachedSource is a read-through cache in front of another rate source. Rates
// for past dates are immutable, so those are served from the store when every
// requested currency is present and written through after a network fetch.
// Today's rates always go to the network.
// -----------------------------------------------------------------------------

type CachedSource struct {
	Source interfaces.IRateSource
	Store  interfaces.IRateStore
	Logger *logger.Logger
	Now    func() time.Time
}

// -----------------------------------------------------------------------------

func NewCachedSource(source interfaces.IRateSource, store interfaces.IRateStore) *CachedSource {
	return &CachedSource{
		Source: source,
		Store:  store,
		Logger: logger.NewLogger("CachedSource"),
		Now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

func (s *CachedSource) Name() string {
	return s.Source.Name()
}

// -----------------------------------------------------------------------------

func (s *CachedSource) Fetch(ctx context.Context, dateKey string, currencies []string) (*models.MRateRecord, error) {
	today := models.DateKey(s.Now())

	if dateKey != today {
		record, found, err := s.Store.GetRateRecord(dateKey, currencies)
		if err != nil {
			// A broken cache must not break the fetch.
			s.Logger.Warning("Rate store lookup failed for %s: %v", dateKey, err)
		} else if found {
			return record, nil
		}
	}

	record, err := s.Source.Fetch(ctx, dateKey, currencies)
	if err != nil {
		return nil, err
	}

	if dateKey != today && len(record.Rates) > 0 {
		if err := s.Store.SaveRateRecord(record); err != nil {
			s.Logger.Warning("Failed to cache rates for %s: %v", record.Date, err)
		}
	}

	return record, nil
}
