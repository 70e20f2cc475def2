package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"rate-relay/src/models"
)

type recordingSource struct {
	dates  []string
	failOn string
}

func (s *recordingSource) Name() string { return "recording" }

func (s *recordingSource) Fetch(ctx context.Context, dateKey string, currencies []string) (*models.MRateRecord, error) {
	if dateKey == s.failOn {
		return nil, errors.New("provider is down")
	}
	s.dates = append(s.dates, dateKey)
	return &models.MRateRecord{Date: dateKey, Rates: map[string]models.MCurrencyRate{}}, nil
}

// -----------------------------------------------------------------------------

func TestBuildReportOrder(t *testing.T) {
	source := &recordingSource{}
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

	report, err := BuildReport(context.Background(), source, 3, []string{"USD", "EUR"}, now)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	want := []string{"10.01.2024", "09.01.2024", "08.01.2024"}
	if len(report) != len(want) {
		t.Fatalf("got %d records, want %d", len(report), len(want))
	}
	for i, w := range want {
		if report[i].Date != w {
			t.Errorf("record %d date = %q, want %q", i, report[i].Date, w)
		}
	}
}

// -----------------------------------------------------------------------------

func TestBuildReportFailureAborts(t *testing.T) {
	source := &recordingSource{failOn: "09.01.2024"}
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

	if _, err := BuildReport(context.Background(), source, 3, []string{"USD"}, now); err == nil {
		t.Fatal("expected the report to abort on fetch failure")
	}
}

// -----------------------------------------------------------------------------

func TestBuildReportRejectsBadDays(t *testing.T) {
	if _, err := BuildReport(context.Background(), &recordingSource{}, 0, []string{"USD"}, time.Now()); err == nil {
		t.Fatal("expected an error for days = 0")
	}
}
