package reports

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/duka_backend/utils"
)

func TestGetRangeReport_ReversedWindowRejected(t *testing.T) {
	from := mustDate(t, "2026-08-10")
	to := mustDate(t, "2026-08-01")

	// The window check runs before any query, so no database is needed.
	_, err := GetRangeReport(context.Background(), "shop-1", from, to, nil)
	if !errors.Is(err, utils.ErrorInvalidRange) {
		t.Fatalf("expected ErrorInvalidRange for reversed window, got %v", err)
	}
}

func TestGetRangeReport_SingleDayWindowAllowed(t *testing.T) {
	d := mustDate(t, "2026-08-10")
	if d.Time().After(d.Time()) {
		t.Fatal("a single-day window must not be treated as reversed")
	}
}
