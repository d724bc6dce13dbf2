package app

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	now := time.Date(2026, 8, 31, 7, 30, 0, 0, loc)
	next := nextRun(now, 9, 0)
	if next.Day() != 31 || next.Hour() != 9 || next.Minute() != 0 {
		t.Fatalf("unexpected next run %v", next)
	}

	// past today's slot rolls over to tomorrow
	now = time.Date(2026, 8, 31, 9, 0, 0, 0, loc)
	next = nextRun(now, 9, 0)
	if next.Day() != 1 || next.Month() != time.September || next.Hour() != 9 {
		t.Fatalf("unexpected rollover %v", next)
	}
}
