package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

func fb(rating int, createdAt time.Time) domain.Feedback {
	return domain.Feedback{
		ID:        uuid.New(),
		QRCodeID:  uuid.New(),
		CompanyID: uuid.New(),
		Rating:    rating,
		CreatedAt: createdAt,
	}
}

func sumCounts(entries []TimelineEntry) int {
	total := 0
	for _, e := range entries {
		for _, c := range e.Counts {
			total += c
		}
	}
	return total
}

func TestBuildTimeline_BucketGeometry(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	tl := BuildTimeline(nil, now)

	if len(tl.Daily) != DailyBuckets {
		t.Fatalf("daily buckets = %d, want %d", len(tl.Daily), DailyBuckets)
	}
	if len(tl.Weekly) != WeeklyBuckets {
		t.Fatalf("weekly buckets = %d, want %d", len(tl.Weekly), WeeklyBuckets)
	}

	// 29 days before Mar 15 is Feb 14; today is the last bucket.
	if tl.Daily[0].Label != "Feb 14" {
		t.Errorf("first daily label = %q, want %q", tl.Daily[0].Label, "Feb 14")
	}
	if tl.Daily[29].Label != "Mar 15" {
		t.Errorf("last daily label = %q, want %q", tl.Daily[29].Label, "Mar 15")
	}

	// Oldest window first: starts 27, 20, 13, 6 days before Mar 15.
	wantWeekly := []string{"Wk Feb 16", "Wk Feb 23", "Wk Mar 02", "Wk Mar 09"}
	for i, want := range wantWeekly {
		if tl.Weekly[i].Label != want {
			t.Errorf("weekly[%d].Label = %q, want %q", i, tl.Weekly[i].Label, want)
		}
	}
}

func TestBuildTimeline_DailyPlacement(t *testing.T) {
	now := time.Date(2025, time.March, 15, 23, 0, 0, 0, time.UTC)

	rows := []domain.Feedback{
		fb(7, now.Add(-2*time.Hour)),            // today
		fb(7, now.AddDate(0, 0, -1)),            // yesterday
		fb(3, now.AddDate(0, 0, -29)),           // oldest daily bucket
		fb(10, time.Date(2025, time.March, 15, 0, 0, 1, 0, time.UTC)), // midnight edge, today
	}
	tl := BuildTimeline(rows, now)

	if got := tl.Daily[29].Counts[6]; got != 1 {
		t.Errorf("today r7 = %d, want 1", got)
	}
	if got := tl.Daily[29].Counts[9]; got != 1 {
		t.Errorf("today r10 = %d, want 1", got)
	}
	if got := tl.Daily[28].Counts[6]; got != 1 {
		t.Errorf("yesterday r7 = %d, want 1", got)
	}
	if got := tl.Daily[0].Counts[2]; got != 1 {
		t.Errorf("oldest bucket r3 = %d, want 1", got)
	}

	if got := sumCounts(tl.Daily); got != len(rows) {
		t.Errorf("daily sum = %d, want %d", got, len(rows))
	}
	if got := sumCounts(tl.Weekly); got != len(rows) {
		t.Errorf("weekly sum = %d, want %d", got, len(rows))
	}
}

func TestBuildTimeline_WeeklyInversion(t *testing.T) {
	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

	// One row per internal week index 0..3.
	rows := []domain.Feedback{
		fb(5, now.AddDate(0, 0, -1)),  // w=0, most recent window
		fb(5, now.AddDate(0, 0, -8)),  // w=1
		fb(5, now.AddDate(0, 0, -15)), // w=2
		fb(5, now.AddDate(0, 0, -22)), // w=3
	}
	tl := BuildTimeline(rows, now)

	// Output is chronological, so w=3 lands in slot 0 and w=0 in slot 3.
	for i := 0; i < WeeklyBuckets; i++ {
		if got := tl.Weekly[i].Counts[4]; got != 1 {
			t.Errorf("weekly[%d] r5 = %d, want 1", i, got)
		}
	}
}

func TestBuildTimeline_OldestDaysClampIntoLastWindow(t *testing.T) {
	now := time.Date(2025, time.June, 30, 23, 0, 0, 0, time.UTC)

	// Days 28 and 29 ago exceed the four 7-day windows; min(daysAgo/7, 3)
	// folds them into the oldest one.
	rows := []domain.Feedback{
		fb(2, now.AddDate(0, 0, -28)),
		fb(2, now.AddDate(0, 0, -29)),
	}
	tl := BuildTimeline(rows, now)

	if got := tl.Weekly[0].Counts[1]; got != 2 {
		t.Errorf("oldest window r2 = %d, want 2", got)
	}
	if got := sumCounts(tl.Daily); got != 2 {
		t.Errorf("daily sum = %d, want 2", got)
	}
}

func TestBuildTimeline_DropsRowsOutsideWindow(t *testing.T) {
	now := time.Date(2025, time.June, 30, 1, 0, 0, 0, time.UTC)

	rows := []domain.Feedback{
		fb(8, now.Add(2*time.Hour)),   // still today, kept
		fb(8, now.AddDate(0, 0, 1)),   // tomorrow (clock skew), dropped
		fb(8, now.AddDate(0, 0, -30)), // calendar date before the grid, dropped
		fb(8, now.AddDate(0, 0, -3)),  // kept
	}
	tl := BuildTimeline(rows, now)

	if got := sumCounts(tl.Daily); got != 2 {
		t.Errorf("daily sum = %d, want 2 (skewed rows must be dropped)", got)
	}
	if got := sumCounts(tl.Weekly); got != 2 {
		t.Errorf("weekly sum = %d, want 2 (skewed rows must be dropped)", got)
	}
}

func TestBuildTimeline_NonUTCTimestamps(t *testing.T) {
	now := time.Date(2025, time.June, 30, 2, 0, 0, 0, time.UTC)

	// 01:30 in UTC+4 on June 30 is 21:30 UTC on June 29; placement follows
	// the UTC calendar date.
	loc := time.FixedZone("UTC+4", 4*3600)
	rows := []domain.Feedback{
		fb(6, time.Date(2025, time.June, 30, 1, 30, 0, 0, loc)),
	}
	tl := BuildTimeline(rows, now)

	if got := tl.Daily[28].Counts[5]; got != 1 {
		t.Errorf("June 29 bucket r6 = %d, want 1", got)
	}
}
