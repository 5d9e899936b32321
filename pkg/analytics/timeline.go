package analytics

import (
	"time"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// Timeline window geometry. The daily series covers one bucket per calendar
// day for the trailing 30 days; the weekly series covers four 7-day windows
// over the same span.
const (
	DailyBuckets  = 30
	WeeklyBuckets = 4
	daysPerWeek   = 7

	dayLabelFormat  = "Jan 02"
	weekLabelPrefix = "Wk "
)

// TimelineEntry is one bucket: a label and a count per rating value 1..10.
type TimelineEntry struct {
	Label  string
	Counts [domain.MaxRating]int
}

// Timeline holds both fixed-size series, oldest bucket first.
type Timeline struct {
	Daily  []TimelineEntry
	Weekly []TimelineEntry
}

// BuildTimeline buckets feedback rows into the daily and weekly series ending
// at now (UTC). Buckets are pre-allocated whether or not data exists. Rows
// whose creation date matches none of the 30 daily labels — clock skew, or a
// timestamp within the trailing 30x24h whose calendar date falls outside the
// 30-day grid — are silently dropped from both series.
//
// Weekly placement: a row daysAgo days old lands in internal week index
// w = min(daysAgo/7, 3), where w=0 is the most recent window. Output is
// oldest-window-first, so the row is written to slot 3-w. Labels carry each
// window's start (oldest) date.
func BuildTimeline(rows []domain.Feedback, now time.Time) *Timeline {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	daily := make([]TimelineEntry, DailyBuckets)
	dayIndex := make(map[string]int, DailyBuckets)
	for i := range daily {
		label := today.AddDate(0, 0, i-(DailyBuckets-1)).Format(dayLabelFormat)
		daily[i].Label = label
		dayIndex[label] = i
	}

	weekly := make([]TimelineEntry, WeeklyBuckets)
	for i := range weekly {
		w := WeeklyBuckets - 1 - i
		start := today.AddDate(0, 0, -(daysPerWeek*w + daysPerWeek - 1))
		weekly[i].Label = weekLabelPrefix + start.Format(dayLabelFormat)
	}

	for _, fb := range rows {
		if !domain.ValidRating(fb.Rating) {
			continue
		}
		created := fb.CreatedAt.UTC()

		i, ok := dayIndex[created.Format(dayLabelFormat)]
		if !ok {
			continue
		}
		daily[i].Counts[fb.Rating-1]++

		daysAgo := (DailyBuckets - 1) - i
		w := daysAgo / daysPerWeek
		if w >= WeeklyBuckets {
			w = WeeklyBuckets - 1
		}
		weekly[WeeklyBuckets-1-w].Counts[fb.Rating-1]++
	}

	return &Timeline{Daily: daily, Weekly: weekly}
}
