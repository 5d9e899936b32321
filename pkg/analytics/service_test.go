package analytics

import (
	"database/sql"
	"testing"

	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

func TestStatsFromAggregate_EmptyScope(t *testing.T) {
	agg := &repository.RatingAggregate{Distribution: map[int]int{}}
	stats := statsFromAggregate(agg)

	if stats.Total != 0 {
		t.Errorf("Total = %d, want 0", stats.Total)
	}
	if stats.AverageRating != nil {
		t.Errorf("AverageRating = %v, want nil for empty scope", *stats.AverageRating)
	}
	if len(stats.Distribution) != 10 {
		t.Fatalf("distribution has %d buckets, want 10", len(stats.Distribution))
	}
	for key, count := range stats.Distribution {
		if count != 0 {
			t.Errorf("distribution[%q] = %d, want 0", key, count)
		}
	}
}

func TestStatsFromAggregate_RoundsToTwoDecimals(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want float64
	}{
		{"exact", 7.0, 7.0},
		{"repeating third", 7.0 / 3.0 * 3.0, 7.0},
		{"rounds down", 6.674, 6.67},
		{"rounds up", 6.675000001, 6.68},
		{"two thirds", 20.0 / 3.0, 6.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &repository.RatingAggregate{
				Total:        3,
				Average:      sql.NullFloat64{Float64: tt.avg, Valid: true},
				Distribution: map[int]int{7: 3},
			}
			stats := statsFromAggregate(agg)
			if stats.AverageRating == nil {
				t.Fatal("AverageRating = nil, want value")
			}
			if *stats.AverageRating != tt.want {
				t.Errorf("AverageRating = %v, want %v", *stats.AverageRating, tt.want)
			}
		})
	}
}

func TestStatsFromAggregate_DistributionSumsToTotal(t *testing.T) {
	agg := &repository.RatingAggregate{
		Total:        6,
		Average:      sql.NullFloat64{Float64: 5.5, Valid: true},
		Distribution: map[int]int{1: 1, 5: 2, 7: 1, 10: 2},
	}
	stats := statsFromAggregate(agg)

	sum := 0
	for _, count := range stats.Distribution {
		sum += count
	}
	if sum != stats.Total {
		t.Errorf("distribution sum = %d, want total %d", sum, stats.Total)
	}
	if stats.Distribution["5"] != 2 {
		t.Errorf(`distribution["5"] = %d, want 2`, stats.Distribution["5"])
	}
	if stats.Distribution["2"] != 0 {
		t.Errorf(`distribution["2"] = %d, want 0 (bucket must be present)`, stats.Distribution["2"])
	}
}
