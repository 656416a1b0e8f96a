package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTrend(t *testing.T) {
	assert.Equal(t, 0.0, CalculateTrend(0, 0))
	assert.Equal(t, 100.0, CalculateTrend(5, 0))
	assert.Equal(t, 100.0, CalculateTrend(10, 5))
	assert.Equal(t, -50.0, CalculateTrend(5, 10))

	// no clamping either way
	assert.Equal(t, 300.0, CalculateTrend(8, 2))
	assert.Equal(t, -100.0, CalculateTrend(0, 4))
}

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	records := []EnrollmentRecord{
		{Status: "completed", EnrolledAt: InstantFromTime(now.AddDate(0, 0, -5))},
		{Status: "ACTIVE", EnrolledAt: InstantFromTime(now.AddDate(0, 0, -10))},
		{Status: "in_progress", EnrolledAt: InstantFromTime(now.AddDate(0, 0, -45))},
	}

	got := ComputeDashboardStats(records, now)

	// current counters are all-time
	assert.Equal(t, Stats{TotalEnrolled: 3, ActiveInProgress: 2, Completed: 1}, got.Stats)

	// only the 45-day-old enrollment falls into the prior window, so the
	// trends compare against prev = {1, 1, 0}
	assert.Equal(t, 200.0, got.Trends.TotalEnrolledTrend)
	assert.Equal(t, 100.0, got.Trends.ActiveInProgressTrend)
	assert.Equal(t, 100.0, got.Trends.CompletedTrend)
}

func TestComputeDashboardStatsPriorWindowBounds(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	mk := func(daysAgo int) EnrollmentRecord {
		return EnrollmentRecord{Status: "active", EnrolledAt: InstantFromTime(now.AddDate(0, 0, -daysAgo))}
	}

	// window is [now-60d, now-30d): 60 days ago is in, 30 days ago is out
	prevCount := func(recs ...EnrollmentRecord) int {
		ds := ComputeDashboardStats(recs, now)
		// reconstruct prev from the trend: trend 100 with current 1 means prev 0
		if ds.Trends.TotalEnrolledTrend == 100 {
			return 0
		}
		return 1
	}

	assert.Equal(t, 1, prevCount(mk(60)))
	assert.Equal(t, 1, prevCount(mk(31)))
	assert.Equal(t, 0, prevCount(mk(30)))
	assert.Equal(t, 0, prevCount(mk(61)))
	assert.Equal(t, 0, prevCount(mk(1)))
}

// Enrollments without a resolvable timestamp resolve to the epoch and stay
// out of the prior window while still counting all-time.
func TestComputeDashboardStatsMissingTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	records := []EnrollmentRecord{
		{Status: "active", EnrolledAt: MissingInstant()},
		{Status: "completed", EnrolledAt: InstantFromString("definitely not a date")},
	}

	got := ComputeDashboardStats(records, now)
	assert.Equal(t, Stats{TotalEnrolled: 2, ActiveInProgress: 1, Completed: 1}, got.Stats)
	assert.Equal(t, 100.0, got.Trends.TotalEnrolledTrend) // prev window empty
}

func TestComputeDashboardStatsCaseSensitiveCounting(t *testing.T) {
	now := time.Now()

	records := []EnrollmentRecord{
		{Status: "Active"},      // normalizes to active, but does NOT count as in-progress
		{Status: "IN_PROGRESS"}, // same
		{Status: "COMPLETED"},   // completed matches the lowercase literal only
	}

	got := ComputeDashboardStats(records, now)
	assert.Equal(t, Stats{TotalEnrolled: 3, ActiveInProgress: 0, Completed: 0}, got.Stats)
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	got := ComputeDashboardStats(nil, time.Now())
	assert.Equal(t, DashboardStats{}, got)
}
