package progress

import "time"

// EnrollmentRecord is the snapshot the dashboard counters run on. Both the
// server path (rows fetched from the store) and the client-fallback path
// (records posted by the frontend) reduce to this shape, so the two paths
// cannot drift: they share every line below.
type EnrollmentRecord struct {
	Status     string
	EnrolledAt Instant
}

// Stats are the current-period dashboard counters.
//
// "Current" counts every enrollment regardless of age, not the last 30
// days. The name is kept for wire compatibility with the dashboard UI.
type Stats struct {
	TotalEnrolled    int `json:"totalEnrolled"`
	ActiveInProgress int `json:"activeInProgress"`
	Completed        int `json:"completed"`
}

// Trends are the percentage deltas against the prior 30-to-60-day window.
type Trends struct {
	TotalEnrolledTrend    float64 `json:"totalEnrolledTrend"`
	ActiveInProgressTrend float64 `json:"activeInProgressTrend"`
	CompletedTrend        float64 `json:"completedTrend"`
}

// DashboardStats is the stats entry-point response payload.
type DashboardStats struct {
	Stats  Stats  `json:"stats"`
	Trends Trends `json:"trends"`
}

// CalculateTrend is the percentage change between a current and a previous
// count. A previous of zero maps to 100 when anything exists now and 0
// otherwise. The result is not clamped: declines go negative and
// more-than-doubling exceeds 100.
func CalculateTrend(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// ComputeDashboardStats runs the six dashboard counters over an enrollment
// snapshot. Pure: the caller supplies the clock.
//
// Active counting uses the raw case-sensitive status set (IsInProgress),
// completed matches the literal string only.
func ComputeDashboardStats(records []EnrollmentRecord, now time.Time) DashboardStats {
	priorStart := now.AddDate(0, 0, -60)
	priorEnd := now.AddDate(0, 0, -30)

	var stats Stats
	var prev Stats

	for _, rec := range records {
		stats.TotalEnrolled++
		if IsInProgress(rec.Status) {
			stats.ActiveInProgress++
		}
		if IsCompletedStatus(rec.Status) {
			stats.Completed++
		}

		enrolledAt := rec.EnrolledAt.Resolve()
		if !enrolledAt.Before(priorStart) && enrolledAt.Before(priorEnd) {
			prev.TotalEnrolled++
			if IsInProgress(rec.Status) {
				prev.ActiveInProgress++
			}
			if IsCompletedStatus(rec.Status) {
				prev.Completed++
			}
		}
	}

	return DashboardStats{
		Stats: stats,
		Trends: Trends{
			TotalEnrolledTrend:    CalculateTrend(stats.TotalEnrolled, prev.TotalEnrolled),
			ActiveInProgressTrend: CalculateTrend(stats.ActiveInProgress, prev.ActiveInProgress),
			CompletedTrend:        CalculateTrend(stats.Completed, prev.Completed),
		},
	}
}
