package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		pct  float64
		want string
	}{
		{"absent with progress", "", 12, StatusActive},
		{"absent without progress", "", 0, StatusNotStarted},
		{"completed lowercase", "completed", 0, StatusCompleted},
		{"completed uppercase", "COMPLETED", 0, StatusCompleted},
		{"active", "active", 50, StatusActive},
		{"active uppercase", "ACTIVE", 50, StatusActive},
		{"in_progress", "in_progress", 50, StatusActive},
		{"in_progress mixed case", "In_Progress", 50, StatusActive},
		{"not_started literal", "not_started", 0, StatusNotStarted},
		{"unknown garbage", "enrolled?", 80, StatusNotStarted},
		{"unicode garbage", "aktív", 80, StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.raw, tt.pct))
		})
	}
}

// Every input must land on exactly one canonical status.
func TestNormalizeStatusTotality(t *testing.T) {
	inputs := []string{"", "completed", "ACTIVE", "in_progress", "paused", "\x00", "💡", "Completed ", "100"}
	percentages := []float64{-5, 0, 0.1, 50, 90, 100, 250}

	canonical := map[string]bool{
		StatusNotStarted: true,
		StatusActive:     true,
		StatusCompleted:  true,
	}

	for _, raw := range inputs {
		for _, pct := range percentages {
			got := NormalizeStatus(raw, pct)
			assert.True(t, canonical[got], "NormalizeStatus(%q, %v) = %q", raw, pct, got)
		}
	}
}

// The dashboard counting set is case-sensitive on purpose: it matches the
// raw literals the three client generations actually wrote. It is NOT the
// lower-casing normalizer and the two must not be unified blindly.
func TestIsInProgressRawLiteralSet(t *testing.T) {
	assert.True(t, IsInProgress("in_progress"))
	assert.True(t, IsInProgress("ACTIVE"))
	assert.True(t, IsInProgress("active"))

	// asymmetry with NormalizeStatus: these normalize to active but do
	// not count as in-progress for the dashboard
	assert.False(t, IsInProgress("Active"))
	assert.False(t, IsInProgress("IN_PROGRESS"))
	assert.False(t, IsInProgress("In_Progress"))

	assert.False(t, IsInProgress(""))
	assert.False(t, IsInProgress("completed"))
}

func TestIsCompletedStatus(t *testing.T) {
	assert.True(t, IsCompletedStatus("completed"))
	assert.False(t, IsCompletedStatus("COMPLETED"))
	assert.False(t, IsCompletedStatus("Completed"))
	assert.False(t, IsCompletedStatus(""))
}

func TestStatusForProgress(t *testing.T) {
	assert.Equal(t, StatusNotStarted, StatusForProgress(0))
	assert.Equal(t, StatusActive, StatusForProgress(1))
	assert.Equal(t, StatusActive, StatusForProgress(99))
	assert.Equal(t, StatusCompleted, StatusForProgress(100))
	assert.Equal(t, StatusCompleted, StatusForProgress(120))
}
