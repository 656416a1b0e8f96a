package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLessonComplete(t *testing.T) {
	tests := []struct {
		name      string
		watchPct  float64
		completed bool
		want      bool
	}{
		{"below threshold", 89.9, false, false},
		{"at threshold", 90, false, true},
		{"above threshold", 100, false, true},
		{"zero", 0, false, false},
		{"flag wins at zero watch", 0, true, true},
		{"flag wins below threshold", 10, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLessonComplete(tt.watchPct, tt.completed))
		})
	}
}

// Completion must never flip back to false as the watch percentage grows.
func TestIsLessonCompleteMonotonic(t *testing.T) {
	prev := false
	for pct := 0.0; pct <= 100; pct += 0.5 {
		cur := IsLessonComplete(pct, false)
		assert.False(t, prev && !cur, "completion regressed at %v%%", pct)
		prev = cur
	}
}
