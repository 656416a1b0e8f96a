package progress

import "strings"

// Canonical enrollment statuses. Stored rows are messier (see Enrollment);
// these are what readers reduce them to.
const (
	StatusNotStarted = "not_started"
	StatusActive     = "active"
	StatusCompleted  = "completed"
)

// NormalizeStatus maps a stored status string and a completion percentage
// to a canonical status. An absent status is derived from the percentage.
func NormalizeStatus(raw string, pct float64) string {
	if raw == "" {
		if pct > 0 {
			return StatusActive
		}
		return StatusNotStarted
	}

	switch strings.ToLower(raw) {
	case "completed":
		return StatusCompleted
	case "active", "in_progress":
		return StatusActive
	default:
		return StatusNotStarted
	}
}

// IsInProgress reports whether a RAW stored status counts as active for
// dashboard purposes.
//
// This set is case-sensitive while NormalizeStatus lower-cases its input.
// The mismatch is inherited from the stored data ("aktív" rows were written
// by three client generations) and the two checks are deliberately kept
// separate; do not fold one into the other without auditing what the rows
// actually contain.
func IsInProgress(raw string) bool {
	switch raw {
	case "in_progress", "ACTIVE", "active":
		return true
	default:
		return false
	}
}

// IsCompletedStatus matches the literal completed status only.
func IsCompletedStatus(raw string) bool {
	return raw == StatusCompleted
}

// StatusForProgress derives the canonical status from a recomputed
// completion percentage. The percentage wins over whatever status string a
// row carried, which lets inconsistent imports heal on the next write.
func StatusForProgress(pct int) string {
	switch {
	case pct >= 100:
		return StatusCompleted
	case pct > 0:
		return StatusActive
	default:
		return StatusNotStarted
	}
}
