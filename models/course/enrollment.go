package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress.
//
// Status is kept as a free-form string on purpose: rows imported from the
// old document store carry any of not_started, in_progress, active, ACTIVE
// or completed, and the readers normalize rather than the writers.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_enrollment_user_course"`
	Status   string `json:"status" gorm:"default:'not_started'"`
	// EnrolledAt is NULL on imported rows; those keep the original
	// ISO-8601 string in EnrolledAtRaw instead. Some imports carry
	// neither.
	EnrolledAt           *time.Time `json:"enrolled_at"`
	EnrolledAtRaw        string     `json:"enrolled_at_raw" gorm:"default:''"`
	LastAccessedAt       *time.Time `json:"last_accessed_at"`
	CurrentLessonID      *uint      `json:"current_lesson_id"`
	CompletionPercentage int        `json:"completion_percentage" gorm:"default:0"` // 0-100
	CompletedAt          *time.Time `json:"completed_at"`
	IsDeleted            bool       `gorm:"default:false"`
}
