package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is one user's watch state for one lesson. The player
// reports at roughly 10-second intervals, so writes are an idempotent
// upsert keyed by (user_id, lesson_id).
type LessonProgress struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"index;not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID        uint    `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	CourseID        uint    `json:"course_id" gorm:"index;not null"`
	WatchPercentage float64 `json:"watch_percentage" gorm:"default:0"` // 0-100
	TimeSpent       float64 `json:"time_spent" gorm:"default:0"`       // seconds
	ResumePosition  float64 `json:"resume_position" gorm:"default:0"`  // seconds into the video
	Completed       bool    `json:"completed" gorm:"default:false"`
	DeviceID        string  `json:"device_id" gorm:"default:''"`
	// SyncVersion is bumped on device-switch syncs. Recorded for
	// observability only; concurrent writers are still last-write-wins.
	SyncVersion   int64      `json:"sync_version" gorm:"default:0"`
	LastWatchedAt *time.Time `json:"last_watched_at"`
	IsDeleted     bool       `gorm:"default:false"`
}
