package course

import "gorm.io/gorm"

// Lesson is a single video lesson. ModuleID is NULL for lessons imported
// from course generations that stored lessons directly under the course.
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	ModuleID        *uint  `json:"module_id" gorm:"index"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}
