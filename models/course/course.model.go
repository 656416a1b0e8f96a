package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Category     string `json:"category"`
	Language     string `json:"language" gorm:"default:'hu'"`
	Duration     int64  `json:"duration" gorm:"default:0"`     // duration in minutes
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	PriceHUF     int64  `json:"price_huf" gorm:"default:0"`
	ThumbnailURL string `json:"thumbnail_url"`
	// LessonCount is a stored counter carried over from the old document
	// store. Courses created after the migration keep it NULL and derive
	// the count from their modules or lessons instead.
	LessonCount *int `json:"lesson_count"`
	IsPublished bool `json:"is_published" gorm:"default:false"`
	IsDeleted   bool `gorm:"default:false"`
}
