package progress

import "math"

// CourseOutline is the lesson-bearing shape of a course as far as progress
// computation cares. Different schema generations stored the lesson set in
// different places, so every field is optional.
type CourseOutline struct {
	// Modules, when non-nil, holds the per-module lesson counts.
	Modules []ModuleOutline
	// Lessons, when non-nil, is the flat lesson-id list of module-less
	// courses.
	Lessons []uint
	// LessonCount is the stored counter field of the oldest generation.
	LessonCount *int
}

// ModuleOutline is one module's lesson set.
type ModuleOutline struct {
	LessonIDs []uint
}

// LessonCountSource is one strategy for extracting the total lesson count
// from an outline. Sources are tried in the order of LessonCountSources and
// the first one that applies wins.
type LessonCountSource struct {
	Name  string
	Count func(CourseOutline) (int, bool)
}

// LessonCountSources is the priority list of counting strategies. Courses
// whose lessons live only in a detached collection match none of these and
// report zero lessons; that is long-standing behavior the dashboard
// numbers depend on, not an oversight.
var LessonCountSources = []LessonCountSource{
	{Name: "modules", Count: countFromModules},
	{Name: "lesson_list", Count: countFromLessonList},
	{Name: "stored_counter", Count: countFromStoredCounter},
}

func countFromModules(o CourseOutline) (int, bool) {
	if o.Modules == nil {
		return 0, false
	}
	total := 0
	for _, m := range o.Modules {
		total += len(m.LessonIDs)
	}
	return total, true
}

func countFromLessonList(o CourseOutline) (int, bool) {
	if o.Lessons == nil {
		return 0, false
	}
	return len(o.Lessons), true
}

func countFromStoredCounter(o CourseOutline) (int, bool) {
	if o.LessonCount == nil {
		return 0, false
	}
	return *o.LessonCount, true
}

// TotalLessons resolves the outline's lesson count through the strategy
// list.
func TotalLessons(o CourseOutline) int {
	for _, src := range LessonCountSources {
		if n, ok := src.Count(o); ok {
			return n
		}
	}
	return 0
}

// ComputeCourseProgress turns a completed-lesson count into a course-level
// completion percentage: rounded, clamped to [0,100], and zero when no
// lessons are discoverable.
func ComputeCourseProgress(o CourseOutline, completedCount int) int {
	total := TotalLessons(o)
	if total <= 0 {
		return 0
	}

	pct := int(math.Round(float64(completedCount) / float64(total) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
