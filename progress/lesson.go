package progress

// LessonCompletionThreshold is the watch percentage at which a lesson
// counts as done. Fixed policy, not configurable per course.
const LessonCompletionThreshold = 90.0

// IsLessonComplete decides whether a single lesson is done. An explicit
// completed flag always wins, otherwise the watch percentage is compared
// against the threshold.
func IsLessonComplete(watchPercentage float64, completed bool) bool {
	if completed {
		return true
	}
	return watchPercentage >= LessonCompletionThreshold
}
