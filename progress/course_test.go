package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestTotalLessonsSourcePriority(t *testing.T) {
	tests := []struct {
		name    string
		outline CourseOutline
		want    int
	}{
		{
			name: "modules win over everything",
			outline: CourseOutline{
				Modules:     []ModuleOutline{{LessonIDs: []uint{1, 2, 3}}, {LessonIDs: []uint{4, 5, 6}}},
				Lessons:     []uint{1, 2},
				LessonCount: intPtr(99),
			},
			want: 6,
		},
		{
			name: "empty modules array still wins",
			outline: CourseOutline{
				Modules:     []ModuleOutline{},
				LessonCount: intPtr(99),
			},
			want: 0,
		},
		{
			name: "flat lesson list before stored counter",
			outline: CourseOutline{
				Lessons:     []uint{1, 2, 3, 4},
				LessonCount: intPtr(99),
			},
			want: 4,
		},
		{
			name:    "stored counter as last resort",
			outline: CourseOutline{LessonCount: intPtr(12)},
			want:    12,
		},
		{
			name:    "nothing discoverable",
			outline: CourseOutline{},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalLessons(tt.outline))
		})
	}
}

func TestComputeCourseProgress(t *testing.T) {
	twoByThree := CourseOutline{
		Modules: []ModuleOutline{
			{LessonIDs: []uint{1, 2, 3}},
			{LessonIDs: []uint{4, 5, 6}},
		},
	}

	// 3 of 6 lessons done -> 50
	assert.Equal(t, 50, ComputeCourseProgress(twoByThree, 3))
	assert.Equal(t, 0, ComputeCourseProgress(twoByThree, 0))
	assert.Equal(t, 100, ComputeCourseProgress(twoByThree, 6))

	// rounding: 1/3 -> 33, 2/3 -> 67
	third := CourseOutline{Lessons: []uint{1, 2, 3}}
	assert.Equal(t, 33, ComputeCourseProgress(third, 1))
	assert.Equal(t, 67, ComputeCourseProgress(third, 2))

	// over-counting (stale counter smaller than completions) clamps at 100
	assert.Equal(t, 100, ComputeCourseProgress(CourseOutline{LessonCount: intPtr(2)}, 5))
}

// Courses whose lessons live only in a detached collection expose no
// countable source; they report 0%, they do not error.
func TestComputeCourseProgressNoDiscoverableLessons(t *testing.T) {
	assert.Equal(t, 0, ComputeCourseProgress(CourseOutline{}, 3))
}

func TestComputeCourseProgressBounded(t *testing.T) {
	outlines := []CourseOutline{
		{},
		{Modules: []ModuleOutline{{LessonIDs: []uint{1}}}},
		{Lessons: []uint{1, 2, 3}},
		{LessonCount: intPtr(7)},
		{LessonCount: intPtr(0)},
	}
	counts := []int{-3, 0, 1, 5, 1000}

	for _, o := range outlines {
		for _, n := range counts {
			got := ComputeCourseProgress(o, n)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}
