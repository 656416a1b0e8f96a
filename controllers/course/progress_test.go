package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"dma/models"
	courseModels "dma/models/course"
	"dma/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.LessonProgress{},
	))

	return NewHandler(db, zap.NewNop().Sugar())
}

// seedCourse creates one active course with a single module of two
// published lessons and an enrollment for the given user.
func seedCourse(t *testing.T, db *gorm.DB, userID uint) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	user := models.User{Name: "Teszt Elek", Email: fmt.Sprintf("user%d@example.com", userID), Password: "x"}
	user.ID = userID
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Alapozó kurzus", Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Első modul", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	lessons := []courseModels.Lesson{
		{CourseID: course.ID, ModuleID: &module.ID, Title: "Bevezetés", VideoURL: "v1", OrderIndex: 1, IsPublished: true},
		{CourseID: course.ID, ModuleID: &module.ID, Title: "Folytatás", VideoURL: "v2", OrderIndex: 2, IsPublished: true},
	}
	require.NoError(t, db.Create(&lessons).Error)

	now := time.Now()
	enrollment := courseModels.Enrollment{UserID: userID, CourseID: course.ID, Status: "not_started", EnrolledAt: &now}
	require.NoError(t, db.Create(&enrollment).Error)

	return course, lessons
}

func newProgressApp(h *Handler, userID uint, courseID, lessonID int) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)

		reqData := new(struct {
			WatchPercentage float64 `json:"watchPercentage"`
			TimeSpent       float64 `json:"timeSpent"`
			ResumePosition  float64 `json:"resumePosition"`
		})
		if err := c.BodyParser(reqData); err == nil {
			c.Locals("validatedProgressReport", reqData)
		}
		return c.Next()
	})
	app.Post("/progress", h.ReportLessonProgress)
	return app
}

func postProgress(t *testing.T, app *fiber.App, watchPercentage, timeSpent float64) {
	t.Helper()

	body, _ := json.Marshal(fiber.Map{
		"watchPercentage": watchPercentage,
		"timeSpent":       timeSpent,
		"resumePosition":  watchPercentage,
	})
	req := httptest.NewRequest("POST", "/progress", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestReportLessonProgressRollup(t *testing.T) {
	h := newTestHandler(t)
	course, lessons := seedCourse(t, h.DB, 1)

	// Finish the first of two lessons: 50%, in progress
	app := newProgressApp(h, 1, int(course.ID), int(lessons[0].ID))
	postProgress(t, app, 95, 120)

	var enrollment courseModels.Enrollment
	require.NoError(t, h.DB.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, 50, enrollment.CompletionPercentage)
	assert.Equal(t, progress.StatusActive, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
	require.NotNil(t, enrollment.CurrentLessonID)
	assert.Equal(t, lessons[0].ID, *enrollment.CurrentLessonID)

	// Finish the second: 100%, completed, completion stamp set
	app = newProgressApp(h, 1, int(course.ID), int(lessons[1].ID))
	postProgress(t, app, 92, 200)

	require.NoError(t, h.DB.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.CompletionPercentage)
	assert.Equal(t, progress.StatusCompleted, enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestReportLessonProgressNeverRegresses(t *testing.T) {
	h := newTestHandler(t)
	course, lessons := seedCourse(t, h.DB, 2)

	app := newProgressApp(h, 2, int(course.ID), int(lessons[0].ID))
	postProgress(t, app, 95, 300)

	// A late, out-of-order report with lower numbers must not undo the
	// completed state
	postProgress(t, app, 40, 100)

	var lp courseModels.LessonProgress
	require.NoError(t, h.DB.Where("user_id = ? AND lesson_id = ?", 2, lessons[0].ID).First(&lp).Error)
	assert.Equal(t, float64(95), lp.WatchPercentage)
	assert.Equal(t, float64(300), lp.TimeSpent)
	assert.True(t, lp.Completed)

	var enrollment courseModels.Enrollment
	require.NoError(t, h.DB.Where("user_id = ? AND course_id = ?", 2, course.ID).First(&enrollment).Error)
	assert.Equal(t, 50, enrollment.CompletionPercentage)
}

func TestReportBelowThresholdDoesNotComplete(t *testing.T) {
	h := newTestHandler(t)
	course, lessons := seedCourse(t, h.DB, 3)

	app := newProgressApp(h, 3, int(course.ID), int(lessons[0].ID))
	postProgress(t, app, 89.9, 60)

	var lp courseModels.LessonProgress
	require.NoError(t, h.DB.Where("user_id = ? AND lesson_id = ?", 3, lessons[0].ID).First(&lp).Error)
	assert.False(t, lp.Completed)

	var enrollment courseModels.Enrollment
	require.NoError(t, h.DB.Where("user_id = ? AND course_id = ?", 3, course.ID).First(&enrollment).Error)
	assert.Equal(t, 0, enrollment.CompletionPercentage)
}

func TestSyncDeviceBumpsVersion(t *testing.T) {
	h := newTestHandler(t)
	course, lessons := seedCourse(t, h.DB, 4)

	progressApp := newProgressApp(h, 4, int(course.ID), int(lessons[0].ID))
	postProgress(t, progressApp, 50, 30)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", uint(4))
		c.Locals("validatedDeviceSync", &struct {
			DeviceID string `json:"deviceId"`
			CourseID *uint  `json:"courseId"`
		}{DeviceID: "phone-abc"})
		return c.Next()
	})
	app.Post("/sync", h.SyncDevice)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var lp courseModels.LessonProgress
	require.NoError(t, h.DB.Where("user_id = ? AND lesson_id = ?", 4, lessons[0].ID).First(&lp).Error)
	assert.Equal(t, "phone-abc", lp.DeviceID)
	assert.Equal(t, int64(1), lp.SyncVersion)
	// the watch state itself is untouched by a handoff
	assert.Equal(t, float64(50), lp.WatchPercentage)
}
