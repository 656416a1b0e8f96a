package dashboardController

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	courseModels "dma/models/course"
	"dma/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func timePtr(t time.Time) *time.Time { return &t }

// The serverless-style path (store rows) and the client-fallback path
// (posted snapshot) must produce identical stats and trends for the same
// underlying data.
func TestDualPathEquivalence(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	tenDaysAgo := now.AddDate(0, 0, -10)
	fortyFiveDaysAgo := now.AddDate(0, 0, -45)

	rows := []courseModels.Enrollment{
		{UserID: 1, CourseID: 1, Status: "completed", EnrolledAt: timePtr(tenDaysAgo)},
		{UserID: 1, CourseID: 2, Status: "ACTIVE", EnrolledAt: nil, EnrolledAtRaw: fortyFiveDaysAgo.Format(time.RFC3339)},
		{UserID: 1, CourseID: 3, Status: "in_progress", EnrolledAt: nil, EnrolledAtRaw: ""},
		{UserID: 1, CourseID: 4, Status: "not_started", EnrolledAt: timePtr(fortyFiveDaysAgo)},
	}

	snapshotJSON := fmt.Sprintf(`{"enrollments":[
		{"status":"completed","enrolledAt":%d},
		{"status":"ACTIVE","enrolledAt":%q},
		{"status":"in_progress"},
		{"status":"not_started","enrolledAt":%q}
	]}`, tenDaysAgo.UnixMilli(), fortyFiveDaysAgo.Format(time.RFC3339), fortyFiveDaysAgo.Format(time.RFC3339))

	var snapshot StatsSnapshot
	require.NoError(t, json.Unmarshal([]byte(snapshotJSON), &snapshot))

	fromRows := progress.ComputeDashboardStats(RecordsFromEnrollments(rows), now)
	fromSnapshot := progress.ComputeDashboardStats(RecordsFromSnapshot(&snapshot), now)

	assert.Equal(t, fromRows, fromSnapshot)

	// sanity: the shared numbers are the expected ones
	assert.Equal(t, progress.Stats{TotalEnrolled: 4, ActiveInProgress: 2, Completed: 1}, fromRows.Stats)
}

func TestSnapshotInstantForms(t *testing.T) {
	native := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	asMillis := snapshotInstant(json.RawMessage(fmt.Sprintf("%d", native.UnixMilli())))
	asISO := snapshotInstant(json.RawMessage(`"2024-01-01T00:00:00Z"`))

	assert.True(t, asMillis.Resolve().Equal(asISO.Resolve()))

	assert.False(t, snapshotInstant(nil).Present())
	assert.False(t, snapshotInstant(json.RawMessage(`null`)).Present())
	assert.False(t, snapshotInstant(json.RawMessage(`{"weird":true}`)).Present())
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&courseModels.Enrollment{}))

	h := NewHandler(db, nil, zap.NewNop().Sugar())
	h.Now = func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }
	return h
}

func newTestApp(h *Handler, userID interface{}) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != nil {
			c.Locals("userId", userID)
		}
		return c.Next()
	})
	app.Get("/dashboard/stats", h.GetDashboardStats)
	app.Post("/dashboard/stats/recompute", h.RecomputeStats)
	return app
}

type statsEnvelope struct {
	Status  bool                    `json:"status"`
	Message string                  `json:"message"`
	Data    progress.DashboardStats `json:"data"`
}

func TestGetDashboardStatsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	now := h.Now()

	seed := []courseModels.Enrollment{
		{UserID: 7, CourseID: 1, Status: "completed", EnrolledAt: timePtr(now.AddDate(0, 0, -5))},
		{UserID: 7, CourseID: 2, Status: "ACTIVE", EnrolledAt: timePtr(now.AddDate(0, 0, -10))},
		{UserID: 7, CourseID: 3, Status: "in_progress", EnrolledAt: timePtr(now.AddDate(0, 0, -45))},
		// another user's enrollment must not leak in
		{UserID: 8, CourseID: 1, Status: "completed", EnrolledAt: timePtr(now)},
	}
	require.NoError(t, h.DB.Create(&seed).Error)

	app := newTestApp(h, uint(7))
	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/stats", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope statsEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))

	assert.True(t, envelope.Status)
	assert.Equal(t, progress.Stats{TotalEnrolled: 3, ActiveInProgress: 2, Completed: 1}, envelope.Data.Stats)
	assert.Equal(t, 200.0, envelope.Data.Trends.TotalEnrolledTrend)
	assert.Equal(t, 100.0, envelope.Data.Trends.ActiveInProgressTrend)
	assert.Equal(t, 100.0, envelope.Data.Trends.CompletedTrend)
}

func TestGetDashboardStatsUnauthenticated(t *testing.T) {
	h := newTestHandler(t)

	app := newTestApp(h, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRecomputeStatsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", uint(7))
		snapshot := &StatsSnapshot{Enrollments: []SnapshotRecord{
			{Status: "completed"},
			{Status: "active"},
		}}
		c.Locals("validatedStatsSnapshot", snapshot)
		return c.Next()
	})
	app.Post("/dashboard/stats/recompute", h.RecomputeStats)

	resp, err := app.Test(httptest.NewRequest("POST", "/dashboard/stats/recompute", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope statsEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, progress.Stats{TotalEnrolled: 2, ActiveInProgress: 1, Completed: 1}, envelope.Data.Stats)
}
