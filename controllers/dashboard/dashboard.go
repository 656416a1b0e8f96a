package dashboardController

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dma/middleware"
	courseModels "dma/models/course"
	"dma/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// enrollmentFetchLimit caps the per-user enrollment scan. The old
	// system fetched without a limit, which blows up for accounts with
	// thousands of enrollments.
	enrollmentFetchLimit = 1000

	statsCacheTTL = 5 * time.Minute
)

// Handler serves the dashboard statistics endpoints.
type Handler struct {
	DB    *gorm.DB
	Cache *redis.Client
	Log   *zap.SugaredLogger
	// Now is the clock used for trend windows; swapped in tests.
	Now func() time.Time
}

func NewHandler(db *gorm.DB, cache *redis.Client, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Cache: cache, Log: log, Now: time.Now}
}

// StatsQuery is the optional, loosely validated date filter of the stats
// endpoint.
type StatsQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// SnapshotRecord is one enrollment as cached by the frontend. EnrolledAt
// arrives either as an ISO-8601 string or as epoch milliseconds, matching
// the two shapes the client ever held.
type SnapshotRecord struct {
	Status     string          `json:"status"`
	EnrolledAt json.RawMessage `json:"enrolledAt"`
}

// StatsSnapshot is the client-fallback recompute request body.
type StatsSnapshot struct {
	Enrollments []SnapshotRecord `json:"enrollments"`
}

// GetDashboardStats returns the caller's enrollment counters and trends.
// When the store scan fails the last cached result is served stale instead
// of an error; the UI only sees a failure when neither path has data.
func (h *Handler) GetDashboardStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	query, _ := c.Locals("validatedStatsQuery").(*StatsQuery)

	var enrollments []courseModels.Enrollment
	err := h.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Limit(enrollmentFetchLimit).
		Find(&enrollments).Error
	if err != nil {
		h.Log.Warnw("enrollment scan failed, falling back to cached stats",
			"user_id", userID, "error", err)
		if cached, cacheErr := h.cachedStats(c.Context(), userID); cacheErr == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats served from cache!", fiber.Map{
				"stats":  cached.Stats,
				"trends": cached.Trends,
				"stale":  true,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Statistics are temporarily unavailable!", nil)
	}

	records := RecordsFromEnrollments(enrollments)
	if query != nil {
		// The store only filters on user_id; independent date bounds
		// are applied in memory.
		records = filterByWindow(records, query)
	}

	result := progress.ComputeDashboardStats(records, h.Now())
	h.storeCachedStats(c.Context(), userID, result)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", result)
}

// RecomputeStats is the client-fallback path: the frontend posts its local
// enrollment snapshot and gets the same counters back. It runs the exact
// counting code as GetDashboardStats, so the two paths cannot disagree on
// identical input.
func (h *Handler) RecomputeStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	snapshot, ok := c.Locals("validatedStatsSnapshot").(*StatsSnapshot)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := progress.ComputeDashboardStats(RecordsFromSnapshot(snapshot), h.Now())

	h.Log.Debugw("dashboard stats recomputed from client snapshot",
		"user_id", userID, "records", len(snapshot.Enrollments))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats recomputed successfully!", result)
}

// RecordsFromEnrollments adapts stored rows to counting records.
func RecordsFromEnrollments(enrollments []courseModels.Enrollment) []progress.EnrollmentRecord {
	records := make([]progress.EnrollmentRecord, 0, len(enrollments))
	for _, e := range enrollments {
		records = append(records, progress.EnrollmentRecord{
			Status:     e.Status,
			EnrolledAt: enrollmentInstant(e),
		})
	}
	return records
}

// RecordsFromSnapshot adapts a posted client snapshot to counting records.
func RecordsFromSnapshot(snapshot *StatsSnapshot) []progress.EnrollmentRecord {
	records := make([]progress.EnrollmentRecord, 0, len(snapshot.Enrollments))
	for _, rec := range snapshot.Enrollments {
		records = append(records, progress.EnrollmentRecord{
			Status:     rec.Status,
			EnrolledAt: snapshotInstant(rec.EnrolledAt),
		})
	}
	return records
}

func enrollmentInstant(e courseModels.Enrollment) progress.Instant {
	if e.EnrolledAt != nil {
		return progress.InstantFromTime(*e.EnrolledAt)
	}
	// imported rows: ISO string, or nothing at all
	return progress.InstantFromString(e.EnrolledAtRaw)
}

func snapshotInstant(raw json.RawMessage) progress.Instant {
	if len(raw) == 0 || string(raw) == "null" {
		return progress.MissingInstant()
	}

	var iso string
	if err := json.Unmarshal(raw, &iso); err == nil {
		return progress.InstantFromString(iso)
	}

	var epochMillis float64
	if err := json.Unmarshal(raw, &epochMillis); err == nil {
		return progress.InstantFromTime(time.UnixMilli(int64(epochMillis)).UTC())
	}

	return progress.MissingInstant()
}

func filterByWindow(records []progress.EnrollmentRecord, query *StatsQuery) []progress.EnrollmentRecord {
	if query.StartDate == nil && query.EndDate == nil {
		return records
	}

	filtered := make([]progress.EnrollmentRecord, 0, len(records))
	for _, rec := range records {
		enrolledAt := rec.EnrolledAt.Resolve()
		if query.StartDate != nil && enrolledAt.Before(*query.StartDate) {
			continue
		}
		if query.EndDate != nil && enrolledAt.After(*query.EndDate) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("dashboard:stats:%d", userID)
}

func (h *Handler) cachedStats(ctx context.Context, userID uint) (progress.DashboardStats, error) {
	var stats progress.DashboardStats
	if h.Cache == nil {
		return stats, redis.Nil
	}

	payload, err := h.Cache.Get(ctx, statsCacheKey(userID)).Result()
	if err != nil {
		return stats, err
	}
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

func (h *Handler) storeCachedStats(ctx context.Context, userID uint, stats progress.DashboardStats) {
	if h.Cache == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := h.Cache.Set(ctx, statsCacheKey(userID), payload, statsCacheTTL).Err(); err != nil {
		h.Log.Warnw("failed to store dashboard stats cache", "user_id", userID, "error", err)
	}
}
