package progression

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存SQLite每条连接各自独立，限制连接池避免拿到空库
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, SetupModule(db))
	return NewService(db, logger.NewNop())
}

func TestGetProgressDefaultsWhenMissing(t *testing.T) {
	s := newTestService(t)

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 0, progress.ExperiencePoints)
	assert.Equal(t, 0, progress.ConsecutiveDays)
}

func TestAddExperienceCreatesRowAndEvent(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.AddExperience("user-1", 10, "抽卡"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, progress.ExperiencePoints)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 1, progress.ConsecutiveDays)

	var events []AnalyticsEvent
	require.NoError(t, s.db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "xp_gained", events[0].Type)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(events[0].Payload), &payload))
	assert.Equal(t, float64(10), payload["amount"])
	assert.Equal(t, "抽卡", payload["reason"])
}

func TestAddExperienceLevelsUp(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.AddExperience("user-1", 100, "记录回答"))
	require.NoError(t, s.AddExperience("user-1", 30, "记录回答"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 130, progress.ExperiencePoints)
	assert.Equal(t, 2, progress.Level)
}

func TestUpdateConsecutiveDaysSameDayIsNoop(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.UpdateConsecutiveDays("user-1"))
	require.NoError(t, s.UpdateConsecutiveDays("user-1"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.ConsecutiveDays)
}

func TestUpdateConsecutiveDaysIncrementsAfterOneDay(t *testing.T) {
	s := newTestService(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	seed := UserProgress{UserID: "user-1", Level: 1, ConsecutiveDays: 4, LastActivityDate: yesterday}
	require.NoError(t, s.db.Create(&seed).Error)

	require.NoError(t, s.UpdateConsecutiveDays("user-1"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, progress.ConsecutiveDays)
	assert.Equal(t, time.Now().Format("2006-01-02"), progress.LastActivityDate)
}

func TestUpdateConsecutiveDaysResetsAfterGap(t *testing.T) {
	s := newTestService(t)

	threeDaysAgo := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	seed := UserProgress{UserID: "user-1", Level: 1, ConsecutiveDays: 9, LastActivityDate: threeDaysAgo}
	require.NoError(t, s.db.Create(&seed).Error)

	require.NoError(t, s.UpdateConsecutiveDays("user-1"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.ConsecutiveDays)
}

func TestUpdateConsecutiveDaysIgnoresFutureDate(t *testing.T) {
	s := newTestService(t)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	seed := UserProgress{UserID: "user-1", Level: 1, ConsecutiveDays: 6, LastActivityDate: tomorrow}
	require.NoError(t, s.db.Create(&seed).Error)

	require.NoError(t, s.UpdateConsecutiveDays("user-1"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 6, progress.ConsecutiveDays)
	assert.Equal(t, tomorrow, progress.LastActivityDate)
}

func TestDayDiff(t *testing.T) {
	diff, err := dayDiff("2026-08-30", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 1, diff)

	diff, err = dayDiff("2026-08-31", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 0, diff)

	diff, err = dayDiff("2026-09-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, -1, diff)

	// 跨月
	diff, err = dayDiff("2026-02-27", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 3, diff)
}

func TestRecordEvent(t *testing.T) {
	s := newTestService(t)

	id, err := s.RecordEvent("user-1", "card_viewed", map[string]interface{}{"cardId": 3})
	require.NoError(t, err)
	assert.NotZero(t, id)

	var event AnalyticsEvent
	require.NoError(t, s.db.First(&event, id).Error)
	assert.Equal(t, "card_viewed", event.Type)
	assert.JSONEq(t, `{"cardId":3}`, event.Payload)

	// 空负载落为 {}；复用已填充主键的结构体会把旧ID并进查询条件
	id2, err := s.RecordEvent("user-1", "app_opened", nil)
	require.NoError(t, err)
	var event2 AnalyticsEvent
	require.NoError(t, s.db.First(&event2, id2).Error)
	assert.Equal(t, "{}", event2.Payload)
}

func TestAddExperienceAccumulates(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.AddExperience("user-1", 250, "记录回答"))
	require.NoError(t, s.AddExperience("user-1", 250, "记录回答"))

	progress, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 500, progress.ExperiencePoints)
	assert.Equal(t, CalculateLevel(500), progress.Level)
}
