package insight_test

import (
	"strings"
	"testing"
	"time"

	"github.com/echo-insight/echo-insight-backend/internal/card"
	"github.com/echo-insight/echo-insight-backend/internal/draw"
	"github.com/echo-insight/echo-insight-backend/internal/insight"
	"github.com/echo-insight/echo-insight-backend/internal/mood"
	"github.com/echo-insight/echo-insight-backend/internal/progression"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存SQLite每条连接各自独立，限制连接池避免拿到空库
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, user.SetupModule(db))
	require.NoError(t, card.SetupModule(db))
	require.NoError(t, mood.SetupModule(db))
	require.NoError(t, progression.SetupModule(db))
	require.NoError(t, draw.SetupModule(db))
	return db
}

func seedMood(t *testing.T, db *gorm.DB, userID, overall string, daysAgo int) {
	t.Helper()
	record := mood.MoodRecord{
		UserID:      userID,
		OverallMood: overall,
		EnergyLevel: "中",
		RecordedAt:  time.Now().AddDate(0, 0, -daysAgo),
	}
	require.NoError(t, db.Create(&record).Error)
}

func seedDraw(t *testing.T, db *gorm.DB, userID string, cardID uint, response string, daysAgo int) {
	t.Helper()
	respLen := len([]rune(strings.TrimSpace(response)))
	event := draw.CardDrawEvent{
		UserID:         userID,
		CardID:         cardID,
		UserResponse:   response,
		ResponseLength: respLen,
		DrawnAt:        time.Now().AddDate(0, 0, -daysAgo),
	}
	require.NoError(t, db.Create(&event).Error)
}

func firstCardInCategory(t *testing.T, db *gorm.DB, category string) card.Card {
	t.Helper()
	var c card.Card
	require.NoError(t, db.Where("category = ?", category).First(&c).Error)
	return c
}

func TestAggregateDefaultsForUnknownUser(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())

	ctx := s.AggregateUserContext("no-such-user")
	assert.Equal(t, "UNKNOWN", ctx.UserProfile.MBTI)
	assert.Equal(t, 0, ctx.UserProfile.StreakDays)
	assert.Equal(t, "neutral", ctx.RecentMood.Trend)
	assert.Empty(t, ctx.RecentThreads)
	assert.Empty(t, ctx.UserPhrases)
}

func TestAggregateProfileAndTime(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())

	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x", MBTIType: "INFJ"}
	require.NoError(t, db.Create(&u).Error)
	progress := progression.UserProgress{UserID: "user-1", Level: 2, ConsecutiveDays: 6}
	require.NoError(t, db.Create(&progress).Error)

	ctx := s.AggregateUserContext("user-1")
	assert.Equal(t, "INFJ", ctx.UserProfile.MBTI)
	assert.Equal(t, 6, ctx.UserProfile.StreakDays)
	assert.Contains(t, []string{"morning", "afternoon", "evening"}, ctx.TimeOfDay)
}

func TestAggregateTopMoodsAndTrend(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())
	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)

	// 由近及远：平静、平静、焦虑、低落、低落
	seedMood(t, db, "user-1", "平静", 0)
	seedMood(t, db, "user-1", "平静", 1)
	seedMood(t, db, "user-1", "焦虑", 2)
	seedMood(t, db, "user-1", "低落", 3)
	seedMood(t, db, "user-1", "低落", 4)

	ctx := s.AggregateUserContext("user-1")
	require.Len(t, ctx.RecentMood.Top, 2)
	// 平静出现2次且更近，低落出现2次
	assert.Equal(t, "平静", ctx.RecentMood.Top[0])
	assert.Equal(t, "低落", ctx.RecentMood.Top[1])
	// 最近两条都是积极情绪，最早两条都不是
	assert.Equal(t, "slightly_up", ctx.RecentMood.Trend)
}

func TestAggregateTrendStableWithFewRecords(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())
	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)

	seedMood(t, db, "user-1", "平静", 0)
	seedMood(t, db, "user-1", "焦虑", 1)

	ctx := s.AggregateUserContext("user-1")
	// 不足4条时不判断趋势
	assert.Equal(t, "neutral", ctx.RecentMood.Trend)
}

func TestAggregateIgnoresOldMoods(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())
	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)

	seedMood(t, db, "user-1", "低落", 20)

	ctx := s.AggregateUserContext("user-1")
	assert.Empty(t, ctx.RecentMood.Top)
}

func TestAggregateThreadsAndPhrases(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())
	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)

	emotionCard := firstCardInCategory(t, db, "情绪类")
	growthCard := firstCardInCategory(t, db, "成长类")

	longResponse := "最近工作压力很大，总觉得时间不够用，想找回自己的节奏"
	seedDraw(t, db, "user-1", emotionCard.ID, longResponse, 1)
	seedDraw(t, db, "user-1", growthCard.ID, "", 3)

	ctx := s.AggregateUserContext("user-1")
	require.Len(t, ctx.RecentThreads, 2)

	// 线索按由近及远的类别顺序
	assert.Equal(t, emotionCard.Category, ctx.RecentThreads[0].Topic)
	assert.Equal(t, "已完成", ctx.RecentThreads[0].LastAction)
	assert.Equal(t, "1d", ctx.RecentThreads[0].LastSeen)
	assert.NotEqual(t, "无回答", ctx.RecentThreads[0].Evidence)

	assert.Equal(t, growthCard.Category, ctx.RecentThreads[1].Topic)
	assert.Equal(t, "未完成", ctx.RecentThreads[1].LastAction)
	assert.Equal(t, "无回答", ctx.RecentThreads[1].Evidence)

	require.Len(t, ctx.UserPhrases, 1)
	assert.Contains(t, ctx.UserPhrases[0], "最近工作压力很大")
}

func TestAggregateRedactsSensitiveText(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())
	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)

	c := firstCardInCategory(t, db, "情绪类")
	seedDraw(t, db, "user-1", c.ID, "打给13812345678聊了很久心情", 1)

	ctx := s.AggregateUserContext("user-1")
	require.Len(t, ctx.RecentThreads, 1)
	assert.NotContains(t, ctx.RecentThreads[0].Evidence, "13812345678")
	for _, phrase := range ctx.UserPhrases {
		assert.NotContains(t, phrase, "13812345678")
	}
}

func TestAggregateCapsPhrasesAtThree(t *testing.T) {
	db := newTestDB(t)
	s := insight.NewService(db, mood.NewService(db, logger.NewNop()), logger.NewNop())
	u := user.User{ID: "user-1", Username: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)

	var cards []card.Card
	require.NoError(t, db.Limit(5).Find(&cards).Error)
	require.GreaterOrEqual(t, len(cards), 5)
	for i, c := range cards {
		seedDraw(t, db, "user-1", c.ID, "这是一段足够长的回答内容，编号"+c.Title, i)
	}

	ctx := s.AggregateUserContext("user-1")
	assert.LessOrEqual(t, len(ctx.UserPhrases), 3)
}
