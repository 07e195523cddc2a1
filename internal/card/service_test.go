package card

import (
	"strings"
	"testing"

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
	return NewService(db, nil, logger.NewNop())
}

func TestPickRandomReturnsDrawableCategory(t *testing.T) {
	s := newTestService(t)

	c, err := s.PickRandom("")
	require.NoError(t, err)
	assert.Contains(t, drawableCategories, c.Category)
}

func TestPickRandomFiltersByMoodTag(t *testing.T) {
	s := newTestService(t)

	for i := 0; i < 10; i++ {
		c, err := s.PickRandom("焦虑")
		require.NoError(t, err)
		// 内置卡牌包里全部卡牌都带标签，因此必须命中标签本身
		assert.True(t, strings.Contains(c.MoodTags, "焦虑"),
			"卡牌 %q 的标签 %q 不包含 焦虑", c.Title, c.MoodTags)
	}
}

func TestPickRandomTreatsUntaggedAsWildcard(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.db.Create(&Card{
		Title: "空白 📄", Content: "内容", Category: "情绪类", CardType: "情绪类",
	}).Error)

	// 没有任何卡牌携带该标签，只有未标注的卡牌可以兜底
	c, err := s.PickRandom("不存在的标签")
	require.NoError(t, err)
	assert.Equal(t, "空白 📄", c.Title)
}

func TestPickRandomExcludesNonDrawableCategories(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.db.Create(&Card{
		Title: "测试卡", Content: "内容", Category: "fixed", CardType: "fixed", MoodTags: "测试专用",
	}).Error)

	_, err := s.PickRandom("测试专用")
	assert.ErrorIs(t, err, ErrNoEligibleCards)
}

func TestGetByID(t *testing.T) {
	s := newTestService(t)

	var seeded Card
	require.NoError(t, s.db.First(&seeded).Error)

	c, err := s.GetByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Title, c.Title)

	_, err = s.GetByID(99999)
	assert.ErrorIs(t, err, ErrNoEligibleCards)
}
