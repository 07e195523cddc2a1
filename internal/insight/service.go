package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/echo-insight/echo-insight-backend/internal/mood"
	"github.com/echo-insight/echo-insight-backend/internal/progression"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"gorm.io/gorm"
)

// positiveMoods 用于粗粒度情绪趋势判断。
var positiveMoods = map[string]bool{"平静": true, "兴奋": true}

// Service 聚合用户历史数据，产出脱敏后的个性化上下文。
type Service struct {
	db    *gorm.DB
	moods *mood.Service
	log   *logger.Logger
}

func NewService(db *gorm.DB, moods *mood.Service, log *logger.Logger) *Service {
	return &Service{db: db, moods: moods, log: log}
}

// drawRow 是抽卡记录与卡牌标题/类别的联查结果。
type drawRow struct {
	DrawnAt        time.Time
	UserResponse   string
	ResponseLength int
	Title          string
	Category       string
}

// AggregateUserContext 聚合某个用户的个性化上下文。
// 任何读取失败都降级而不是报错：画像读不到时返回最小上下文，
// 心情或抽卡读不到时跳过对应部分。生成器永远能拿到一个可用的上下文。
func (s *Service) AggregateUserContext(userID string) *Context {
	ctx := defaultContext()

	var u user.User
	if err := s.db.Where("id = ?", userID).First(&u).Error; err != nil {
		s.log.Warn("聚合用户上下文失败", "userId", userID, "error", err)
		return ctx
	}
	if u.MBTIType != "" {
		ctx.UserProfile.MBTI = u.MBTIType
	}

	var progress progression.UserProgress
	if err := s.db.Where("user_id = ?", userID).First(&progress).Error; err == nil {
		ctx.UserProfile.StreakDays = progress.ConsecutiveDays
	}

	now := time.Now()
	hour := now.Hour()
	switch {
	case hour < 12:
		ctx.TimeOfDay = "morning"
	case hour < 18:
		ctx.TimeOfDay = "afternoon"
	default:
		ctx.TimeOfDay = "evening"
	}
	weekday := now.Weekday()
	ctx.Weekday = weekday >= time.Monday && weekday <= time.Friday

	s.fillRecentMood(ctx, userID, now)
	s.fillRecentThreads(ctx, userID, now)
	return ctx
}

// fillRecentMood 统计近7天的心情：出现最多的前2项与粗粒度趋势。
func (s *Service) fillRecentMood(ctx *Context, userID string, now time.Time) {
	moods, err := s.moods.RecentSince(userID, now.AddDate(0, 0, -7), 10)
	if err != nil {
		s.log.Warn("读取心情记录失败", "userId", userID, "error", err)
		return
	}
	if len(moods) == 0 {
		return
	}

	// 按首次出现顺序（即由近及远）统计，频次并列时更近的优先
	counts := map[string]int{}
	var order []string
	for _, m := range moods {
		if _, seen := counts[m.OverallMood]; !seen {
			order = append(order, m.OverallMood)
		}
		counts[m.OverallMood]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 2 {
		order = order[:2]
	}
	ctx.RecentMood.Top = order

	// 最近两条 vs 最早两条的积极情绪计数
	if len(moods) >= 4 {
		recentScore := moodScore(moods[:2])
		earlierScore := moodScore(moods[len(moods)-2:])
		switch {
		case recentScore > earlierScore:
			ctx.RecentMood.Trend = "slightly_up"
		case recentScore < earlierScore:
			ctx.RecentMood.Trend = "slightly_down"
		default:
			ctx.RecentMood.Trend = "stable"
		}
	}
}

func moodScore(records []mood.MoodRecord) int {
	score := 0
	for _, m := range records {
		if positiveMoods[m.OverallMood] {
			score++
		}
	}
	return score
}

// fillRecentThreads 从近14天的抽卡记录中提取主题线索与脱敏短语。
func (s *Service) fillRecentThreads(ctx *Context, userID string, now time.Time) {
	var draws []drawRow
	err := s.db.Table("card_draws cd").
		Select("cd.drawn_at, cd.user_response, cd.response_length, c.title, c.category").
		Joins("JOIN cards c ON cd.card_id = c.id").
		Where("cd.user_id = ? AND cd.drawn_at >= ?", userID, now.AddDate(0, 0, -14)).
		Order("cd.drawn_at DESC").
		Limit(10).
		Scan(&draws).Error
	if err != nil {
		s.log.Warn("读取抽卡记录失败", "userId", userID, "error", err)
		return
	}
	if len(draws) == 0 {
		return
	}

	// 类别按首次出现顺序收集，线索取该类别最近的一条记录
	seen := map[string]bool{}
	var phrases []string
	for _, d := range draws {
		if d.Category != "" && !seen[d.Category] {
			seen[d.Category] = true

			evidence := "无回答"
			if d.UserResponse != "" {
				evidence = Redact(truncateRunes(d.UserResponse, 30))
			}
			lastAction := "未完成"
			if d.ResponseLength > 20 {
				lastAction = "已完成"
			}
			daysDiff := int(now.Sub(d.DrawnAt).Hours() / 24)

			ctx.RecentThreads = append(ctx.RecentThreads, Thread{
				Topic:      d.Category,
				LastAction: lastAction,
				Evidence:   evidence,
				LastSeen:   fmt.Sprintf("%dd", daysDiff),
			})
		}

		// 用户短语：取较长回答的开头片段，脱敏后保留
		if len(phrases) < 3 && len([]rune(d.UserResponse)) > 5 {
			phrase := Redact(strings.TrimSpace(truncateRunes(d.UserResponse, 20)))
			if len([]rune(phrase)) >= 5 {
				phrases = append(phrases, fmt.Sprintf("%q", phrase))
			}
		}
	}
	ctx.UserPhrases = phrases
}
