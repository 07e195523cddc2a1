package draw

import (
	"context"
	"errors"

	"github.com/echo-insight/echo-insight-backend/internal/card"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/echo-insight/echo-insight-backend/pkg/llm"
)

// BackCard 是背面内容里回显的卡牌摘要。
type BackCard struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Keywords string `json:"keywords"`
}

// BackContent 是卡牌背面的生成结果：恰好2个提问与2条行动建议。
type BackContent struct {
	MBTI      string   `json:"mbti"`
	Mood      string   `json:"mood"`
	Card      BackCard `json:"card"`
	Questions []string `json:"questions"`
	Actions   []string `json:"actions"`
	Provider  string   `json:"provider"`
}

// GenerateBack 为一张卡牌生成个性化背面内容。
// 优先走大模型；模型不可用、调用失败或解析不出有效问题时，
// 一律降级到本地模板。除卡牌不存在外不会返回错误。
func (s *Service) GenerateBack(ctx context.Context, userID string, cardID uint, mood string) (*BackContent, error) {
	userCtx := s.insight.AggregateUserContext(userID)

	picked, err := s.cards.GetByID(cardID)
	if err != nil {
		if errors.Is(err, card.ErrNoEligibleCards) {
			return nil, ErrNoSuchDraw
		}
		return nil, err
	}

	mbti := "UNKNOWN"
	var u user.User
	if err := s.db.Where("id = ?", userID).First(&u).Error; err == nil && u.MBTIType != "" {
		mbti = u.MBTIType
	}

	result := &BackContent{
		MBTI: mbti,
		Mood: mood,
		Card: BackCard{ID: picked.ID, Title: picked.Title, Keywords: picked.MoodTags},
	}

	if s.llm != nil {
		text, err := s.llm.Complete(ctx, systemPrompt, buildUserPrompt(userCtx, picked, mbti, mood))
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			// 未配置时静默走模板
		case err != nil:
			s.log.Warn("大模型生成失败，回退到模板", "userId", userID, "cardId", cardID, "error", err)
		default:
			questions, actions := parseGenerated(text)
			if len(questions) >= 2 {
				result.Questions = questions[:2]
				result.Actions = stripLabels(ensureABFormat(actions, mbti, picked.Title))
				result.Provider = s.llm.Provider()
				return result, nil
			}
			s.log.Warn("模型输出中的有效问题不足，回退到模板", "userId", userID, "cardId", cardID, "questions", len(questions))
		}
	}

	result.Questions = defaultQuestions(mbti, picked.Title)
	result.Actions = stripLabels(defaultActions(mbti, picked.Title, userCtx))
	result.Provider = "template-fallback"
	return result, nil
}

func stripLabels(actions []string) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = stripABLabel(a)
	}
	return out
}
