package draw

import (
	"strings"
	"testing"

	"github.com/echo-insight/echo-insight-backend/internal/insight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuestionsForKnownMBTI(t *testing.T) {
	questions := defaultQuestions("INFP", "孤独 🌙")
	require.Len(t, questions, 2)
	assert.Contains(t, questions[0], "孤独 🌙")
	assert.NotContains(t, questions[0], "%s")
	assert.NotEqual(t, questions[0], questions[1])
}

func TestDefaultQuestionsFallbackForUnknownMBTI(t *testing.T) {
	for _, mbti := range []string{"UNKNOWN", "", "XXXX"} {
		questions := defaultQuestions(mbti, "平静 🌿")
		require.Len(t, questions, 2, "mbti=%s", mbti)
		assert.NotEmpty(t, questions[0])
		assert.NotEmpty(t, questions[1])
	}
}

func TestDefaultQuestionsCoverAllSixteenTypes(t *testing.T) {
	types := []string{
		"INTJ", "INTP", "ENTJ", "ENTP",
		"INFJ", "INFP", "ENFJ", "ENFP",
		"ISTJ", "ISFJ", "ESTJ", "ESFJ",
		"ISTP", "ISFP", "ESTP", "ESFP",
	}
	for _, mbti := range types {
		_, ok := questionTemplates[mbti]
		assert.True(t, ok, "缺少%s的提问模板", mbti)
		_, ok = aActionTemplates[mbti]
		assert.True(t, ok, "缺少%s的A类行动模板", mbti)
		_, ok = bActionTemplates[mbti]
		assert.True(t, ok, "缺少%s的B类行动模板", mbti)
	}
}

func TestDefaultActionsLabeledAB(t *testing.T) {
	actions := defaultActions("ENTP", "创造力 🎨", nil)
	require.Len(t, actions, 2)
	assert.True(t, strings.HasPrefix(actions[0], "A. "))
	assert.True(t, strings.HasPrefix(actions[1], "B. "))
	assert.NotContains(t, actions[0], "%s")
	assert.NotContains(t, actions[1], "%s")
}

func TestDefaultActionsVaryWithHistory(t *testing.T) {
	withHistory := &insight.Context{
		RecentThreads: []insight.Thread{{Topic: "成长类", LastAction: "未完成", Evidence: "无回答", LastSeen: "1d"}},
	}
	noHistory := &insight.Context{}

	a := defaultActions("INTJ", "坚持 ⛰️", withHistory)
	b := defaultActions("INTJ", "坚持 ⛰️", noHistory)
	assert.NotEqual(t, a[1], b[1])
	// A类微行动与历史无关
	assert.Equal(t, a[0], b[0])
}

func TestDefaultActionsFallbackForUnknownMBTI(t *testing.T) {
	actions := defaultActions("UNKNOWN", "勇气 🌟", nil)
	require.Len(t, actions, 2)
	assert.True(t, strings.HasPrefix(actions[0], "A. "))
	assert.Contains(t, actions[1], "勇气 🌟")
}
