package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedOutput = `**卡牌主题与象征**
- 勇气 🌟 突破 · 内在力量
- 象征着迈出第一步的力量。

**轻度解读**
也许你正站在某个门槛前，犹豫要不要跨出去。

**引导提问**
- 最近有什么事让你想要鼓起勇气去做？
- 如果失败不存在，你会先做哪一件事？

**行动建议**
A. 在纸上写下一件你想做的小事，圈出今天能做的部分（2分钟）。
B. 未来2周，每周为这件事迈出一小步，记录你的感受。`

func TestParseWellFormedOutput(t *testing.T) {
	questions, actions := parseGenerated(wellFormedOutput)

	require.Len(t, questions, 2)
	assert.Equal(t, "最近有什么事让你想要鼓起勇气去做？", questions[0])
	assert.Equal(t, "如果失败不存在，你会先做哪一件事？", questions[1])

	require.Len(t, actions, 2)
	assert.Equal(t, "A. 在纸上写下一件你想做的小事，圈出今天能做的部分（2分钟）。", actions[0])
	assert.Equal(t, "B. 未来2周，每周为这件事迈出一小步，记录你的感受。", actions[1])
}

func TestParseUnlabeledActionsGetPositionalLabels(t *testing.T) {
	text := `**引导提问**
- 问题一？
- 问题二？

**行动建议**
- 第一条建议。
- 第二条建议。`

	questions, actions := parseGenerated(text)
	require.Len(t, questions, 2)
	require.Len(t, actions, 2)
	assert.Equal(t, "A. 第一条建议。", actions[0])
	assert.Equal(t, "B. 第二条建议。", actions[1])
}

func TestParseDiscardsPlaceholderLeakage(t *testing.T) {
	text := `**引导提问**
- 基于卡牌与关键词，提出一个问题
- 真正的问题在这里？
- 在你的INFP MBTI视角下思考
- 第二个真问题？

**行动建议**
A. 做一件与卡牌相关的小事
A. 在桌上摆三支笔，排成你喜欢的形状（2分钟）。
B. 未来1周每天写一句话日记。`

	questions, actions := parseGenerated(text)
	require.Len(t, questions, 2)
	assert.Equal(t, "真正的问题在这里？", questions[0])
	assert.Equal(t, "第二个真问题？", questions[1])

	require.Len(t, actions, 2)
	assert.Equal(t, "A. 在桌上摆三支笔，排成你喜欢的形状（2分钟）。", actions[0])
	assert.Equal(t, "B. 未来1周每天写一句话日记。", actions[1])
}

func TestParseStopsCollectingAfterTwo(t *testing.T) {
	text := `**引导提问**
- 一？
- 二？
- 三？

**行动建议**
A. 甲。
B. 乙。
A. 丙。`

	questions, actions := parseGenerated(text)
	assert.Len(t, questions, 2)
	assert.Len(t, actions, 2)
}

func TestParseEmptyAndGarbage(t *testing.T) {
	questions, actions := parseGenerated("")
	assert.Empty(t, questions)
	assert.Empty(t, actions)

	questions, actions = parseGenerated("这只是一段没有任何结构的闲聊文本。")
	assert.Empty(t, questions)
	assert.Empty(t, actions)
}

func TestEnsureABFormatPadsMissingActions(t *testing.T) {
	actions := ensureABFormat(nil, "UNKNOWN", "勇气 🌟")
	require.Len(t, actions, 2)
	assert.Contains(t, actions[0], "A. ")
	assert.Contains(t, actions[0], "勇气 🌟")
	assert.Contains(t, actions[1], "B. ")

	one := ensureABFormat([]string{"A. 只有一条。"}, "UNKNOWN", "平静")
	require.Len(t, one, 2)
	assert.Equal(t, "A. 只有一条。", one[0])
	assert.Contains(t, one[1], "B. ")
}

func TestEnsureABFormatPadsByMBTIType(t *testing.T) {
	actions := ensureABFormat(nil, "INFP", "勇气 🌟")
	require.Len(t, actions, 2)
	assert.Contains(t, actions[0], "彩笔")
	assert.Contains(t, actions[0], "勇气 🌟")
	assert.Contains(t, actions[1], "让我想起了")

	// 未收录的人格类型退回通用兜底
	generic := ensureABFormat(nil, "XXXX", "平静")
	assert.Contains(t, generic[0], "3个小物件")
	assert.Contains(t, generic[1], "此刻给你的感受")
}

func TestStripABLabel(t *testing.T) {
	assert.Equal(t, "做点什么。", stripABLabel("A. 做点什么。"))
	assert.Equal(t, "做点什么。", stripABLabel("B. 做点什么。"))
	assert.Equal(t, "没有标签。", stripABLabel("没有标签。"))
}
