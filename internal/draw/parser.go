package draw

import (
	"regexp"
	"strings"
)

// 模型偶尔会把prompt里的占位描述原样吐回来，这类行直接丢弃。
var (
	questionLeakPattern = regexp.MustCompile(`基于.*关键词|在你的.*MBTI|MBTI.*视角|基于.*与关键词|做一个.*分钟`)
	actionLeakPattern   = regexp.MustCompile(`基于.*关键词|在你的.*MBTI|做一个.*分钟.*最小行动|做一件.*相关的小事`)
	abLinePattern       = regexp.MustCompile(`^([AB])\.\s*(.+)`)
)

// parseGenerated 从模型的自由文本中提取引导提问与行动建议。
// 按行扫描：小节标题（引导提问/行动建议）切换状态，"-"开头的行是问题，
// "A."/"B."开头的行是行动；没有标签的行动按出现顺序补A/B标签。
// 每类收满2条即停止收集。
func parseGenerated(text string) (questions, actions []string) {
	inQuestions := false
	inActions := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line == "" {
			continue
		}

		if strings.Contains(line, "引导提问") {
			inQuestions = true
			inActions = false
			continue
		}
		if strings.Contains(line, "行动建议") {
			inQuestions = false
			inActions = true
			continue
		}
		// 其他小节标题结束当前区块
		if strings.Contains(line, "**") &&
			(strings.Contains(line, "解读") || strings.Contains(line, "主题") || strings.Contains(line, "卡牌")) {
			inQuestions = false
			inActions = false
			continue
		}

		if inQuestions && strings.HasPrefix(line, "-") {
			clean := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if clean != "" && !questionLeakPattern.MatchString(clean) {
				questions = append(questions, clean)
				if len(questions) >= 2 {
					inQuestions = false
				}
			}
			continue
		}

		if inActions {
			if m := abLinePattern.FindStringSubmatch(line); m != nil {
				content := strings.TrimSpace(m[2])
				if content != "" && !actionLeakPattern.MatchString(content) {
					actions = append(actions, m[1]+". "+content)
					if len(actions) >= 2 {
						inActions = false
					}
				}
			} else if strings.HasPrefix(line, "-") {
				clean := strings.TrimSpace(strings.TrimPrefix(line, "-"))
				if clean != "" && !actionLeakPattern.MatchString(clean) && len(actions) < 2 {
					label := "A"
					if len(actions) == 1 {
						label = "B"
					}
					actions = append(actions, label+". "+clean)
					if len(actions) >= 2 {
						inActions = false
					}
				}
			}
		}
	}
	return questions, actions
}

// 按人格类型兜底的A/B行动建议，模型输出缺位时使用。
var (
	aFallbackActions = map[string]string{
		"INTJ": "写下关于「%s」的3个具体想法，选择最可行的一个（3分钟）。",
		"INFP": "用彩笔在纸上画出「%s」的颜色感受（3分钟）。",
		"ENFP": "给朋友发一条关于「%s」的语音消息（2分钟）。",
		"ISTJ": "在笔记本上列出与「%s」相关的3个具体计划（3分钟）。",
		"ESFJ": "给家人/朋友做一件体现「%s」的小事（3分钟）。",
	}
	bFallbackActions = map[string]string{
		"INTJ": "用三个词总结「%s」对你长期目标的影响。",
		"INFP": "完成这句话：\"%s让我想起了______，因为______\"。",
		"ENFP": "想象如果「%s」是一个人，TA会对你说什么？",
		"ISTJ": "回忆过去成功体现「%s」的3个具体时刻。",
		"ESFJ": "思考「%s」如何帮助身边重要的人，写下一句话。",
	}
)

// defaultABAction 返回某个标签位的兜底行动建议，优先匹配人格类型。
func defaultABAction(label, mbtiType, cardTitle string) string {
	var table map[string]string
	if label == "A" {
		table = aFallbackActions
	} else {
		table = bFallbackActions
	}
	if tmpl, ok := table[mbtiType]; ok {
		return fill(tmpl, cardTitle)
	}
	if label == "A" {
		return "在桌面摆放3个小物件代表「" + cardTitle + "」，拍照记录（2分钟）。"
	}
	return "用一句话描述「" + cardTitle + "」此刻给你的感受。"
}

// ensureABFormat 保证恰好两条行动建议，缺位按人格类型补齐。
func ensureABFormat(actions []string, mbtiType, cardTitle string) []string {
	result := make([]string, 0, 2)
	for i, label := range []string{"A", "B"} {
		if i < len(actions) {
			content := strings.TrimSpace(abLinePattern.ReplaceAllString(actions[i], "$2"))
			result = append(result, label+". "+content)
		} else {
			result = append(result, label+". "+defaultABAction(label, mbtiType, cardTitle))
		}
	}
	return result
}

// stripABLabel 移除行动建议开头的"A. "/"B. "标签。
func stripABLabel(action string) string {
	if m := abLinePattern.FindStringSubmatch(action); m != nil {
		return strings.TrimSpace(m[2])
	}
	return action
}
