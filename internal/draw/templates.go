package draw

import (
	"strings"

	"github.com/echo-insight/echo-insight-backend/internal/insight"
)

// questionTemplates 是按MBTI类型定制的引导提问模板，%s为卡牌标题。
var questionTemplates = map[string][2]string{
	"INTJ": {"关于「%s」，你觉得最需要深入分析的是哪个方面？", "如果把「%s」纳入你的长期规划，会产生什么影响？"},
	"INTP": {"「%s」背后的逻辑让你产生了什么新的想法？", "你能从几个不同角度来解构「%s」这个主题吗？"},
	"ENTJ": {"针对「%s」，你会制定什么样的行动计划？", "「%s」如何帮助你实现更大的目标？"},
	"ENTP": {"「%s」让你想到了哪些有趣的可能性？", "如果用全新的方式看待「%s」，会有什么发现？"},
	"INFJ": {"「%s」与你的价值观有什么深层联系？", "这个主题想要传递给你怎样的意义？"},
	"INFP": {"「%s」唤起了你内心什么样的感受？", "如果用诗或画来表达「%s」，会是什么样子？"},
	"ENFJ": {"「%s」如何帮助你更好地关心身边的人？", "这个主题能为你的人际关系带来什么启发？"},
	"ENFP": {"「%s」激发了你哪些充满热情的想法？", "你想和谁分享关于「%s」的感受？"},
	"ISTJ": {"面对「%s」，你会采取哪些实际步骤？", "过去的经验如何帮助你更好理解「%s」？"},
	"ISFJ": {"「%s」如何影响你关心的人？", "你可以做什么让「%s」在生活中更具体地体现？"},
	"ESTJ": {"关于「%s」，你会设定什么具体目标？", "如何将「%s」转化为可衡量的成果？"},
	"ESFJ": {"「%s」让你想为身边的人做些什么？", "这个主题如何增进你与他人的连接？"},
	"ISTP": {"针对「%s」，有什么是你可以动手尝试的？", "如何用实践来验证「%s」的意义？"},
	"ISFP": {"「%s」给你带来了什么独特的感受？", "你会用什么方式来表达对「%s」的体验？"},
	"ESTP": {"「%s」让你想立即尝试什么？", "如何把「%s」变成一次有趣的体验？"},
	"ESFP": {"「%s」让你想和朋友分享什么？", "如何让「%s」成为今天的亮点？"},
}

// defaultQuestions 返回模板生成的2个引导提问。
// 未知MBTI类型用不依赖人格特质的通用问题。
func defaultQuestions(mbtiType, cardTitle string) []string {
	if tpl, ok := questionTemplates[mbtiType]; ok {
		return []string{
			fill(tpl[0], cardTitle),
			fill(tpl[1], cardTitle),
		}
	}
	return []string{
		"这张卡牌想告诉你什么？此刻最触动你的点是什么？",
		"如果把这张卡当作一个小提醒，你今天愿意观察或尝试什么？",
	}
}

// aActionTemplates 是A类微行动模板（1-3分钟、当下可执行）。
var aActionTemplates = map[string]string{
	"INTJ": "A. 在纸上写下关于「%s」的3个关键词，然后圈出最重要的一个（2分钟）。",
	"INTP": "A. 随手画一个简单的图示，表达「%s」的内在逻辑（2分钟）。",
	"ENTJ": "A. 打开手机备忘录，快速列出与「%s」相关的2-3个可行动项（2分钟）。",
	"ENTP": "A. 在你周围找3样东西，给它们起个与「%s」相关的名字（2分钟）。",
	"INFJ": "A. 闭眼30秒，感受「%s」在你心里的位置，然后写下一句话（2分钟）。",
	"INFP": "A. 用手边任意颜色的笔，在纸上画出「%s」给你的感觉（2分钟）。",
	"ENFJ": "A. 给一个你关心的人发一条简短消息，分享「%s」带给你的感受（2分钟）。",
	"ENFP": "A. 录一段30秒的语音，说说「%s」让你想到了什么（1分钟）。",
	"ISTJ": "A. 在笔记本上列一个与「%s」相关的小清单，写3项就好（2分钟）。",
	"ISFJ": "A. 整理桌面或周围的小物件，把它们按「重要-不重要」排列（3分钟）。",
	"ESTJ": "A. 打开日历，标记一个与「%s」相关的时间点或提醒（2分钟）。",
	"ESFJ": "A. 想想谁可能需要「%s」，给TA发条消息或打个招呼（2分钟）。",
	"ISTP": "A. 找一个小物件（钥匙、笔、杯子），用它摆出一个造型拍照（2分钟）。",
	"ISFP": "A. 用手机拍一张能代表「%s」的照片，任何角度都可以（2分钟）。",
	"ESTP": "A. 立刻做一个与「%s」相关的小动作：伸展、走动、整理（2分钟）。",
	"ESFP": "A. 拍一张自拍或周围环境的照片，配上「%s」的标题（1分钟）。",
}

// bActionTemplates 是B类长期陪伴模板，按是否有历史线索给出两种措辞。
var bActionTemplates = map[string][2]string{
	"INTJ": {
		"B. 未来2周，每周花15分钟梳理一次「%s」的进展和调整方向。你的分析能力会帮你看清路径，慢慢来就好。",
		"B. 未来2周，每周2次、每次10分钟，思考「%s」与你长期目标的联系。一步步来，你会找到答案。",
	},
	"INTP": {
		"B. 未来2周，每周记录3个与「%s」相关的新想法或疑问。好奇心会带你走得更远，不用急。",
		"B. 未来2周，每周花10分钟从不同角度分析「%s」。你的思考是宝贵的，给自己时间。",
	},
	"ENTJ": {
		"B. 未来3周，每周设定一个与「%s」相关的小目标并执行。你的执行力很强，记得也给自己留点空间。",
		"B. 未来2周，每周制定1-2个与「%s」相关的行动步骤。一周一小步就够了，你做得很好。",
	},
	"ENTP": {
		"B. 未来2周，每周尝试一种新的方式来探索「%s」。你的创意值得被实践，慢慢尝试就好。",
		"B. 未来2周，每周记录2-3个关于「%s」的有趣想法。不用都做到，记录本身就很有价值。",
	},
	"INFJ": {
		"B. 未来3周，每周写一段关于「%s」的感受日记。你的内在世界很丰富，慢慢展开就好。",
		"B. 未来2周，每周花15分钟静静思考「%s」对你的意义。给自己这段独处时间，它值得。",
	},
	"INFP": {
		"B. 未来2周，每周用任何方式（画画、写字、音乐）表达一次「%s」的感受。你的表达是独特的，不用完美。",
		"B. 未来2周，每周记录一次「%s」带给你的情绪变化。感受本身就是答案，慢慢来。",
	},
	"ENFJ": {
		"B. 未来2周，每周与一个人分享「%s」的话题或感受。你的关怀会带来连接，别忘了也关心自己。",
		"B. 未来2周，每周想想「%s」如何帮助你关心的人。你的温暖很珍贵，也要照顾好自己。",
	},
	"ENFP": {
		"B. 未来2周，每周尝试一个与「%s」相关的小探索或分享。你的热情会点亮路，享受过程就好。",
		"B. 未来2周，每周记录1-2个「%s」带来的灵感或想法。你的想法很有价值，慢慢来。",
	},
	"ISTJ": {
		"B. 未来3周，每周完成一项与「%s」相关的具体任务。你的稳定性是优势，记得也给自己弹性。",
		"B. 未来2周，每周制定一个与「%s」相关的小计划并尝试。一步步来就很好，你做得很稳。",
	},
	"ISFJ": {
		"B. 未来2周，每周做一件与「%s」相关、能帮助他人的小事。你的细心很珍贵，也要照顾好自己。",
		"B. 未来2周，每周想想「%s」如何让生活更温暖，写下来。你的关怀很温柔，慢慢来。",
	},
	"ESTJ": {
		"B. 未来3周，每周检查一次「%s」的进展并调整。你的目标感很强，记得也给自己休息时间。",
		"B. 未来2周，每周设定一个与「%s」相关的小目标。你的执行力很好，一周一个就够了。",
	},
	"ESFJ": {
		"B. 未来2周，每周通过「%s」与一个人建立或加深连接。你的热情很美好，也要留些时间给自己。",
		"B. 未来2周，每周想想「%s」如何增进关系，做一件小事。你的用心很珍贵，慢慢来。",
	},
	"ISTP": {
		"B. 未来2周，每周动手尝试一次与「%s」相关的小实验或制作。你的动手能力很强，享受过程就好。",
		"B. 未来2周，每周用实践验证一次「%s」的想法。你的实践力很棒，一周一次就够了。",
	},
	"ISFP": {
		"B. 未来2周，每周用任何方式记录一次「%s」的感受（照片、画、文字）。你的感受力很独特，慢慢表达。",
		"B. 未来2周，每周花10分钟体验「%s」带来的感觉。你的感受很真实，给自己这段时间。",
	},
	"ESTP": {
		"B. 未来1周，每隔2天尝试一个与「%s」相关的新行动。你的行动力很强，短期冲刺也很好。",
		"B. 未来1周，每2-3天做一件与「%s」相关的小事。你的效率很高，短期节奏更适合你。",
	},
	"ESFP": {
		"B. 未来1周，每天分享一次与「%s」相关的小瞬间（照片、文字、语音）。你的表达很生动，享受就好。",
		"B. 未来1周，每2天记录一次「%s」带来的快乐时刻。你的活力很珍贵，短期更有趣。",
	},
}

// defaultActions 返回模板生成的A/B两条行动建议。
// B类按是否存在历史线索选择措辞，让老用户感到被陪伴而不是被重复提示。
func defaultActions(mbtiType, cardTitle string, ctx *insight.Context) []string {
	hasHistory := ctx != nil && len(ctx.RecentThreads) > 0

	aAction := "A. 在你周围找3个小物件，把它们排成一个造型，拍张照片（2分钟）。"
	if tpl, ok := aActionTemplates[mbtiType]; ok {
		aAction = fill(tpl, cardTitle)
	}

	var bAction string
	if tpl, ok := bActionTemplates[mbtiType]; ok {
		if hasHistory {
			bAction = fill(tpl[0], cardTitle)
		} else {
			bAction = fill(tpl[1], cardTitle)
		}
	} else if hasHistory {
		bAction = fill("B. 未来2周，每周花10分钟思考「%s」对你的意义。你已经在路上了，慢慢来就好。", cardTitle)
	} else {
		bAction = fill("B. 未来2周，每周花10分钟记录「%s」带给你的感受。给自己这段时间，它值得。", cardTitle)
	}

	return []string{aAction, bAction}
}

// fill 把模板里的全部%s占位替换为卡牌标题。
func fill(template, cardTitle string) string {
	return strings.ReplaceAll(template, "%s", cardTitle)
}
