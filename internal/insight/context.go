package insight

// UserProfile 是上下文中的用户画像摘要。
type UserProfile struct {
	MBTI       string `json:"mbti"`
	StreakDays int    `json:"streak_days"`
}

// RecentMood 汇总最近的心情分布与趋势。
// Trend 取值：neutral / stable / slightly_up / slightly_down。
type RecentMood struct {
	Days  int      `json:"days"`
	Trend string   `json:"trend"`
	Top   []string `json:"top"`
}

// Thread 是一条主题线索：用户近期在某个卡牌类别上的活动痕迹。
// Evidence 为脱敏后的回答片段，没有回答时为"无回答"。
type Thread struct {
	Topic      string `json:"topic"`
	LastAction string `json:"last_action"`
	Evidence   string `json:"evidence"`
	LastSeen   string `json:"last_seen"`
}

// Context 是交给生成器的个性化上下文。
// 其中凡是来源于用户自由文本的内容都已脱敏。
type Context struct {
	UserProfile   UserProfile `json:"user_profile"`
	RecentMood    RecentMood  `json:"recent_mood"`
	RecentThreads []Thread    `json:"recent_threads"`
	UserPhrases   []string    `json:"user_phrases"`
	TimeOfDay     string      `json:"time_of_day"`
	Weekday       bool        `json:"weekday"`
}

// defaultContext 返回无历史数据时的最小上下文。
func defaultContext() *Context {
	return &Context{
		UserProfile:   UserProfile{MBTI: "UNKNOWN", StreakDays: 0},
		RecentMood:    RecentMood{Days: 7, Trend: "neutral", Top: []string{}},
		RecentThreads: []Thread{},
		UserPhrases:   []string{},
		TimeOfDay:     "day",
		Weekday:       true,
	}
}
