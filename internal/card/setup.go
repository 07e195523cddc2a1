package card

import (
	"fmt"

	"gorm.io/gorm"
)

// fixedPack 是内置的固定卡牌包，覆盖全部可抽取类别。
var fixedPack = []Card{
	{Title: "孤独 🌙", Content: "孤独是你与自己深度对话的契机。", Category: "情绪类", CardType: "情绪类", MoodTags: "独处,内省,低落"},
	{Title: "焦虑 🌊", Content: "焦虑提醒你关注内心的焦点和未解决问题。", Category: "情绪类", CardType: "情绪类", MoodTags: "紧张,焦虑,压力"},
	{Title: "平静 🌿", Content: "当下的安全与舒适，是修复的时刻。", Category: "情绪类", CardType: "情绪类", MoodTags: "安稳,平静,休息"},
	{Title: "低谷 🌧️", Content: "情绪的低谷也在提醒你放慢脚步，照顾自己。", Category: "情绪类", CardType: "情绪类", MoodTags: "低落,疲惫,无聊"},
	{Title: "创造力 🎨", Content: "以你独特的方式与世界互动，激活新的可能。", Category: "成长类", CardType: "成长类", MoodTags: "想象,兴奋,新奇"},
	{Title: "好奇 🔍", Content: "对世界保持提问，答案会在路上出现。", Category: "成长类", CardType: "成长类", MoodTags: "探索,思考,兴奋"},
	{Title: "坚持 ⛰️", Content: "日复一日的小步累积，终会翻越高山。", Category: "成长类", CardType: "成长类", MoodTags: "有动力,专注,积累"},
	{Title: "倾听 👂", Content: "真正的倾听是把注意力完整地交给对方。", Category: "关系类", CardType: "关系类", MoodTags: "连接,理解,平静"},
	{Title: "边界 🚧", Content: "清晰的边界让关系更长久，也让你更自由。", Category: "关系类", CardType: "关系类", MoodTags: "压力,自我,尊重"},
	{Title: "勇气 🌟", Content: "迈出第一步，即便很小，也能唤醒力量。", Category: "自我力量类", CardType: "自我力量类", MoodTags: "突破,有动力,内在力量"},
	{Title: "信任自己 🧭", Content: "你比想象中更有能力为自己做出好的决定。", Category: "自我力量类", CardType: "自我力量类", MoodTags: "自信,思考,笃定"},
}

// SetupModule 迁移cards表并在空库时导入固定卡牌包。
func SetupModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&Card{}); err != nil {
		return fmt.Errorf("无法迁移card表: %w", err)
	}

	var count int64
	if err := db.Model(&Card{}).Where("category IN ?", drawableCategories).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计卡牌数量: %w", err)
	}
	if count == 0 {
		pack := make([]Card, len(fixedPack))
		copy(pack, fixedPack)
		if err := db.Create(&pack).Error; err != nil {
			return fmt.Errorf("导入固定卡牌包失败: %w", err)
		}
		fmt.Printf("成功导入固定卡牌包，共 %d 张卡牌。\n", len(pack))
	}

	fmt.Println("Card数据库表迁移成功。")
	return nil
}
