package user

import (
	"fmt"

	"gorm.io/gorm"
)

// mbtiSeed 是16型人格的静态播种数据。
var mbtiSeed = []MBTIType{
	{TypeCode: "INTJ", TypeName: "建筑师", Description: "富有想象力和战略性的思想家，一切皆在计划之中。", Traits: "独立、坚定、雄心勃勃、好奇、洞察力强"},
	{TypeCode: "INTP", TypeName: "思想家", Description: "具有创新精神的发明家，对知识有着止不住的渴望。", Traits: "好奇、灵活、有创造力、客观、逻辑性强"},
	{TypeCode: "ENTJ", TypeName: "指挥官", Description: "大胆，富有想象力，意志强烈的领导者，总能找到或创造解决方法。", Traits: "大胆、意志坚强、意志坚定、自信、魅力"},
	{TypeCode: "ENTP", TypeName: "辩论家", Description: "聪明好奇的思想家，不会放弃任何智力挑战。", Traits: "聪明好奇、思维敏捷、激励他人、精力充沛"},
	{TypeCode: "INFJ", TypeName: "提倡者", Description: "安静而神秘，同时鼓舞人心的理想主义者。", Traits: "创造性、洞察力、原则性、热情、利他"},
	{TypeCode: "INFP", TypeName: "调停者", Description: "富有诗意，善良且利他主义，总是热切地想要帮助正当理由。", Traits: "理想主义、好奇、灵活、忠诚、适应性强"},
	{TypeCode: "ENFJ", TypeName: "主人公", Description: "富有魅力，鼓舞人心的领导者，有着迷人的魅力。", Traits: "魅力、利他、天生的领导者、激情、利他"},
	{TypeCode: "ENFP", TypeName: "竞选者", Description: "热情，有创造力，社交能力强，总是能找到微笑的理由。", Traits: "热情、创造性、社交能力强、自由精神、热情"},
	{TypeCode: "ISTJ", TypeName: "物流师", Description: "实用和注重事实，可靠性无可争议。", Traits: "诚实、直接、意志坚强、尽职、冷静"},
	{TypeCode: "ISFJ", TypeName: "守护者", Description: "非常专注和温暖的守护者，时刻准备着保护爱着的人们。", Traits: "支持、可靠、耐心、想象力、观察力"},
	{TypeCode: "ESTJ", TypeName: "总经理", Description: "出色的管理者，在管理事情或人员方面无与伦比。", Traits: "奉献、坚强、意志坚强、诚实、忠诚"},
	{TypeCode: "ESFJ", TypeName: "执政官", Description: "极有同情心，社会性强，总是热心帮助他人。", Traits: "支持、可靠、耐心、想象力、观察力"},
	{TypeCode: "ISTP", TypeName: "鉴赏家", Description: "大胆而实际的实验家，擅长使用各种工具。", Traits: "大胆、实用、直接、自发、理性"},
	{TypeCode: "ISFP", TypeName: "探险家", Description: "灵活有魅力的艺术家，时刻准备着探索新的可能性。", Traits: "灵活、迷人、敏感、好奇、热情"},
	{TypeCode: "ESTP", TypeName: "企业家", Description: "聪明，精力充沛，善于感知，真正享受生活。", Traits: "大胆、理性、实用、原创、洞察力"},
	{TypeCode: "ESFP", TypeName: "娱乐家", Description: "自发的，精力充沛，热情的表演者。", Traits: "大胆、原创、美学、表演、实用"},
}

// SetupModule 是user模块的初始化总入口：迁移表结构并播种MBTI类型。
func SetupModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &MBTIType{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}

	var count int64
	if err := db.Model(&MBTIType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计MBTI类型: %w", err)
	}
	if count == 0 {
		if err := db.Create(&mbtiSeed).Error; err != nil {
			return fmt.Errorf("播种MBTI类型失败: %w", err)
		}
		fmt.Printf("成功播种 %d 个MBTI类型。\n", len(mbtiSeed))
	}

	fmt.Println("User数据库表迁移成功。")
	return nil
}
