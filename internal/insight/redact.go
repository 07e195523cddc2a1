package insight

import "regexp"

// 脱敏规则：任何进入生成上下文的用户自由文本都必须先过这三条。
var (
	// 11位手机号、xxx-xxxx-xxxx分段号码、YYYY-MM-DD日期
	numericPattern = regexp.MustCompile(`\d{11}|\d{3}-\d{4}-\d{4}|\d{4}-\d{2}-\d{2}`)
	emailPattern   = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	// 中文日期表述，如"三月五日"、"十号"
	cnDatePattern = regexp.MustCompile(`[一二三四五六七八九十]\d*[年月日号]`)
)

// Redact 对用户文本做脱敏替换。
func Redact(text string) string {
	text = numericPattern.ReplaceAllString(text, "[日期/电话]")
	text = emailPattern.ReplaceAllString(text, "[邮箱]")
	text = cnDatePattern.ReplaceAllString(text, "[某天]")
	return text
}

// truncateRunes 按字符数截断，避免把多字节字符截成半个。
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
