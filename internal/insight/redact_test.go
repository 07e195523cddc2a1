package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactPhoneNumbers(t *testing.T) {
	assert.Equal(t, "联系我 [日期/电话]", Redact("联系我 13812345678"))
	assert.Equal(t, "电话是[日期/电话]哦", Redact("电话是138-1234-5678哦"))
}

func TestRedactDates(t *testing.T) {
	assert.Equal(t, "会议定在[日期/电话]", Redact("会议定在2026-03-15"))
	assert.Equal(t, "[某天]见面", Redact("五号见面"))
	assert.Equal(t, "[某天][某天]出发", Redact("三月五日出发"))
	assert.Equal(t, "[某天]交房租", Redact("十5号交房租"))
}

func TestRedactEmails(t *testing.T) {
	assert.Equal(t, "发到 [邮箱] 吧", Redact("发到 zhang.wei@example.com 吧"))
}

func TestRedactMixedText(t *testing.T) {
	got := Redact("和朋友约了2026-09-01见面，她的邮箱是a@b.cn，电话13900001111")
	assert.NotContains(t, got, "2026-09-01")
	assert.NotContains(t, got, "a@b.cn")
	assert.NotContains(t, got, "13900001111")
	assert.Contains(t, got, "和朋友约了")
}

func TestRedactLeavesPlainTextAlone(t *testing.T) {
	text := "今天心情不错，去公园散了步"
	assert.Equal(t, text, Redact(text))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "今天心", truncateRunes("今天心情不错", 3))
	assert.Equal(t, "短", truncateRunes("短", 10))
	assert.Equal(t, "", truncateRunes("", 5))
}
