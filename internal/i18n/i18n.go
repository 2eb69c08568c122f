package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 站点语言常量
const (
	LocaleZH = "zh-CN"
	LocaleEN = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleEN

// ResolveLocale 解析请求语言：优先 lang 查询参数，其次 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	if header := strings.TrimSpace(c.GetHeader("Accept-Language")); header != "" {
		first := header
		if idx := strings.IndexAny(header, ",;"); idx >= 0 {
			first = header[:idx]
		}
		return Normalize(first)
	}
	return DefaultLocale
}

// Normalize 将语言标识归一化为受支持的语言
func Normalize(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(l, "zh"):
		return LocaleZH
	case strings.HasPrefix(l, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// T 查找翻译文案；未命中时原样返回 key
func T(locale, key string) string {
	catalog := catalogFor(locale)
	if msg, ok := catalog[key]; ok {
		return msg
	}
	if locale != DefaultLocale {
		if msg, ok := catalogFor(DefaultLocale)[key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 查找带占位符的翻译文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func catalogFor(locale string) map[string]string {
	if Normalize(locale) == LocaleZH {
		return zhCN
	}
	return enUS
}
