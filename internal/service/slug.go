package service

import "strings"

// normalizeSlug 归一化 slug:小写、空白转连字符、去除非法字符。
func normalizeSlug(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(value))
	lastHyphen := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || r == ' ':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
