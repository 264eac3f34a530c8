package signals

import (
	"html"
	"regexp"
	"strings"
)

var (
	separatorRun = regexp.MustCompile(`[_-]+`)
	nonLetter    = regexp.MustCompile(`[^a-zA-Z\s&]`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// NormalizePhrase 還原 HTML 實體，底線與連字號改為空白，只保留英文字母、空白與 &，轉小寫
func NormalizePhrase(raw string) string {
	cleaned := html.UnescapeString(raw)
	cleaned = separatorRun.ReplaceAllString(cleaned, " ")
	cleaned = nonLetter.ReplaceAllString(cleaned, " ")
	cleaned = spaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(strings.ToLower(cleaned))
}

// UniquePhrases 去除空字串與重複，保留首次出現的順序
func UniquePhrases(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
