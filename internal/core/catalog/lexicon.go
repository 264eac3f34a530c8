package catalog

import (
	"regexp"
	"strings"

	"dinner-recommender/internal/pkg/common"
)

// LexiconEntry 食材名稱對照
type LexiconEntry struct {
	Key     string   `json:"key"`
	NameZh  string   `json:"nameZh"`
	NameEn  string   `json:"nameEn"`
	Aliases []string `json:"aliases"`
}

// Lexicon 以 key 與別名查詢食材，建立後唯讀
type Lexicon struct {
	index map[string]LexiconEntry
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NewLexicon 從目錄建立名稱索引，後出現的別名覆蓋先前的
func NewLexicon(catalog []common.IngredientCatalogItem) *Lexicon {
	index := make(map[string]LexiconEntry, len(catalog)*3)
	for _, item := range catalog {
		entry := LexiconEntry{
			Key:     item.IngredientKey,
			NameZh:  item.NameZh,
			NameEn:  item.NameEn,
			Aliases: item.Aliases,
		}
		index[item.IngredientKey] = entry
		for _, alias := range item.Aliases {
			index[strings.ToLower(strings.TrimSpace(alias))] = entry
		}
	}
	return &Lexicon{index: index}
}

// Normalize 將使用者輸入的名稱對應到食材；查無時以空白轉底線作為 key
func (l *Lexicon) Normalize(rawName string) LexiconEntry {
	trimmed := strings.TrimSpace(rawName)
	key := strings.ToLower(trimmed)
	if entry, ok := l.index[key]; ok {
		return entry
	}
	return LexiconEntry{
		Key:     whitespaceRun.ReplaceAllString(key, "_"),
		NameZh:  trimmed,
		NameEn:  trimmed,
		Aliases: []string{trimmed},
	}
}

// DisplayName 回傳中英文名稱，查無時皆為 key
func (l *Lexicon) DisplayName(key string) (nameZh, nameEn string) {
	if entry, ok := l.index[key]; ok {
		return entry.NameZh, entry.NameEn
	}
	return key, key
}
