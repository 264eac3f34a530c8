// Package catalog 將食材種子與市場訊號融合為食材目錄
package catalog

import (
	"math"
	"sort"
	"strings"

	"dinner-recommender/internal/core/units"
	"dinner-recommender/internal/pkg/common"
)

// 訊號來源與其最低信心值
const (
	SourceMainstream = "nz_supermarket_sitemaps"
	SourceAsian      = "nz_asian_supermarket_departments"

	mainstreamMinConfidence = 0.35
	asianMinConfidence      = 0.40
	confidenceStep          = 0.08

	maxMatchedPhrases = 8
	maxStoredEvidence = 3
)

// Evidence 外部收集器輸出的短語清單（已正規化為小寫）
type Evidence struct {
	MainstreamPhrases []string `json:"mainstreamPhrases"`
	AsianPhrases      []string `json:"asianPhrases"`
}

// BuildIngredientCatalog 依種子與訊號建立目錄，輸出依 ingredientKey 排序
func BuildIngredientCatalog(seeds []common.IngredientSeed, evidence Evidence) []common.IngredientCatalogItem {
	catalog := make([]common.IngredientCatalogItem, 0, len(seeds))

	for _, seed := range seeds {
		mainstream := findEvidence(evidence.MainstreamPhrases, seed.Keywords)
		asian := findEvidence(evidence.AsianPhrases, seed.Keywords)

		if !seed.Core && len(mainstream) == 0 && len(asian) == 0 && len(seed.DefaultChannels) == 0 {
			continue
		}

		signals := make([]common.SupplySignal, 0, 2)
		if s, ok := buildSignal(SourceMainstream, mainstream, mainstreamMinConfidence); ok {
			signals = append(signals, s)
		}
		if s, ok := buildSignal(SourceAsian, asian, asianMinConfidence); ok {
			signals = append(signals, s)
		}

		catalog = append(catalog, common.IngredientCatalogItem{
			IngredientKey: seed.IngredientKey,
			NameZh:        seed.NameZh,
			NameEn:        seed.NameEn,
			Aliases:       uniqueStrings(seed.Aliases),
			Category:      seed.Category,
			StorageType:   seed.StorageType,
			TypicalUnits:  append([]common.Unit(nil), seed.TypicalUnits...),
			Channels:      pickChannels(seed.DefaultChannels, len(mainstream) > 0, len(asian) > 0),
			Markets:       append([]common.Market(nil), seed.Markets...),
			SupplySignals: signals,
		})
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].IngredientKey < catalog[j].IngredientKey
	})
	return catalog
}

// findEvidence 找出包含任一關鍵字的短語，去重後最多保留 8 筆
func findEvidence(phrases, keywords []string) []string {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(k); k != "" {
			lowered = append(lowered, k)
		}
	}

	var matches []string
	seen := make(map[string]bool)
	for _, phrase := range phrases {
		if seen[phrase] {
			continue
		}
		for _, k := range lowered {
			if strings.Contains(phrase, k) {
				seen[phrase] = true
				matches = append(matches, phrase)
				break
			}
		}
		if len(matches) == maxMatchedPhrases {
			break
		}
	}
	return matches
}

func buildSignal(source string, evidence []string, minConfidence float64) (common.SupplySignal, bool) {
	if len(evidence) == 0 {
		return common.SupplySignal{}, false
	}
	confidence := math.Min(1, minConfidence+float64(len(evidence))*confidenceStep)

	stored := evidence
	if len(stored) > maxStoredEvidence {
		stored = stored[:maxStoredEvidence]
	}
	return common.SupplySignal{
		Source:     source,
		Confidence: units.Round2(confidence),
		Evidence:   append([]string(nil), stored...),
	}, true
}

// pickChannels 預設通路在前，再依訊號追加
func pickChannels(defaults []common.Channel, mainstream, asian bool) []common.Channel {
	channels := make([]common.Channel, 0, len(defaults)+2)
	seen := make(map[common.Channel]bool)
	add := func(c common.Channel) {
		if !seen[c] {
			seen[c] = true
			channels = append(channels, c)
		}
	}
	for _, c := range defaults {
		add(c)
	}
	if mainstream {
		add(common.ChannelMainstream)
	}
	if asian {
		add(common.ChannelAsian)
	}
	return channels
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ByMarket 篩選在指定市場販售的食材
func ByMarket(catalog []common.IngredientCatalogItem, market common.Market) []common.IngredientCatalogItem {
	out := make([]common.IngredientCatalogItem, 0, len(catalog))
	for _, item := range catalog {
		if item.HasMarket(market) {
			out = append(out, item)
		}
	}
	return out
}

// KeySet 回傳目錄中所有 ingredientKey
func KeySet(catalog []common.IngredientCatalogItem) map[string]bool {
	keys := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		keys[item.IngredientKey] = true
	}
	return keys
}
