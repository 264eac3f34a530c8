package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-recommender/internal/pkg/common"
)

func testSeeds() []common.IngredientSeed {
	return []common.IngredientSeed{
		{
			IngredientKey: "soy_sauce", NameZh: "生抽", NameEn: "light soy sauce",
			Aliases: []string{"soy sauce", "生抽", "soy sauce"}, Category: common.CategorySauce,
			TypicalUnits: []common.Unit{common.UnitTablespoon, common.UnitMilliliter},
			Markets:      []common.Market{common.MarketNZ, common.MarketAU},
			Keywords:     []string{"soy sauce"}, Core: true,
		},
		{
			IngredientKey: "bok_choy", NameZh: "上海青", NameEn: "bok choy",
			Aliases: []string{"bok choy", "pak choi"}, Category: common.CategoryVegetable,
			Markets:  []common.Market{common.MarketNZ, common.MarketAU},
			Keywords: []string{"bok choy", "Pak Choi"},
		},
		{
			IngredientKey: "doubanjiang", NameZh: "郫县豆瓣酱", NameEn: "doubanjiang",
			Aliases: []string{"doubanjiang"}, Category: common.CategorySauce,
			Markets:  []common.Market{common.MarketNZ},
			Keywords: []string{"doubanjiang", "broad bean paste"}, Core: true,
		},
		{
			IngredientKey: "lemongrass", NameZh: "香茅", NameEn: "lemongrass",
			Category: common.CategoryAromatics, Keywords: []string{"lemongrass"},
		},
		{
			IngredientKey: "choy_sum", NameZh: "菜心", NameEn: "choy sum",
			Category:        common.CategoryVegetable,
			DefaultChannels: []common.Channel{common.ChannelAsian},
			Keywords:        []string{"choy sum"},
		},
	}
}

func find(items []common.IngredientCatalogItem, key string) (common.IngredientCatalogItem, bool) {
	for _, item := range items {
		if item.IngredientKey == key {
			return item, true
		}
	}
	return common.IngredientCatalogItem{}, false
}

func TestBuildIngredientCatalogSignals(t *testing.T) {
	catalog := BuildIngredientCatalog(testSeeds(), Evidence{
		MainstreamPhrases: []string{"nz beef mince", "soy sauce", "spring onion", "jasmine rice"},
		AsianPhrases:      []string{"asian grocery", "hong kong bbq", "bok choy"},
	})

	soy, ok := find(catalog, "soy_sauce")
	require.True(t, ok)
	assert.Equal(t, []common.Channel{common.ChannelMainstream}, soy.Channels)
	require.Len(t, soy.SupplySignals, 1)
	assert.Equal(t, common.SupplySignal{Source: SourceMainstream, Confidence: 0.43, Evidence: []string{"soy sauce"}}, soy.SupplySignals[0])
	assert.Equal(t, []string{"soy sauce", "生抽"}, soy.Aliases)

	bok, ok := find(catalog, "bok_choy")
	require.True(t, ok)
	assert.Equal(t, []common.Channel{common.ChannelAsian}, bok.Channels)
	require.Len(t, bok.SupplySignals, 1)
	assert.Equal(t, SourceAsian, bok.SupplySignals[0].Source)
	assert.Equal(t, 0.48, bok.SupplySignals[0].Confidence)
}

func TestBuildIngredientCatalogNoMatchingEvidence(t *testing.T) {
	// 亞洲超市短語不含豆瓣醬關鍵字
	catalog := BuildIngredientCatalog(testSeeds(), Evidence{
		AsianPhrases: []string{"asian grocery", "bok choy"},
	})

	doubanjiang, ok := find(catalog, "doubanjiang")
	require.True(t, ok, "core items are always included")
	assert.Empty(t, doubanjiang.SupplySignals)
	assert.NotContains(t, doubanjiang.Channels, common.ChannelAsian)
	assert.Empty(t, doubanjiang.Channels)
}

func TestBuildIngredientCatalogInclusion(t *testing.T) {
	catalog := BuildIngredientCatalog(testSeeds(), Evidence{})

	_, ok := find(catalog, "lemongrass")
	assert.False(t, ok, "non-core seed without evidence or channels is excluded")

	choy, ok := find(catalog, "choy_sum")
	require.True(t, ok)
	assert.Equal(t, []common.Channel{common.ChannelAsian}, choy.Channels)

	withEvidence := BuildIngredientCatalog(testSeeds(), Evidence{MainstreamPhrases: []string{"fresh lemongrass stalks"}})
	_, ok = find(withEvidence, "lemongrass")
	assert.True(t, ok)
}

func TestBuildIngredientCatalogSortedByKey(t *testing.T) {
	catalog := BuildIngredientCatalog(testSeeds(), Evidence{})
	keys := make([]string, 0, len(catalog))
	for _, item := range catalog {
		keys = append(keys, item.IngredientKey)
	}
	assert.Equal(t, []string{"choy_sum", "doubanjiang", "soy_sauce"}, keys)
}

func TestBuildIngredientCatalogChannelsAreAdditive(t *testing.T) {
	catalog := BuildIngredientCatalog(testSeeds(), Evidence{
		MainstreamPhrases: []string{"choy sum bunch"},
		AsianPhrases:      []string{"choy sum"},
	})
	choy, ok := find(catalog, "choy_sum")
	require.True(t, ok)
	assert.Equal(t, []common.Channel{common.ChannelAsian, common.ChannelMainstream}, choy.Channels)
	assert.Len(t, choy.SupplySignals, 2)
}

func TestFindEvidenceCapsAndDedupes(t *testing.T) {
	phrases := []string{"pak choi", "baby pak choi", "pak choi", "bok choy", "shanghai bok choy",
		"bok choy bunch", "bok choy 500g", "organic bok choy", "bok choy large", "bok choy small", "cabbage"}

	matches := findEvidence(phrases, []string{"bok choy", "Pak Choi"})
	assert.Len(t, matches, 8)
	assert.Equal(t, []string{"pak choi", "baby pak choi", "bok choy"}, matches[:3])
}

func TestBuildSignalConfidenceCaps(t *testing.T) {
	evidence := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	signal, ok := buildSignal(SourceAsian, evidence, asianMinConfidence)
	require.True(t, ok)
	assert.Equal(t, 1.0, signal.Confidence)
	assert.Equal(t, []string{"a", "b", "c"}, signal.Evidence)

	signal, _ = buildSignal(SourceMainstream, evidence[:3], mainstreamMinConfidence)
	assert.Equal(t, 0.59, signal.Confidence)

	_, ok = buildSignal(SourceMainstream, nil, mainstreamMinConfidence)
	assert.False(t, ok)
}

func TestByMarket(t *testing.T) {
	catalog := BuildIngredientCatalog(testSeeds(), Evidence{MainstreamPhrases: []string{"bok choy"}})
	au := ByMarket(catalog, common.MarketAU)
	keys := KeySet(au)
	assert.True(t, keys["bok_choy"])
	assert.True(t, keys["soy_sauce"])
	assert.False(t, keys["doubanjiang"])
}
