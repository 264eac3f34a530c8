package catalog

import "dinner-recommender/internal/pkg/common"

// FromSeeds 未經訊號處理的備用目錄
func FromSeeds(seeds []common.IngredientSeed) []common.IngredientCatalogItem {
	out := make([]common.IngredientCatalogItem, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, common.IngredientCatalogItem{
			IngredientKey: seed.IngredientKey,
			NameZh:        seed.NameZh,
			NameEn:        seed.NameEn,
			Aliases:       seed.Aliases,
			Category:      seed.Category,
			StorageType:   seed.StorageType,
			TypicalUnits:  seed.TypicalUnits,
			Channels:      seed.DefaultChannels,
			Markets:       seed.Markets,
			SupplySignals: []common.SupplySignal{},
		})
	}
	return out
}

// Merge 以 override 覆蓋 base 中相同 key 的項目；覆蓋的項目保留原位置，新項目附加在後
func Merge(base, override []common.IngredientCatalogItem) []common.IngredientCatalogItem {
	position := make(map[string]int, len(base)+len(override))
	merged := make([]common.IngredientCatalogItem, 0, len(base)+len(override))

	put := func(item common.IngredientCatalogItem) {
		if i, ok := position[item.IngredientKey]; ok {
			merged[i] = item
			return
		}
		position[item.IngredientKey] = len(merged)
		merged = append(merged, item)
	}
	for _, item := range base {
		put(item)
	}
	for _, item := range override {
		put(item)
	}
	return merged
}
