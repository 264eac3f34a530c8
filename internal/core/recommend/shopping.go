package recommend

import (
	"sort"

	"dinner-recommender/internal/core/units"
	"dinner-recommender/internal/pkg/common"
)

// BuildShoppingList 彙整多道食譜的缺料。同食材同單位時加總；單位不同時以後者取代
func (e *Engine) BuildShoppingList(recipeIDs []string, pantry []common.PantryItem, market common.Market) []common.ShoppingListItem {
	cfg, ok := ConfigFor(market)
	if !ok {
		cfg = MarketConfig{Market: market}
	}

	order := []string{}
	items := make(map[string]*common.ShoppingListItem)

	for _, id := range recipeIDs {
		recipe, ok := e.Recipe(id)
		if !ok {
			continue
		}
		for _, m := range e.ComputeMissingIngredients(recipe, pantry) {
			existing, found := items[m.IngredientKey]
			if found && existing.Unit == m.Unit {
				existing.NeededQty += m.NeededQuantity
				existing.SourceRecipeIDs = appendUnique(existing.SourceRecipeIDs, id)
				continue
			}
			if !found {
				order = append(order, m.IngredientKey)
			}
			items[m.IngredientKey] = &common.ShoppingListItem{
				IngredientKey:   m.IngredientKey,
				DisplayName:     m.NameZh,
				NeededQty:       m.NeededQuantity,
				Unit:            m.Unit,
				SourceRecipeIDs: []string{id},
			}
		}
	}

	list := make([]common.ShoppingListItem, 0, len(order))
	for _, key := range order {
		item := *items[key]
		item.NeededQty = units.Round2(item.NeededQty)
		item.StoreType = cfg.StoreType(key)
		item.SuggestedPackage = cfg.SuggestedPackage(key)
		list = append(list, item)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DisplayName < list[j].DisplayName
	})
	return list
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
