// Package generator 由食材目錄組合出受限的家常食譜
package generator

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"dinner-recommender/internal/pkg/common"
)

// 預設選項
const (
	DefaultTargetCount    = 120
	DefaultMaxCookMinutes = 35
)

// Options 生成選項，零值使用預設
type Options struct {
	TargetCount    int
	MaxCookMinutes int
}

func (o Options) withDefaults() Options {
	if o.TargetCount <= 0 {
		o.TargetCount = DefaultTargetCount
	}
	if o.MaxCookMinutes <= 0 {
		o.MaxCookMinutes = DefaultMaxCookMinutes
	}
	return o
}

// 不參與組合的主料
var (
	excludedProteins   = map[string]bool{"egg": true}
	excludedVegetables = map[string]bool{"potato": true}
)

// Generate 依模板組合食譜，去重、過濾烹調時間後截斷到 TargetCount
func Generate(catalog []common.IngredientCatalogItem, opts Options) []common.Recipe {
	opts = opts.withDefaults()
	p := groupByCategory(catalog)
	limit := opts.TargetCount * 2

	var candidates []common.Recipe
	skipped := 0

pairs:
	for _, protein := range p.proteins {
		if excludedProteins[protein.IngredientKey] {
			continue
		}
		for _, vegetable := range p.vegetables {
			if excludedVegetables[vegetable.IngredientKey] {
				continue
			}
			pr := pair{protein: protein, vegetable: vegetable}
			for _, tpl := range pairTemplates {
				recipe, ok := build(tpl, p, pr,
					pr.protein.NameZh+pr.vegetable.NameZh+tpl.titleSuffix,
					tpl.kind+":"+protein.IngredientKey+":"+vegetable.IngredientKey)
				if !ok {
					skipped++
					continue
				}
				candidates = append(candidates, recipe)
			}
			if len(candidates) >= limit {
				break pairs
			}
		}
	}

	if recipe, ok := build(tofuTemplate, p, pair{}, tofuTitle, tofuSeed); ok {
		candidates = append(candidates, recipe)
	}

	deduped := dedupe(candidates)
	out := make([]common.Recipe, 0, opts.TargetCount)
	for _, recipe := range deduped {
		if recipe.CookMinutes > opts.MaxCookMinutes {
			continue
		}
		out = append(out, recipe)
		if len(out) == opts.TargetCount {
			break
		}
	}

	common.LogDebug("食譜組合完成",
		zap.Int("candidates", len(candidates)),
		zap.Int("deduped", len(deduped)),
		zap.Int("skipped", skipped),
		zap.Int("returned", len(out)),
	)
	return out
}

// build 填入模板；必要位置挑不到食材時回傳 false
func build(tpl template, p pools, pr pair, title, seed string) (common.Recipe, bool) {
	ingredients := make([]common.RecipeIngredient, 0, len(tpl.slots))
	names := make(map[string]string, len(tpl.slots))

	for _, s := range tpl.slots {
		item, ok := s.pick(p, pr)
		if !ok {
			if s.optional {
				continue
			}
			return common.Recipe{}, false
		}
		names[s.role] = item.NameZh
		ingredients = append(ingredients, ingredientFromCatalog(item, s.units, s.optional))
	}

	return common.Recipe{
		ID:            common.StableID("g_", seed),
		Title:         title,
		Cuisine:       cuisine,
		Servings:      tpl.servings,
		CookMinutes:   tpl.cookMinutes,
		Ingredients:   ingredients,
		Steps:         tpl.steps(names),
		Tags:          buildTags(ingredients, tpl.cookMinutes),
		Substitutions: buildSubstitutions(ingredients),
	}, true
}

func ingredientFromCatalog(item common.IngredientCatalogItem, preferred []common.Unit, optional bool) common.RecipeIngredient {
	unit := chooseUnit(item.TypicalUnits, preferred)
	return common.RecipeIngredient{
		IngredientKey: item.IngredientKey,
		NameZh:        item.NameZh,
		NameEn:        item.NameEn,
		Quantity:      quantityFor(item, unit),
		Unit:          unit,
		Optional:      optional,
	}
}

// chooseUnit 取第一個可用的偏好單位，否則取食材的第一個常用單位
func chooseUnit(candidates, preferred []common.Unit) common.Unit {
	for _, u := range preferred {
		for _, c := range candidates {
			if c == u {
				return u
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return common.UnitGram
}

func quantityFor(item common.IngredientCatalogItem, unit common.Unit) float64 {
	switch item.Category {
	case common.CategoryProtein:
		switch unit {
		case common.UnitGram:
			return 260
		case common.UnitPiece:
			if item.IngredientKey == "egg" {
				return 2
			}
		}
		return 1
	case common.CategoryVegetable:
		if unit == common.UnitGram {
			return 200
		}
		return 1
	case common.CategoryAromatics:
		switch unit {
		case common.UnitGram:
			return 10
		case common.UnitPiece:
			return 2
		}
		return 1
	case common.CategorySauce:
		if unit == common.UnitMilliliter {
			return 15
		}
		return 1
	}

	if unit != common.UnitGram {
		return 1
	}
	switch item.IngredientKey {
	case "rice":
		return 250
	case "noodles":
		return 120
	}
	return 100
}

func buildTags(ingredients []common.RecipeIngredient, cookMinutes int) []string {
	var tags []string
	if cookMinutes <= 20 {
		tags = append(tags, "quick")
	}

	spicy, tofu, meat := false, false, false
	for _, ing := range ingredients {
		switch ing.IngredientKey {
		case "chili", "doubanjiang":
			spicy = true
		case "tofu_firm":
			tofu = true
		}
		if strings.Contains(ing.IngredientKey, "beef") || strings.Contains(ing.IngredientKey, "pork") {
			meat = true
		}
	}
	if spicy {
		tags = append(tags, "spicy")
	}
	if tofu && !meat {
		tags = append(tags, "veggie")
	}
	return append(tags, "nz-au")
}

func buildSubstitutions(ingredients []common.RecipeIngredient) []common.Substitution {
	subs := []common.Substitution{}
	for _, ing := range ingredients {
		alternatives, ok := substitutionRules[ing.IngredientKey]
		if !ok {
			continue
		}
		subs = append(subs, common.Substitution{
			IngredientKey: ing.IngredientKey,
			Markets:       append([]common.Market(nil), substitutionMarkets...),
			Alternatives:  append([]common.Alternative(nil), alternatives...),
		})
	}
	return subs
}

// Fingerprint 標題與排序後的必要食材 key
func Fingerprint(recipe common.Recipe) string {
	keys := recipe.RequiredKeys()
	sort.Strings(keys)
	return recipe.Title + "|" + strings.Join(keys, ",")
}

// dedupe 依 Fingerprint 去重，保留第一筆
func dedupe(recipes []common.Recipe) []common.Recipe {
	seen := make(map[string]bool, len(recipes))
	out := make([]common.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		fp := Fingerprint(recipe)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, recipe)
	}
	return out
}
