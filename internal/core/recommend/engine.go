// Package recommend 依食材庫存與使用者設定為食譜評分並分組
package recommend

import (
	"math"
	"sort"
	"time"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/core/units"
	"dinner-recommender/internal/pkg/common"
)

// 分數權重
const (
	weightCoverage   = 0.40
	weightExpiry     = 0.25
	weightTime       = 0.20
	weightPreference = 0.15

	maxMissing       = 2
	expiryWindowDays = 3
	minRequiredQty   = 0.0001
	scorePrecision   = 3
)

// Engine 食譜推薦引擎，建立後唯讀，可供多個 goroutine 同時使用
type Engine struct {
	recipes []common.Recipe
	byID    map[string]int
	lexicon *catalog.Lexicon
}

// NewEngine 以食譜集合與名稱索引建立引擎；重複 id 只保留第一筆
func NewEngine(recipes []common.Recipe, lexicon *catalog.Lexicon) *Engine {
	if lexicon == nil {
		lexicon = catalog.NewLexicon(nil)
	}
	e := &Engine{
		recipes: make([]common.Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
		lexicon: lexicon,
	}
	for _, r := range recipes {
		if _, exists := e.byID[r.ID]; exists {
			continue
		}
		e.byID[r.ID] = len(e.recipes)
		e.recipes = append(e.recipes, r)
	}
	return e
}

// Recipe 依 id 取得食譜
func (e *Engine) Recipe(id string) (common.Recipe, bool) {
	i, ok := e.byID[id]
	if !ok {
		return common.Recipe{}, false
	}
	return e.recipes[i], true
}

// Len 食譜數量
func (e *Engine) Len() int {
	return len(e.recipes)
}

// Recommend 為每道食譜評分後依總分排序並分組。now 的時區即使用者所在時區
func (e *Engine) Recommend(pantry []common.PantryItem, profile common.UserProfile, now time.Time) common.RecommendationOutput {
	idx := indexPantry(pantry)

	results := make([]common.RecipeMatchResult, 0, len(e.recipes))
	for _, recipe := range e.recipes {
		if result, ok := e.evaluate(recipe, idx, profile, now); ok {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	out := common.RecommendationOutput{
		Full:        []common.RecipeMatchResult{},
		Partial:     []common.RecipeMatchResult{},
		ExpiryFirst: []common.RecipeMatchResult{},
	}
	for _, r := range results {
		switch r.MatchType {
		case common.MatchFull:
			out.Full = append(out.Full, r)
		case common.MatchPartial:
			out.Partial = append(out.Partial, r)
		default:
			out.ExpiryFirst = append(out.ExpiryFirst, r)
		}
	}
	return out
}

func (e *Engine) evaluate(recipe common.Recipe, idx pantryIndex, profile common.UserProfile, now time.Time) (common.RecipeMatchResult, bool) {
	required := recipe.RequiredIngredients()
	if len(required) == 0 {
		return common.RecipeMatchResult{}, false
	}

	missing := []common.MissingIngredient{}
	coverageSum := 0.0
	expiring := 0

	for _, ing := range required {
		available := idx.quantity(ing.IngredientKey, ing.Unit)
		coverageSum += units.Clamp01(available / math.Max(ing.Quantity, minRequiredQty))

		if available < ing.Quantity {
			missing = append(missing, e.missingEntry(ing, ing.Quantity, available))
		}
		if available > 0 && idx.expiringSoon(ing.IngredientKey, now) {
			expiring++
		}
	}

	if len(missing) > maxMissing || recipe.CookMinutes > profile.MaxCookMinutes {
		return common.RecipeMatchResult{}, false
	}

	n := float64(len(required))
	coverage := coverageSum / n
	expiry := float64(expiring) / n
	total := coverage*weightCoverage +
		expiry*weightExpiry +
		timeScore(recipe.CookMinutes, profile.MaxCookMinutes)*weightTime +
		preferenceScore(recipe.Tags, profile.DietPrefs)*weightPreference

	matchType := common.MatchPartial
	switch {
	case expiry > 0:
		matchType = common.MatchExpiryFirst
	case len(missing) == 0:
		matchType = common.MatchFull
	}

	return common.RecipeMatchResult{
		RecipeID:           recipe.ID,
		MatchType:          matchType,
		CoverageScore:      units.SafeRound(coverage, scorePrecision),
		MissingIngredients: missing,
		SubstitutionPlan:   substitutionPlan(recipe, missing, profile.PrimaryMarket),
		TotalScore:         units.SafeRound(total, scorePrecision),
	}, true
}

// ComputeMissingIngredients 計算食譜還缺多少；neededQuantity 為差額
func (e *Engine) ComputeMissingIngredients(recipe common.Recipe, pantry []common.PantryItem) []common.MissingIngredient {
	idx := indexPantry(pantry)
	missing := []common.MissingIngredient{}
	for _, ing := range recipe.RequiredIngredients() {
		available := idx.quantity(ing.IngredientKey, ing.Unit)
		if available < ing.Quantity {
			missing = append(missing, e.missingEntry(ing, ing.Quantity-available, available))
		}
	}
	return missing
}

func (e *Engine) missingEntry(ing common.RecipeIngredient, needed, available float64) common.MissingIngredient {
	nameZh, nameEn := e.lexicon.DisplayName(ing.IngredientKey)
	return common.MissingIngredient{
		IngredientKey:     ing.IngredientKey,
		NameZh:            nameZh,
		NameEn:            nameEn,
		NeededQuantity:    units.Round2(needed),
		Unit:              ing.Unit,
		AvailableQuantity: units.Round2(available),
	}
}

// timeScore 超出上限時線性遞減；目前超時的食譜已先被排除
func timeScore(cookMinutes, maxCookMinutes int) float64 {
	if cookMinutes <= maxCookMinutes {
		return 1
	}
	over := float64(cookMinutes - maxCookMinutes)
	return math.Max(0, 1-over/math.Max(float64(maxCookMinutes), 1))
}

func preferenceScore(tags, prefs []string) float64 {
	if len(prefs) == 0 {
		return 1
	}
	matched := 0
	for _, tag := range tags {
		for _, p := range prefs {
			if tag == p {
				matched++
				break
			}
		}
	}
	return math.Min(1, float64(matched)/float64(len(prefs)))
}

func substitutionPlan(recipe common.Recipe, missing []common.MissingIngredient, market common.Market) []common.SubstitutionPlan {
	missingKeys := make(map[string]bool, len(missing))
	for _, m := range missing {
		missingKeys[m.IngredientKey] = true
	}

	plan := []common.SubstitutionPlan{}
	for _, sub := range recipe.Substitutions {
		if !missingKeys[sub.IngredientKey] || !sub.AppliesTo(market) {
			continue
		}
		plan = append(plan, common.SubstitutionPlan{
			ForIngredientKey: sub.IngredientKey,
			Alternatives:     sub.Alternatives,
		})
	}
	return plan
}
