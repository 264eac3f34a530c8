// Package quality 過濾生成食譜中無效或過於相似的項目
package quality

import (
	"strings"
	"unicode/utf8"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/pkg/common"
)

// 拒絕原因代碼，依檢查順序排列
const (
	ReasonTitleTooShort           = "title_too_short"
	ReasonCookMinutesOutOfRange   = "cook_minutes_out_of_range"
	ReasonStepCountOutOfRange     = "step_count_out_of_range"
	ReasonRequiredCountOutOfRange = "required_ingredient_count_out_of_range"
	ReasonDuplicatedKeys          = "duplicated_ingredient_keys"
	ReasonUnknownKeys             = "unknown_ingredient_keys"
	ReasonTooSimilar              = "too_similar_to_existing"
)

// 檢查門檻
const (
	minTitleRunes       = 3
	minCookMinutes      = 8
	maxCookMinutes      = 45
	minSteps            = 3
	maxSteps            = 6
	minRequired         = 3
	maxRequired         = 8
	similarityThreshold = 0.86
)

// Result 每筆輸入恰好出現在其中一個清單
type Result struct {
	Accepted []common.Recipe         `json:"accepted"`
	Rejected []common.RejectedRecipe `json:"rejected"`
}

// Run 依序檢查食譜；相似度只與已接受的食譜比較，結果與輸入順序有關
func Run(recipes []common.Recipe, ingredientCatalog []common.IngredientCatalogItem) Result {
	known := catalog.KeySet(ingredientCatalog)
	result := Result{
		Accepted: make([]common.Recipe, 0, len(recipes)),
		Rejected: []common.RejectedRecipe{},
	}
	var acceptedKeys []map[string]bool

	for _, recipe := range recipes {
		reasons := Validate(recipe, known)

		required := toSet(recipe.RequiredKeys())
		for _, existing := range acceptedKeys {
			if Jaccard(required, existing) >= similarityThreshold {
				reasons = append(reasons, ReasonTooSimilar)
				break
			}
		}

		if len(reasons) > 0 {
			result.Rejected = append(result.Rejected, common.RejectedRecipe{
				RecipeID: recipe.ID,
				Title:    recipe.Title,
				Reasons:  reasons,
			})
			continue
		}
		result.Accepted = append(result.Accepted, recipe)
		acceptedKeys = append(acceptedKeys, required)
	}
	return result
}

// Validate 單筆食譜的結構檢查，不含相似度
func Validate(recipe common.Recipe, known map[string]bool) []string {
	var reasons []string

	if utf8.RuneCountInString(strings.TrimSpace(recipe.Title)) < minTitleRunes {
		reasons = append(reasons, ReasonTitleTooShort)
	}
	if recipe.CookMinutes < minCookMinutes || recipe.CookMinutes > maxCookMinutes {
		reasons = append(reasons, ReasonCookMinutesOutOfRange)
	}
	if n := len(recipe.Steps); n < minSteps || n > maxSteps {
		reasons = append(reasons, ReasonStepCountOutOfRange)
	}
	if n := len(recipe.RequiredIngredients()); n < minRequired || n > maxRequired {
		reasons = append(reasons, ReasonRequiredCountOutOfRange)
	}

	seen := make(map[string]bool, len(recipe.Ingredients))
	duplicated, unknown := false, false
	for _, ing := range recipe.Ingredients {
		if seen[ing.IngredientKey] {
			duplicated = true
		}
		seen[ing.IngredientKey] = true
		if !known[ing.IngredientKey] {
			unknown = true
		}
	}
	if duplicated {
		reasons = append(reasons, ReasonDuplicatedKeys)
	}
	if unknown {
		reasons = append(reasons, ReasonUnknownKeys)
	}
	return reasons
}

// Jaccard 集合相似度；聯集為空時為 0
func Jaccard(left, right map[string]bool) float64 {
	intersection := 0
	for k := range left {
		if right[k] {
			intersection++
		}
	}
	union := len(left) + len(right) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
