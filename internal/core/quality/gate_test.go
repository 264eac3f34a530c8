package quality

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-recommender/internal/pkg/common"
)

func catalogOf(keys ...string) []common.IngredientCatalogItem {
	items := make([]common.IngredientCatalogItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, common.IngredientCatalogItem{IngredientKey: k})
	}
	return items
}

func recipeWith(id, title string, keys ...string) common.Recipe {
	ingredients := make([]common.RecipeIngredient, 0, len(keys))
	for _, k := range keys {
		ingredients = append(ingredients, common.RecipeIngredient{IngredientKey: k, Quantity: 1, Unit: common.UnitPiece})
	}
	return common.Recipe{
		ID:          id,
		Title:       title,
		CookMinutes: 15,
		Ingredients: ingredients,
		Steps:       []string{"一", "二", "三"},
	}
}

var knownKeys = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

func TestRunAcceptsValidRecipe(t *testing.T) {
	result := Run([]common.Recipe{recipeWith("r1", "番茄炒蛋", "a", "b", "c")}, catalogOf(knownKeys...))
	require.Len(t, result.Accepted, 1)
	assert.Empty(t, result.Rejected)
}

func TestRunReasonCodesInOrder(t *testing.T) {
	r := recipeWith("r1", "  炒蛋 ", "a", "a", "zzz")
	r.CookMinutes = 50
	r.Steps = []string{"only"}

	result := Run([]common.Recipe{r}, catalogOf(knownKeys...))
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, common.RejectedRecipe{
		RecipeID: "r1",
		Title:    "  炒蛋 ",
		Reasons: []string{
			ReasonTitleTooShort,
			ReasonCookMinutesOutOfRange,
			ReasonStepCountOutOfRange,
			ReasonDuplicatedKeys,
			ReasonUnknownKeys,
		},
	}, result.Rejected[0])
}

func TestRunBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*common.Recipe)
		reason string
	}{
		{"cook 7", func(r *common.Recipe) { r.CookMinutes = 7 }, ReasonCookMinutesOutOfRange},
		{"cook 46", func(r *common.Recipe) { r.CookMinutes = 46 }, ReasonCookMinutesOutOfRange},
		{"cook 8", func(r *common.Recipe) { r.CookMinutes = 8 }, ""},
		{"cook 45", func(r *common.Recipe) { r.CookMinutes = 45 }, ""},
		{"seven steps", func(r *common.Recipe) { r.Steps = make([]string, 7) }, ReasonStepCountOutOfRange},
		{"six steps", func(r *common.Recipe) { r.Steps = make([]string, 6) }, ""},
		{"two required", func(r *common.Recipe) { r.Ingredients = r.Ingredients[:2] }, ReasonRequiredCountOutOfRange},
		{"optional does not count", func(r *common.Recipe) { r.Ingredients[2].Optional = true }, ReasonRequiredCountOutOfRange},
		{"nine required", func(r *common.Recipe) {
			*r = recipeWith(r.ID, r.Title, "a", "b", "c", "d", "e", "f", "g", "h", "i")
		}, ReasonRequiredCountOutOfRange},
		{"eight required", func(r *common.Recipe) {
			*r = recipeWith(r.ID, r.Title, "a", "b", "c", "d", "e", "f", "g", "h")
		}, ""},
		{"three rune title", func(r *common.Recipe) { r.Title = "炒青菜" }, ""},
		{"blank title", func(r *common.Recipe) { r.Title = "   " }, ReasonTitleTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recipeWith("r1", "番茄炒蛋", "a", "b", "c")
			tt.mutate(&r)
			reasons := Validate(r, map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true, "f": true, "g": true, "h": true, "i": true})
			if tt.reason == "" {
				assert.Empty(t, reasons)
				return
			}
			assert.Equal(t, []string{tt.reason}, reasons)
		})
	}
}

func TestRunRejectsSimilarToAccepted(t *testing.T) {
	// 7 個共同食材，Jaccard = 7/8 = 0.875
	first := recipeWith("r1", "第一道菜", "a", "b", "c", "d", "e", "f", "g")
	second := recipeWith("r2", "第二道菜", "a", "b", "c", "d", "e", "f", "g", "h")
	// Jaccard(first, third) = 6/8 = 0.75
	third := recipeWith("r3", "第三道菜", "a", "b", "c", "d", "e", "f", "i")

	result := Run([]common.Recipe{first, second, third}, catalogOf(knownKeys...))
	require.Len(t, result.Accepted, 2)
	assert.Equal(t, "r1", result.Accepted[0].ID)
	assert.Equal(t, "r3", result.Accepted[1].ID)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, []string{ReasonTooSimilar}, result.Rejected[0].Reasons)
}

func TestRunComparesOnlyAgainstAccepted(t *testing.T) {
	// 被拒絕的食譜不參與相似度比較
	invalid := recipeWith("r1", "短", "a", "b", "c")
	same := recipeWith("r2", "番茄炒蛋", "a", "b", "c")

	result := Run([]common.Recipe{invalid, same}, catalogOf(knownKeys...))
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "r2", result.Accepted[0].ID)
	assert.Equal(t, []string{ReasonTitleTooShort}, result.Rejected[0].Reasons)
}

func TestRunIsTotal(t *testing.T) {
	var recipes []common.Recipe
	for i := 0; i < 30; i++ {
		keys := []string{knownKeys[i%10], knownKeys[(i+1)%10], knownKeys[(i+3)%10]}
		if i%4 == 0 {
			keys = append(keys, "unknown")
		}
		recipes = append(recipes, recipeWith(fmt.Sprintf("r%d", i), fmt.Sprintf("菜式第%d道", i), keys...))
	}

	result := Run(recipes, catalogOf(knownKeys...))
	assert.Equal(t, len(recipes), len(result.Accepted)+len(result.Rejected))

	ids := make(map[string]int)
	for _, r := range result.Accepted {
		ids[r.ID]++
	}
	for _, r := range result.Rejected {
		ids[r.RecipeID]++
		assert.NotEmpty(t, r.Reasons)
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, id)
	}
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(map[string]bool{}, map[string]bool{}))
	assert.Equal(t, 1.0, Jaccard(toSet([]string{"a", "b"}), toSet([]string{"b", "a"})))
	assert.InDelta(t, 1.0/3.0, Jaccard(toSet([]string{"a", "b"}), toSet([]string{"b", "c"})), 1e-9)
}
