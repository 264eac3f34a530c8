package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/pkg/common"
)

var nzTime = time.FixedZone("NZDT", 13*3600)

func ingredient(key string, qty float64, unit common.Unit, optional bool) common.RecipeIngredient {
	return common.RecipeIngredient{IngredientKey: key, NameZh: key, NameEn: key, Quantity: qty, Unit: unit, Optional: optional}
}

func eggTomato() common.Recipe {
	return common.Recipe{
		ID:          "r_egg_tomato",
		Title:       "番茄炒蛋",
		CookMinutes: 12,
		Ingredients: []common.RecipeIngredient{
			ingredient("egg", 3, common.UnitPiece, false),
			ingredient("tomato", 2, common.UnitPiece, false),
			ingredient("scallion", 1, common.UnitPiece, true),
			ingredient("soy_sauce", 1, common.UnitTablespoon, true),
		},
		Steps: []string{"番茄切块，鸡蛋打散。", "热锅炒蛋至凝固后盛出。", "番茄下锅炒软，加入鸡蛋回锅，调味后出锅。"},
		Tags:  []string{"quick", "budget", "no-spicy"},
	}
}

func kungPao() common.Recipe {
	return common.Recipe{
		ID:          "r_kungpao_chicken",
		Title:       "宫保鸡丁",
		CookMinutes: 20,
		Ingredients: []common.RecipeIngredient{
			ingredient("chicken_thigh", 300, common.UnitGram, false),
			ingredient("garlic", 3, common.UnitPiece, false),
			ingredient("soy_sauce", 1, common.UnitTablespoon, false),
			ingredient("shaoxing_wine", 1, common.UnitTablespoon, false),
		},
		Steps: []string{"鸡腿肉切丁腌制。", "炒香姜蒜辣椒，加入鸡丁翻炒。", "加生抽和料酒收汁。"},
		Tags:  []string{"quick", "spicy", "high-protein"},
		Substitutions: []common.Substitution{{
			IngredientKey: "shaoxing_wine",
			Markets:       []common.Market{common.MarketNZ, common.MarketAU},
			Alternatives:  []common.Alternative{{IngredientKey: "dry_sherry", NameZh: "干雪利酒", NameEn: "dry sherry", Note: "可在本地超市酒类货架购买"}},
		}},
	}
}

func slowBraise() common.Recipe {
	return common.Recipe{
		ID:          "r_slow",
		Title:       "慢炖牛腩",
		CookMinutes: 50,
		Ingredients: []common.RecipeIngredient{
			ingredient("egg", 1, common.UnitPiece, false),
		},
		Steps: []string{"一", "二", "三"},
	}
}

func testLexicon() *catalog.Lexicon {
	return catalog.NewLexicon([]common.IngredientCatalogItem{
		{IngredientKey: "shaoxing_wine", NameZh: "料酒", NameEn: "shaoxing wine"},
		{IngredientKey: "garlic", NameZh: "大蒜", NameEn: "garlic"},
	})
}

func profile(maxCook int, prefs ...string) common.UserProfile {
	return common.UserProfile{ID: "u1", PrimaryMarket: common.MarketNZ, Timezone: "Pacific/Auckland", MaxCookMinutes: maxCook, DietPrefs: prefs}
}

func now() time.Time {
	return time.Date(2026, 10, 15, 20, 0, 0, 0, nzTime)
}

func TestRecommendFullMatch(t *testing.T) {
	engine := NewEngine([]common.Recipe{eggTomato()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "egg", Quantity: 6, Unit: common.UnitPiece},
		{ID: "p2", IngredientKey: "tomato", Quantity: 3, Unit: common.UnitPiece},
	}

	out := engine.Recommend(pantry, profile(30), now())
	require.Len(t, out.Full, 1)
	assert.Empty(t, out.Partial)
	assert.Empty(t, out.ExpiryFirst)

	r := out.Full[0]
	assert.Equal(t, "r_egg_tomato", r.RecipeID)
	assert.Equal(t, common.MatchFull, r.MatchType)
	assert.Equal(t, 1.0, r.CoverageScore)
	assert.Equal(t, 0.75, r.TotalScore)
	assert.Empty(t, r.MissingIngredients)
	assert.Empty(t, r.SubstitutionPlan)
}

func TestRecommendExpiryFirst(t *testing.T) {
	engine := NewEngine([]common.Recipe{eggTomato()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "egg", Quantity: 6, Unit: common.UnitPiece},
		{ID: "p2", IngredientKey: "tomato", Quantity: 3, Unit: common.UnitPiece, ExpiresAt: "2026-10-17"},
	}

	out := engine.Recommend(pantry, profile(30), now())
	assert.Empty(t, out.Full)
	require.Len(t, out.ExpiryFirst, 1)
	assert.Equal(t, common.MatchExpiryFirst, out.ExpiryFirst[0].MatchType)
	assert.Equal(t, 0.875, out.ExpiryFirst[0].TotalScore)
}

func TestRecommendIgnoresExpiryOutsideWindow(t *testing.T) {
	engine := NewEngine([]common.Recipe{eggTomato()}, testLexicon())
	for _, expires := range []string{"2026-10-19", "2026-10-14", "not-a-date"} {
		pantry := []common.PantryItem{
			{ID: "p1", IngredientKey: "egg", Quantity: 6, Unit: common.UnitPiece},
			{ID: "p2", IngredientKey: "tomato", Quantity: 3, Unit: common.UnitPiece, ExpiresAt: expires},
		}
		out := engine.Recommend(pantry, profile(30), now())
		assert.Len(t, out.Full, 1, expires)
	}
}

func TestRecommendExcludesSlowRecipes(t *testing.T) {
	engine := NewEngine([]common.Recipe{slowBraise(), eggTomato()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "egg", Quantity: 6, Unit: common.UnitPiece, ExpiresAt: "2026-10-16"},
	}

	out := engine.Recommend(pantry, profile(30), now())
	for _, bucket := range [][]common.RecipeMatchResult{out.Full, out.Partial, out.ExpiryFirst} {
		for _, r := range bucket {
			assert.NotEqual(t, "r_slow", r.RecipeID)
		}
	}
}

func TestRecommendPartialWithSubstitution(t *testing.T) {
	engine := NewEngine([]common.Recipe{kungPao()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "chicken_thigh", Quantity: 0.5, Unit: common.UnitKilogram},
		{ID: "p2", IngredientKey: "soy_sauce", Quantity: 30, Unit: common.UnitMilliliter},
		{ID: "p3", IngredientKey: "garlic", Quantity: 1, Unit: common.UnitPiece},
	}

	out := engine.Recommend(pantry, profile(30, "spicy", "veggie"), now())
	require.Len(t, out.Partial, 1)
	r := out.Partial[0]

	// coverage = (1 + 1/3 + 1 + 0) / 4
	assert.Equal(t, 0.583, r.CoverageScore)
	// 0.5833*0.4 + 0 + 0.2 + 0.5*0.15
	assert.Equal(t, 0.508, r.TotalScore)

	require.Len(t, r.MissingIngredients, 2)
	assert.Equal(t, common.MissingIngredient{
		IngredientKey: "garlic", NameZh: "大蒜", NameEn: "garlic",
		NeededQuantity: 3, Unit: common.UnitPiece, AvailableQuantity: 1,
	}, r.MissingIngredients[0])
	assert.Equal(t, "料酒", r.MissingIngredients[1].NameZh)

	require.Len(t, r.SubstitutionPlan, 1)
	assert.Equal(t, "shaoxing_wine", r.SubstitutionPlan[0].ForIngredientKey)
	assert.Equal(t, "dry_sherry", r.SubstitutionPlan[0].Alternatives[0].IngredientKey)
}

func TestRecommendSubstitutionScopedToMarket(t *testing.T) {
	recipe := kungPao()
	recipe.Substitutions[0].Markets = []common.Market{common.MarketAU}
	engine := NewEngine([]common.Recipe{recipe}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "chicken_thigh", Quantity: 300, Unit: common.UnitGram},
		{ID: "p2", IngredientKey: "garlic", Quantity: 3, Unit: common.UnitPiece},
		{ID: "p3", IngredientKey: "soy_sauce", Quantity: 1, Unit: common.UnitTablespoon},
	}

	out := engine.Recommend(pantry, profile(30), now())
	require.Len(t, out.Partial, 1)
	assert.Empty(t, out.Partial[0].SubstitutionPlan)
}

func TestRecommendRejectsTooManyMissing(t *testing.T) {
	engine := NewEngine([]common.Recipe{kungPao()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "chicken_thigh", Quantity: 300, Unit: common.UnitGram},
	}

	out := engine.Recommend(pantry, profile(30), now())
	assert.Empty(t, out.Full)
	assert.Empty(t, out.Partial)
	assert.Empty(t, out.ExpiryFirst)
}

func TestRecommendNonConvertibleUnitsCountAsZero(t *testing.T) {
	engine := NewEngine([]common.Recipe{eggTomato()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "egg", Quantity: 500, Unit: common.UnitGram},
		{ID: "p2", IngredientKey: "tomato", Quantity: 2, Unit: common.UnitPiece},
	}

	out := engine.Recommend(pantry, profile(30), now())
	require.Len(t, out.Partial, 1)
	assert.Equal(t, 0.5, out.Partial[0].CoverageScore)
	assert.Equal(t, 0.0, out.Partial[0].MissingIngredients[0].AvailableQuantity)
}

func TestRecommendSkipsRecipesWithoutRequiredIngredients(t *testing.T) {
	recipe := eggTomato()
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Optional = true
	}
	engine := NewEngine([]common.Recipe{recipe}, testLexicon())

	out := engine.Recommend(nil, profile(30), now())
	assert.Empty(t, out.Partial)
	assert.Empty(t, out.Full)
}

func TestRecommendSortsByScoreStable(t *testing.T) {
	second := eggTomato()
	second.ID = "r_egg_tomato_2"
	third := eggTomato()
	third.ID = "r_egg_tomato_3"
	third.Tags = []string{"spicy"}

	engine := NewEngine([]common.Recipe{second, eggTomato(), third}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "egg", Quantity: 3, Unit: common.UnitPiece},
		{ID: "p2", IngredientKey: "tomato", Quantity: 2, Unit: common.UnitPiece},
	}

	out := engine.Recommend(pantry, profile(30, "spicy"), now())
	require.Len(t, out.Full, 3)
	assert.Equal(t, "r_egg_tomato_3", out.Full[0].RecipeID)
	assert.Equal(t, "r_egg_tomato_2", out.Full[1].RecipeID)
	assert.Equal(t, "r_egg_tomato", out.Full[2].RecipeID)
}

func TestRecommendScoresStayInBounds(t *testing.T) {
	engine := NewEngine([]common.Recipe{eggTomato(), kungPao(), slowBraise()}, testLexicon())
	pantries := [][]common.PantryItem{
		nil,
		{{IngredientKey: "egg", Quantity: 100, Unit: common.UnitPiece, ExpiresAt: "2026-10-15"}},
		{{IngredientKey: "egg", Quantity: 1, Unit: common.UnitPiece}, {IngredientKey: "tomato", Quantity: 1, Unit: common.UnitPiece, ExpiresAt: "2026-10-18"}},
		{{IngredientKey: "chicken_thigh", Quantity: 2, Unit: common.UnitKilogram}, {IngredientKey: "garlic", Quantity: 10, Unit: common.UnitPiece}, {IngredientKey: "soy_sauce", Quantity: 1, Unit: common.UnitLiter}},
	}

	for _, pantry := range pantries {
		out := engine.Recommend(pantry, profile(60, "quick"), now())
		for _, bucket := range [][]common.RecipeMatchResult{out.Full, out.Partial, out.ExpiryFirst} {
			for _, r := range bucket {
				assert.GreaterOrEqual(t, r.CoverageScore, 0.0)
				assert.LessOrEqual(t, r.CoverageScore, 1.0)
				assert.GreaterOrEqual(t, r.TotalScore, 0.0)
				assert.LessOrEqual(t, r.TotalScore, 1.0)
				assert.LessOrEqual(t, len(r.MissingIngredients), 2)
			}
		}
	}
}

func TestComputeMissingIngredientsReportsShortfall(t *testing.T) {
	engine := NewEngine([]common.Recipe{kungPao()}, testLexicon())
	pantry := []common.PantryItem{
		{ID: "p1", IngredientKey: "chicken_thigh", Quantity: 100, Unit: common.UnitGram},
		{ID: "p2", IngredientKey: "soy_sauce", Quantity: 1, Unit: common.UnitTeaspoon},
	}

	missing := engine.ComputeMissingIngredients(kungPao(), pantry)
	require.Len(t, missing, 4)
	assert.Equal(t, 200.0, missing[0].NeededQuantity)
	assert.Equal(t, 100.0, missing[0].AvailableQuantity)
	assert.Equal(t, 0.67, missing[2].NeededQuantity)
	assert.Equal(t, 0.33, missing[2].AvailableQuantity)
}

func TestTimeScoreDecay(t *testing.T) {
	assert.Equal(t, 1.0, timeScore(20, 30))
	assert.Equal(t, 1.0, timeScore(30, 30))
	assert.InDelta(t, 0.5, timeScore(45, 30), 1e-9)
	assert.Equal(t, 0.0, timeScore(90, 30))
	assert.Equal(t, 0.0, timeScore(5, 0))
}

func TestPreferenceScore(t *testing.T) {
	assert.Equal(t, 1.0, preferenceScore([]string{"quick"}, nil))
	assert.Equal(t, 0.5, preferenceScore([]string{"quick", "spicy"}, []string{"spicy", "veggie"}))
	assert.Equal(t, 0.0, preferenceScore(nil, []string{"veggie"}))
}

func TestNewEngineKeepsFirstDuplicate(t *testing.T) {
	dup := eggTomato()
	dup.Title = "另一个番茄炒蛋"
	engine := NewEngine([]common.Recipe{eggTomato(), dup}, nil)

	assert.Equal(t, 1, engine.Len())
	r, ok := engine.Recipe("r_egg_tomato")
	require.True(t, ok)
	assert.Equal(t, "番茄炒蛋", r.Title)
}
