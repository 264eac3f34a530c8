package generator

import (
	"fmt"

	"dinner-recommender/internal/pkg/common"
)

// pools 依分類分組的目錄，保持目錄順序
type pools struct {
	staples    []common.IngredientCatalogItem
	proteins   []common.IngredientCatalogItem
	vegetables []common.IngredientCatalogItem
	aromatics  []common.IngredientCatalogItem
	sauces     []common.IngredientCatalogItem
}

func groupByCategory(catalog []common.IngredientCatalogItem) pools {
	var p pools
	for _, item := range catalog {
		switch item.Category {
		case common.CategoryStaple:
			p.staples = append(p.staples, item)
		case common.CategoryProtein:
			p.proteins = append(p.proteins, item)
		case common.CategoryVegetable:
			p.vegetables = append(p.vegetables, item)
		case common.CategoryAromatics:
			p.aromatics = append(p.aromatics, item)
		case common.CategorySauce:
			p.sauces = append(p.sauces, item)
		}
	}
	return p
}

// pair 一組主料：蛋白質與蔬菜
type pair struct {
	protein   common.IngredientCatalogItem
	vegetable common.IngredientCatalogItem
}

// picker 從分組中挑選食材，挑不到回傳 false
type picker func(p pools, pr pair) (common.IngredientCatalogItem, bool)

// slot 模板中的一個食材位置
type slot struct {
	role     string
	pick     picker
	units    []common.Unit
	optional bool
}

// template 宣告式的食譜模板
type template struct {
	kind        string
	titleSuffix string
	cookMinutes int
	servings    int
	slots       []slot
	// steps 以 role → 中文名稱 產生步驟
	steps func(names map[string]string) []string
}

var (
	unitsMain   = []common.Unit{common.UnitGram, common.UnitPiece}
	unitsGarlic = []common.Unit{common.UnitPiece, common.UnitGram}
	unitsSauce  = []common.Unit{common.UnitTablespoon, common.UnitMilliliter}
	unitsOil    = []common.Unit{common.UnitTeaspoon, common.UnitTablespoon}
	unitsRice   = []common.Unit{common.UnitGram, common.UnitKilogram}
	unitsPacked = []common.Unit{common.UnitGram, common.UnitPack}
	unitsPaste  = []common.Unit{common.UnitTablespoon, common.UnitGram}
)

func find(items []common.IngredientCatalogItem, key string) (common.IngredientCatalogItem, bool) {
	for _, item := range items {
		if item.IngredientKey == key {
			return item, true
		}
	}
	return common.IngredientCatalogItem{}, false
}

func at(items []common.IngredientCatalogItem, i int) (common.IngredientCatalogItem, bool) {
	if i < len(items) {
		return items[i], true
	}
	return common.IngredientCatalogItem{}, false
}

func pickProtein(_ pools, pr pair) (common.IngredientCatalogItem, bool)   { return pr.protein, true }
func pickVegetable(_ pools, pr pair) (common.IngredientCatalogItem, bool) { return pr.vegetable, true }

func pickGarlic(p pools, _ pair) (common.IngredientCatalogItem, bool) {
	if item, ok := find(p.aromatics, "garlic"); ok {
		return item, true
	}
	return at(p.aromatics, 0)
}

func pickGinger(p pools, pr pair) (common.IngredientCatalogItem, bool) {
	if item, ok := find(p.aromatics, "ginger"); ok {
		return item, true
	}
	if item, ok := at(p.aromatics, 1); ok {
		return item, true
	}
	return pickGarlic(p, pr)
}

func pickSoy(p pools, _ pair) (common.IngredientCatalogItem, bool) {
	if item, ok := find(p.sauces, "soy_sauce"); ok {
		return item, true
	}
	return at(p.sauces, 0)
}

func pickSauce(key string) picker {
	return func(p pools, _ pair) (common.IngredientCatalogItem, bool) {
		return find(p.sauces, key)
	}
}

func pickStaple(key string) picker {
	return func(p pools, _ pair) (common.IngredientCatalogItem, bool) {
		return find(p.staples, key)
	}
}

var pairTemplates = []template{
	{
		kind:        "stirfry",
		titleSuffix: "快炒",
		cookMinutes: 16,
		servings:    2,
		slots: []slot{
			{role: "protein", pick: pickProtein, units: unitsMain},
			{role: "vegetable", pick: pickVegetable, units: unitsMain},
			{role: "garlic", pick: pickGarlic, units: unitsGarlic},
			{role: "ginger", pick: pickGinger, units: unitsMain},
			{role: "soy", pick: pickSoy, units: unitsSauce},
			{role: "oyster", pick: pickSauce("oyster_sauce"), units: unitsSauce, optional: true},
		},
		steps: func(n map[string]string) []string {
			return []string{
				fmt.Sprintf("%s切小块并简单腌制。", n["protein"]),
				fmt.Sprintf("热锅下%s与%s爆香，加入%s翻炒至变色。", n["garlic"], n["ginger"], n["protein"]),
				fmt.Sprintf("加入%s和调味料大火快炒，收汁后出锅。", n["vegetable"]),
			}
		},
	},
	{
		kind:        "ricebowl",
		titleSuffix: "盖饭",
		cookMinutes: 22,
		servings:    2,
		slots: []slot{
			{role: "rice", pick: pickStaple("rice"), units: unitsRice},
			{role: "protein", pick: pickProtein, units: unitsMain},
			{role: "vegetable", pick: pickVegetable, units: unitsMain},
			{role: "soy", pick: pickSoy, units: unitsSauce},
			{role: "sesame", pick: pickSauce("sesame_oil"), units: unitsOil, optional: true},
		},
		steps: func(n map[string]string) []string {
			return []string{
				"米饭煮好备用。",
				fmt.Sprintf("将%s炒熟后加入%s继续翻炒。", n["protein"], n["vegetable"]),
				"加入调味料收汁，浇在热米饭上即可。",
			}
		},
	},
	{
		kind:        "noodle",
		titleSuffix: "拌面",
		cookMinutes: 14,
		servings:    1,
		slots: []slot{
			{role: "noodles", pick: pickStaple("noodles"), units: unitsPacked},
			{role: "protein", pick: pickProtein, units: unitsMain},
			{role: "vegetable", pick: pickVegetable, units: unitsMain},
			{role: "soy", pick: pickSoy, units: unitsSauce},
		},
		steps: func(n map[string]string) []string {
			return []string{
				"面条煮熟后过冷水备用。",
				fmt.Sprintf("将%s和%s炒熟，加入调味料。", n["protein"], n["vegetable"]),
				"与面条拌匀，快速翻炒 1 分钟后出锅。",
			}
		},
	},
}

// tofuTemplate 不依賴主料組合的固定食譜
var tofuTemplate = template{
	kind:        "tofu",
	cookMinutes: 15,
	servings:    2,
	slots: []slot{
		{role: "tofu", pick: func(p pools, _ pair) (common.IngredientCatalogItem, bool) {
			return find(append(append([]common.IngredientCatalogItem(nil), p.proteins...), p.vegetables...), "tofu_firm")
		}, units: unitsPacked},
		{role: "soy", pick: pickSoy, units: unitsSauce},
		{role: "doubanjiang", pick: pickSauce("doubanjiang"), units: unitsPaste, optional: true},
	},
	steps: func(map[string]string) []string {
		return []string{
			"豆腐切块并煎至表面定型。",
			"加入生抽和少量清水，小火焖煮入味。",
			"按口味加入辣豆瓣或葱花，收汁出锅。",
		}
	},
}

const (
	tofuTitle = "家常烧豆腐"
	tofuSeed  = "tofu:home-style"
	cuisine   = "Chinese Home"
)

// substitutionRules 在 NZ/AU 可用的替代食材
var substitutionRules = map[string][]common.Alternative{
	"shaoxing_wine": {{
		IngredientKey: "dry_sherry",
		NameZh:        "干雪利酒",
		NameEn:        "dry sherry",
		Note:          "NZ/AU 本地超市酒类货架可替代",
	}},
	"doubanjiang": {{
		IngredientKey: "chili_bean_paste",
		NameZh:        "辣豆瓣酱",
		NameEn:        "chili bean paste",
		Note:          "亚洲超市常见替代",
	}},
	"bok_choy": {{
		IngredientKey: "choy_sum",
		NameZh:        "菜心",
		NameEn:        "choy sum",
		Note:          "NZ 华人超市常见叶菜替代",
	}},
}

var substitutionMarkets = []common.Market{common.MarketNZ, common.MarketAU}
