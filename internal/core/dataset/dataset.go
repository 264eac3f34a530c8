package dataset

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/pkg/common"
)

// 離線建置輸出的檔名
const (
	CatalogFile  = "ingredientCatalog.generated.json"
	RecipesFile  = "recipes.generated.json"
	ReportFile   = "buildReport.generated.json"
	SnapshotFile = "sourceSnapshot.generated.json"
)

// Generated 離線建置的產出，缺檔或格式錯誤時為空
type Generated struct {
	Catalog []common.IngredientCatalogItem
	Recipes []common.Recipe
	Report  *common.BuildReport
}

// LoadGenerated 讀取建置目錄；任何檔案讀取失敗都退回空值
func LoadGenerated(dir string) Generated {
	var out Generated
	if dir == "" {
		return out
	}
	out.Catalog, _ = loadOptional[[]common.IngredientCatalogItem](filepath.Join(dir, CatalogFile))
	out.Recipes, _ = loadOptional[[]common.Recipe](filepath.Join(dir, RecipesFile))
	if report, ok := loadOptional[common.BuildReport](filepath.Join(dir, ReportFile)); ok {
		out.Report = &report
	}
	return out
}

// loadOptional 讀取失敗時回傳零值，不保留部分解析的內容
func loadOptional[T any](path string) (T, bool) {
	var v T
	if err := common.ReadJSONFile(path, &v); err != nil {
		if !os.IsNotExist(err) {
			common.LogWarn("讀取建置檔案失敗，使用預設資料",
				zap.String("path", path),
				zap.Error(err))
		}
		var zero T
		return zero, false
	}
	return v, true
}

// Dataset 服務使用的唯讀資料
type Dataset struct {
	Catalog []common.IngredientCatalogItem
	Recipes []common.Recipe
	Report  *common.BuildReport
	Lexicon *catalog.Lexicon

	byID map[string]int
}

// New 合併種子目錄與建置目錄（同 key 以建置結果為準），食譜以 id 去重，先出現者保留
func New(seeds []common.IngredientSeed, foundation []common.Recipe, generated Generated) *Dataset {
	merged := catalog.Merge(catalog.FromSeeds(seeds), generated.Catalog)

	recipes := make([]common.Recipe, 0, len(foundation)+len(generated.Recipes))
	byID := make(map[string]int, cap(recipes))
	for _, group := range [][]common.Recipe{foundation, generated.Recipes} {
		for _, recipe := range group {
			if _, ok := byID[recipe.ID]; ok {
				continue
			}
			byID[recipe.ID] = len(recipes)
			recipes = append(recipes, recipe)
		}
	}

	return &Dataset{
		Catalog: merged,
		Recipes: recipes,
		Report:  generated.Report,
		Lexicon: catalog.NewLexicon(merged),
		byID:    byID,
	}
}

// Load 讀取內建種子、基礎食譜與建置目錄
func Load(generatedDir string) (*Dataset, error) {
	seeds, err := DefaultSeeds()
	if err != nil {
		return nil, err
	}
	foundation, err := FoundationRecipes()
	if err != nil {
		return nil, err
	}
	ds := New(seeds, foundation, LoadGenerated(generatedDir))
	common.LogInfo("資料載入完成",
		zap.Int("ingredients", len(ds.Catalog)),
		zap.Int("recipes", len(ds.Recipes)),
		zap.Bool("has_report", ds.Report != nil))
	return ds, nil
}

// RecipeByID 以 id 查詢食譜
func (d *Dataset) RecipeByID(id string) (common.Recipe, bool) {
	i, ok := d.byID[id]
	if !ok {
		return common.Recipe{}, false
	}
	return d.Recipes[i], true
}

// CatalogByMarket 指定市場可購得的食材
func (d *Dataset) CatalogByMarket(market common.Market) []common.IngredientCatalogItem {
	return catalog.ByMarket(d.Catalog, market)
}

// CatalogKeys 目錄中所有食材 key
func (d *Dataset) CatalogKeys() map[string]bool {
	return catalog.KeySet(d.Catalog)
}
