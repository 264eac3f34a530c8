package common

// Unit 計量單位
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitPiece      Unit = "piece"
	UnitPack       Unit = "pack"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
)

// Market 市場
type Market string

const (
	MarketNZ Market = "NZ"
	MarketAU Market = "AU"
)

// StorageType 儲存方式
type StorageType string

const (
	StorageFridge  StorageType = "fridge"
	StorageFreezer StorageType = "freezer"
	StoragePantry  StorageType = "pantry"
)

// Channel 購買通路
type Channel string

const (
	ChannelMainstream Channel = "nz_mainstream"
	ChannelAsian      Channel = "nz_asian"
)

// Category 食材分類
type Category string

const (
	CategoryStaple    Category = "staple"
	CategoryProtein   Category = "protein"
	CategoryVegetable Category = "vegetable"
	CategoryAromatics Category = "aromatics"
	CategorySauce     Category = "sauce"
	CategorySeasoning Category = "seasoning"
)

// IngredientSeed 手寫的食材種子資料
type IngredientSeed struct {
	IngredientKey   string      `json:"ingredientKey" yaml:"ingredientKey"`
	NameZh          string      `json:"nameZh" yaml:"nameZh"`
	NameEn          string      `json:"nameEn" yaml:"nameEn"`
	Aliases         []string    `json:"aliases" yaml:"aliases"`
	Category        Category    `json:"category" yaml:"category"`
	StorageType     StorageType `json:"storageType" yaml:"storageType"`
	TypicalUnits    []Unit      `json:"typicalUnits" yaml:"typicalUnits"`
	DefaultChannels []Channel   `json:"defaultChannels" yaml:"defaultChannels"`
	Markets         []Market    `json:"markets" yaml:"markets"`
	Keywords        []string    `json:"keywords" yaml:"keywords"`
	Core            bool        `json:"core" yaml:"core"`
}

// SupplySignal 某個來源對食材供應的信心
type SupplySignal struct {
	Source     string   `json:"source"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// IngredientCatalogItem 目錄中的食材
type IngredientCatalogItem struct {
	IngredientKey string         `json:"ingredientKey"`
	NameZh        string         `json:"nameZh"`
	NameEn        string         `json:"nameEn"`
	Aliases       []string       `json:"aliases"`
	Category      Category       `json:"category"`
	StorageType   StorageType    `json:"storageType"`
	TypicalUnits  []Unit         `json:"typicalUnits"`
	Channels      []Channel      `json:"channels"`
	Markets       []Market       `json:"markets"`
	SupplySignals []SupplySignal `json:"supplySignals"`
}

// HasMarket 檢查食材是否在指定市場販售
func (c IngredientCatalogItem) HasMarket(market Market) bool {
	for _, m := range c.Markets {
		if m == market {
			return true
		}
	}
	return false
}

// RecipeIngredient 食譜中的食材
type RecipeIngredient struct {
	IngredientKey string  `json:"ingredientKey" yaml:"ingredientKey"`
	NameZh        string  `json:"nameZh" yaml:"nameZh"`
	NameEn        string  `json:"nameEn" yaml:"nameEn"`
	Quantity      float64 `json:"quantity" yaml:"quantity"`
	Unit          Unit    `json:"unit" yaml:"unit"`
	Optional      bool    `json:"optional,omitempty" yaml:"optional"`
}

// Alternative 替代食材
type Alternative struct {
	IngredientKey string `json:"ingredientKey" yaml:"ingredientKey"`
	NameZh        string `json:"nameZh" yaml:"nameZh"`
	NameEn        string `json:"nameEn" yaml:"nameEn"`
	Note          string `json:"note" yaml:"note"`
}

// Substitution 替代規則，只在列出的市場生效
type Substitution struct {
	IngredientKey string        `json:"ingredientKey" yaml:"ingredientKey"`
	Markets       []Market      `json:"markets" yaml:"markets"`
	Alternatives  []Alternative `json:"alternatives" yaml:"alternatives"`
}

// AppliesTo 檢查替代規則是否適用於市場
func (s Substitution) AppliesTo(market Market) bool {
	for _, m := range s.Markets {
		if m == market {
			return true
		}
	}
	return false
}

// Recipe 食譜
type Recipe struct {
	ID            string             `json:"id" yaml:"id"`
	Title         string             `json:"title" yaml:"title"`
	Cuisine       string             `json:"cuisine" yaml:"cuisine"`
	Servings      int                `json:"servings" yaml:"servings"`
	CookMinutes   int                `json:"cookMinutes" yaml:"cookMinutes"`
	Ingredients   []RecipeIngredient `json:"ingredients" yaml:"ingredients"`
	Steps         []string           `json:"steps" yaml:"steps"`
	Tags          []string           `json:"tags" yaml:"tags"`
	Substitutions []Substitution     `json:"substitutions" yaml:"substitutions"`
}

// RequiredIngredients 回傳非選用的食材，保持原順序
func (r Recipe) RequiredIngredients() []RecipeIngredient {
	required := make([]RecipeIngredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if !ing.Optional {
			required = append(required, ing)
		}
	}
	return required
}

// RequiredKeys 回傳必要食材的 key
func (r Recipe) RequiredKeys() []string {
	required := r.RequiredIngredients()
	keys := make([]string, 0, len(required))
	for _, ing := range required {
		keys = append(keys, ing.IngredientKey)
	}
	return keys
}

// RejectedRecipe 被品質關卡拒絕的食譜
type RejectedRecipe struct {
	RecipeID string   `json:"recipeId"`
	Title    string   `json:"title"`
	Reasons  []string `json:"reasons"`
}

// PantryItem 冰箱/儲藏室中的食材
type PantryItem struct {
	ID            string      `json:"id"`
	IngredientKey string      `json:"ingredientKey"`
	NameZh        string      `json:"nameZh"`
	NameEn        string      `json:"nameEn"`
	Quantity      float64     `json:"quantity"`
	Unit          Unit        `json:"unit"`
	StorageType   StorageType `json:"storageType"`
	ExpiresAt     string      `json:"expiresAt,omitempty"`
}

// UserProfile 使用者設定
type UserProfile struct {
	ID             string   `json:"id"`
	PrimaryMarket  Market   `json:"primaryMarket"`
	Timezone       string   `json:"timezone"`
	MaxCookMinutes int      `json:"maxCookMinutes"`
	DietPrefs      []string `json:"dietPrefs"`
}

// MatchType 配對類型
type MatchType string

const (
	MatchFull        MatchType = "full"
	MatchPartial     MatchType = "partial"
	MatchExpiryFirst MatchType = "expiry_first"
)

// MissingIngredient 缺少的食材
type MissingIngredient struct {
	IngredientKey     string  `json:"ingredientKey"`
	NameZh            string  `json:"nameZh"`
	NameEn            string  `json:"nameEn"`
	NeededQuantity    float64 `json:"neededQuantity"`
	Unit              Unit    `json:"unit"`
	AvailableQuantity float64 `json:"availableQuantity"`
}

// SubstitutionPlan 缺料時的替代方案
type SubstitutionPlan struct {
	ForIngredientKey string        `json:"forIngredientKey"`
	Alternatives     []Alternative `json:"alternatives"`
}

// RecipeMatchResult 單一食譜的配對結果
type RecipeMatchResult struct {
	RecipeID           string              `json:"recipeId"`
	MatchType          MatchType           `json:"matchType"`
	CoverageScore      float64             `json:"coverageScore"`
	MissingIngredients []MissingIngredient `json:"missingIngredients"`
	SubstitutionPlan   []SubstitutionPlan  `json:"substitutionPlan"`
	TotalScore         float64             `json:"totalScore"`
}

// RecommendationOutput 推薦結果，依配對類型分組
type RecommendationOutput struct {
	Full        []RecipeMatchResult `json:"full"`
	Partial     []RecipeMatchResult `json:"partial"`
	ExpiryFirst []RecipeMatchResult `json:"expiryFirst"`
}

// StoreType 建議購買的商店類型
type StoreType string

const (
	StoreAsian StoreType = "asian"
	StoreLocal StoreType = "local"
)

// ShoppingListItem 購物清單項目
type ShoppingListItem struct {
	IngredientKey    string    `json:"ingredientKey"`
	DisplayName      string    `json:"displayName"`
	NeededQty        float64   `json:"neededQty"`
	Unit             Unit      `json:"unit"`
	SourceRecipeIDs  []string  `json:"sourceRecipeIds"`
	StoreType        StoreType `json:"storeType"`
	SuggestedPackage string    `json:"suggestedPackage"`
	Checked          bool      `json:"checked"`
}

// ExpiryStage 到期階段
type ExpiryStage string

const (
	ExpiryToday    ExpiryStage = "today"
	ExpiryThreeDay ExpiryStage = "three_day"
)

// ExpiryAlert 即將到期的提醒
type ExpiryAlert struct {
	ItemID        string      `json:"itemId"`
	IngredientKey string      `json:"ingredientKey"`
	NameZh        string      `json:"nameZh"`
	ExpiresAt     string      `json:"expiresAt"`
	DaysToExpiry  int         `json:"daysToExpiry"`
	Stage         ExpiryStage `json:"stage"`
}

// BuildReport 離線建置報告
type BuildReport struct {
	GeneratedAt     string   `json:"generatedAt"`
	IngredientCount int      `json:"ingredientCount"`
	RecipeCount     int      `json:"recipeCount"`
	RejectedRecipes int      `json:"rejectedRecipes"`
	Notes           []string `json:"notes"`
}
