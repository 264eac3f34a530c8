package dataset

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"dinner-recommender/internal/pkg/common"
)

//go:embed data/ingredient_seed.yaml data/foundation_recipes.yaml data/ingredient_seed.schema.json
var dataFS embed.FS

const (
	seedFile       = "data/ingredient_seed.yaml"
	foundationFile = "data/foundation_recipes.yaml"
	seedSchemaFile = "data/ingredient_seed.schema.json"
)

type seedDocument struct {
	Ingredients []common.IngredientSeed `yaml:"ingredients"`
}

type foundationDocument struct {
	Recipes []common.Recipe `yaml:"recipes"`
}

// DefaultSeeds 內建的食材種子
func DefaultSeeds() ([]common.IngredientSeed, error) {
	raw, err := dataFS.ReadFile(seedFile)
	if err != nil {
		return nil, err
	}
	return ParseSeeds(raw)
}

// ParseSeeds 解析 YAML 種子，先以 JSON Schema 檢查結構，不合格時回傳 ValidationError
func ParseSeeds(raw []byte) ([]common.IngredientSeed, error) {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, common.ErrInvalidSeed.Wrap(fmt.Errorf("parse seed yaml: %w", err))
	}
	if err := validateSeedShape(generic); err != nil {
		return nil, err
	}

	var doc seedDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, common.ErrInvalidSeed.Wrap(fmt.Errorf("decode seed yaml: %w", err))
	}

	seen := make(map[string]bool, len(doc.Ingredients))
	for _, seed := range doc.Ingredients {
		if seen[seed.IngredientKey] {
			return nil, common.NewValidationError(fmt.Sprintf("duplicated ingredientKey %q", seed.IngredientKey))
		}
		seen[seed.IngredientKey] = true
	}
	return doc.Ingredients, nil
}

func validateSeedShape(document map[string]interface{}) error {
	schema, err := dataFS.ReadFile(seedSchemaFile)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return common.NewValidationError("seed validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

// FoundationRecipes 內建的基礎食譜
func FoundationRecipes() ([]common.Recipe, error) {
	raw, err := dataFS.ReadFile(foundationFile)
	if err != nil {
		return nil, err
	}
	var doc foundationDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode foundation recipes: %w", err)
	}
	return doc.Recipes, nil
}
