package recommend

import (
	"fmt"

	"dinner-recommender/internal/pkg/common"
)

const (
	quickStepCount  = 2
	quickFinishStep = "最后统一调味并收汁 1-2 分钟后出锅。"
)

// Assist 精簡版步驟與替代提示
type Assist struct {
	QuickVersion      []string `json:"quickVersion"`
	SubstitutionHints []string `json:"substitutionHints"`
}

// BuildAssist 取前兩步並補上收尾步驟；替代提示只列出適用市場的規則
func BuildAssist(recipe common.Recipe, market common.Market) Assist {
	hints := []string{}
	for _, sub := range recipe.Substitutions {
		if !sub.AppliesTo(market) {
			continue
		}
		for _, alt := range sub.Alternatives {
			hints = append(hints, fmt.Sprintf("%s -> %s/%s (%s)", sub.IngredientKey, alt.NameZh, alt.NameEn, alt.Note))
		}
	}

	n := len(recipe.Steps)
	if n > quickStepCount {
		n = quickStepCount
	}
	quick := append([]string{}, recipe.Steps[:n]...)
	if len(recipe.Steps) > quickStepCount {
		quick = append(quick, quickFinishStep)
	}

	return Assist{QuickVersion: quick, SubstitutionHints: hints}
}
