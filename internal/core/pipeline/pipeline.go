// Package pipeline 離線建置：訊號 → 目錄 → 生成食譜 → 品質閘門
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/core/dataset"
	"dinner-recommender/internal/core/generator"
	"dinner-recommender/internal/core/quality"
	"dinner-recommender/internal/core/signals"
	"dinner-recommender/internal/infrastructure/metrics"
	"dinner-recommender/internal/pkg/common"
)

const reportNote = "Catalog built from NZ supermarket signals and NZ asian supermarket departments, then constrained recipe generation and quality gate."

// Result 一次建置的所有產出
type Result struct {
	Catalog   []common.IngredientCatalogItem
	Generated []common.Recipe
	Quality   quality.Result
	Report    common.BuildReport
}

// Run 依序建立目錄、生成食譜並通過品質閘門
func Run(seeds []common.IngredientSeed, evidence signals.Evidence, opts generator.Options, now time.Time) Result {
	items := catalog.BuildIngredientCatalog(seeds, evidence.CatalogEvidence())
	generated := generator.Generate(items, opts)
	gate := quality.Run(generated, items)

	metrics.PipelineRecipes.WithLabelValues("generated").Add(float64(len(generated)))
	metrics.PipelineRecipes.WithLabelValues("accepted").Add(float64(len(gate.Accepted)))
	for _, rejected := range gate.Rejected {
		for _, reason := range rejected.Reasons {
			metrics.PipelineRejections.WithLabelValues(reason).Inc()
		}
	}

	report := common.BuildReport{
		GeneratedAt:     now.UTC().Format(time.RFC3339),
		IngredientCount: len(items),
		RecipeCount:     len(gate.Accepted),
		RejectedRecipes: len(gate.Rejected),
		Notes:           buildNotes(evidence.Snapshot),
	}

	common.LogInfo("資料建置完成",
		zap.Int("ingredients", report.IngredientCount),
		zap.Int("generated", len(generated)),
		zap.Int("accepted", report.RecipeCount),
		zap.Int("rejected", report.RejectedRecipes),
	)

	return Result{
		Catalog:   items,
		Generated: generated,
		Quality:   gate,
		Report:    report,
	}
}

func buildNotes(snapshot signals.Snapshot) []string {
	notes := []string{reportNote}
	for _, src := range snapshot.Sources {
		if src.Error != "" {
			notes = append(notes, fmt.Sprintf("source %s failed: %s", src.URL, src.Error))
		}
	}
	return notes
}

// WriteOutputs 寫出服務啟動時讀取的建置檔案
func WriteOutputs(dir string, result Result, snapshot signals.Snapshot) error {
	outputs := []struct {
		name    string
		payload interface{}
	}{
		{dataset.SnapshotFile, snapshot},
		{dataset.CatalogFile, result.Catalog},
		{dataset.RecipesFile, result.Quality.Accepted},
		{dataset.ReportFile, result.Report},
	}
	for _, out := range outputs {
		if err := common.WriteJSONFile(filepath.Join(dir, out.name), out.payload); err != nil {
			return fmt.Errorf("write %s: %w", out.name, err)
		}
	}
	return nil
}
