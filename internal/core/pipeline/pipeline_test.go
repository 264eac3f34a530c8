package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-recommender/internal/core/dataset"
	"dinner-recommender/internal/core/generator"
	"dinner-recommender/internal/core/signals"
	"dinner-recommender/internal/pkg/common"
)

var buildTime = time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC)

func runWithDefaultSeeds(t *testing.T, evidence signals.Evidence) Result {
	t.Helper()
	seeds, err := dataset.DefaultSeeds()
	require.NoError(t, err)
	return Run(seeds, evidence, generator.Options{TargetCount: 40, MaxCookMinutes: 40}, buildTime)
}

func TestRunPartitionsGeneratedRecipes(t *testing.T) {
	result := runWithDefaultSeeds(t, signals.Evidence{})

	require.NotEmpty(t, result.Generated)
	require.NotEmpty(t, result.Quality.Accepted)
	assert.Equal(t, len(result.Generated), len(result.Quality.Accepted)+len(result.Quality.Rejected))
	assert.LessOrEqual(t, len(result.Generated), 40)

	for _, recipe := range result.Quality.Accepted {
		assert.True(t, strings.HasPrefix(recipe.ID, "g_"), recipe.ID)
		assert.LessOrEqual(t, recipe.CookMinutes, 40)
	}

	assert.Equal(t, common.BuildReport{
		GeneratedAt:     "2026-10-15T03:00:00Z",
		IngredientCount: len(result.Catalog),
		RecipeCount:     len(result.Quality.Accepted),
		RejectedRecipes: len(result.Quality.Rejected),
		Notes:           []string{reportNote},
	}, result.Report)
}

func TestRunIsDeterministic(t *testing.T) {
	evidence := signals.Evidence{
		MainstreamPhrases: []string{"pork belly", "broccoli florets"},
		AsianPhrases:      []string{"shaoxing cooking wine"},
	}
	first := runWithDefaultSeeds(t, evidence)
	second := runWithDefaultSeeds(t, evidence)

	assert.Equal(t, first.Catalog, second.Catalog)
	assert.Equal(t, first.Quality, second.Quality)
}

func TestRunSignalsWidenCatalog(t *testing.T) {
	base := runWithDefaultSeeds(t, signals.Evidence{})
	widened := runWithDefaultSeeds(t, signals.Evidence{
		MainstreamPhrases: []string{"pork belly", "broccoli florets"},
	})
	assert.Equal(t, len(base.Catalog)+2, len(widened.Catalog))
}

func TestRunReportsFailedSources(t *testing.T) {
	result := runWithDefaultSeeds(t, signals.Evidence{
		Snapshot: signals.Snapshot{Sources: []signals.SourceResult{
			{URL: "http://ok.test/feed"},
			{URL: "http://down.test/feed", Error: "HTTP 503"},
		}},
	})
	assert.Equal(t, []string{reportNote, "source http://down.test/feed failed: HTTP 503"}, result.Report.Notes)
}

func TestWriteOutputsRoundTrip(t *testing.T) {
	result := runWithDefaultSeeds(t, signals.Evidence{})
	dir := filepath.Join(t.TempDir(), "generated")
	snapshot := signals.Snapshot{GeneratedAt: "2026-10-15T03:00:00Z", Sources: []signals.SourceResult{}}

	require.NoError(t, WriteOutputs(dir, result, snapshot))

	for _, name := range []string{dataset.SnapshotFile, dataset.CatalogFile, dataset.RecipesFile, dataset.ReportFile} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasSuffix(string(raw), "\n"), name)
	}

	generated := dataset.LoadGenerated(dir)
	assert.Equal(t, result.Catalog, generated.Catalog)
	assert.Len(t, generated.Recipes, len(result.Quality.Accepted))
	require.NotNil(t, generated.Report)
	assert.Equal(t, result.Report, *generated.Report)
}
