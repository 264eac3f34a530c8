package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinner-recommender/internal/core/cache"
	"dinner-recommender/internal/core/dataset"
	"dinner-recommender/internal/core/generator"
	"dinner-recommender/internal/core/pipeline"
	"dinner-recommender/internal/core/signals"
	"dinner-recommender/internal/infrastructure/config"
	"dinner-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.App.Name+"-initdata", cfg.LogLevel, cfg.App.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		common.LogError("資料建置失敗", zap.Error(err))
		common.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	seeds, err := dataset.DefaultSeeds()
	if err != nil {
		return err
	}

	evidence, err := loadEvidence(ctx, cfg)
	if err != nil {
		return err
	}

	result := pipeline.Run(seeds, evidence, generator.Options{
		TargetCount:    cfg.Pipeline.TargetCount,
		MaxCookMinutes: cfg.Pipeline.MaxCookMinutes,
	}, time.Now())

	if err := pipeline.WriteOutputs(cfg.Pipeline.OutputDir, result, evidence.Snapshot); err != nil {
		return err
	}

	common.LogInfo("建置檔案已寫出",
		zap.String("output_dir", cfg.Pipeline.OutputDir),
		zap.Int("ingredients", result.Report.IngredientCount),
		zap.Int("recipes", result.Report.RecipeCount),
		zap.Int("rejected", result.Report.RejectedRecipes),
	)
	return nil
}

// loadEvidence 有指定離線證據檔時直接讀取，否則抓取設定的超市頁面
func loadEvidence(ctx context.Context, cfg *config.Config) (signals.Evidence, error) {
	if cfg.Signals.EvidenceFile != "" {
		common.LogInfo("使用離線訊號檔", zap.String("path", cfg.Signals.EvidenceFile))
		return signals.LoadEvidenceFile(cfg.Signals.EvidenceFile)
	}

	store, err := cache.NewStore(&cfg.Cache)
	if err != nil {
		common.LogWarn("緩存初始化失敗，改為不使用緩存", zap.Error(err))
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return signals.NewCollector(&cfg.Signals, store).Collect(ctx)
}
