package signals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dinner-recommender/internal/core/cache"
	"dinner-recommender/internal/infrastructure/config"
	"dinner-recommender/internal/infrastructure/metrics"
	"dinner-recommender/internal/pkg/common"
)

// CacheKey 訊號結果在緩存中的鍵
const CacheKey = "signals:evidence"

const userAgent = "dinner-recommender-bot/1.0"

type source struct {
	url  string
	kind string
}

type feed struct {
	Tokens []string `json:"tokens"`
}

// Collector 從設定的來源抓取已切好詞的短語清單
type Collector struct {
	client      *resty.Client
	sources     []source
	concurrency int
	store       cache.Store
	now         func() time.Time
}

// NewCollector 創建收集器，store 可為 nil
func NewCollector(cfg *config.SignalsConfig, store cache.Store) *Collector {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	sources := make([]source, 0, len(cfg.MainstreamURLs)+len(cfg.AsianURLs))
	for _, u := range cfg.MainstreamURLs {
		sources = append(sources, source{url: u, kind: KindMainstream})
	}
	for _, u := range cfg.AsianURLs {
		sources = append(sources, source{url: u, kind: KindAsian})
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Collector{
		client:      client,
		sources:     sources,
		concurrency: concurrency,
		store:       store,
		now:         time.Now,
	}
}

// Collect 併發抓取所有來源；單一來源失敗只記錄在快照中，且該次結果不寫入緩存
func (c *Collector) Collect(ctx context.Context) (Evidence, error) {
	if evidence, ok := c.fromCache(ctx); ok {
		return evidence, nil
	}

	results := make([]SourceResult, len(c.sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, src := range c.sources {
		i, src := i, src
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = c.fetch(gctx, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Evidence{}, err
	}
	if err := ctx.Err(); err != nil {
		return Evidence{}, err
	}

	evidence := FromSources(c.now().UTC().Format(time.RFC3339), results)
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	common.LogInfo("市場訊號收集完成",
		zap.Int("sources", len(results)),
		zap.Int("failed", failed),
		zap.Int("mainstream_phrases", len(evidence.MainstreamPhrases)),
		zap.Int("asian_phrases", len(evidence.AsianPhrases)),
	)

	if failed > 0 {
		common.LogWarn("部分來源失敗，不寫入緩存", zap.Int("failed", failed))
		return evidence, nil
	}
	c.toCache(ctx, evidence)
	return evidence, nil
}

func (c *Collector) fetch(ctx context.Context, src source) SourceResult {
	result := SourceResult{
		Source:     sourceName(src.url),
		URL:        src.url,
		SignalType: src.kind,
		Tokens:     []string{},
	}

	var body feed
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(src.url)
	if err != nil {
		result.Error = err.Error()
	} else if resp.StatusCode() != http.StatusOK {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode())
	}
	if result.Error != "" {
		metrics.SignalSourceFailures.Inc()
		common.LogWarn("訊號來源抓取失敗",
			zap.String("url", src.url),
			zap.String("error", result.Error),
		)
		return result
	}

	normalized := make([]string, 0, len(body.Tokens))
	for _, token := range body.Tokens {
		normalized = append(normalized, NormalizePhrase(token))
	}
	result.Tokens = UniquePhrases(normalized)
	return result
}

func (c *Collector) fromCache(ctx context.Context) (Evidence, bool) {
	if c.store == nil {
		return Evidence{}, false
	}
	raw, err := c.store.Get(ctx, CacheKey)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取訊號緩存失敗", zap.Error(err))
		}
		return Evidence{}, false
	}
	var evidence Evidence
	if err := common.ParseJSONBytes(raw, &evidence); err != nil {
		common.LogWarn("訊號緩存格式錯誤", zap.Error(err))
		return Evidence{}, false
	}
	return evidence, true
}

func (c *Collector) toCache(ctx context.Context, evidence Evidence) {
	if c.store == nil {
		return
	}
	raw, err := json.Marshal(evidence)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, CacheKey, raw); err != nil {
		common.LogWarn("寫入訊號緩存失敗", zap.Error(err))
	}
}

// sourceName 以網址主機名稱作為來源名稱
func sourceName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Hostname()
}
