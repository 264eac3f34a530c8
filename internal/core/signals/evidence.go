// Package signals 收集超市的市場訊號短語
package signals

import (
	"fmt"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/pkg/common"
)

// 來源類型
const (
	KindMainstream = "mainstream"
	KindAsian      = "asian"
)

// SourceResult 單一來源的收集結果；失敗時 Tokens 為空並記錄錯誤
type SourceResult struct {
	Source     string   `json:"source"`
	URL        string   `json:"url"`
	SignalType string   `json:"signalType"`
	Tokens     []string `json:"tokens"`
	Error      string   `json:"error,omitempty"`
}

// Snapshot 一次收集的完整紀錄
type Snapshot struct {
	GeneratedAt string         `json:"generatedAt"`
	Sources     []SourceResult `json:"sources"`
}

// Evidence 整理後的主流與亞洲超市短語
type Evidence struct {
	MainstreamPhrases []string `json:"mainstreamPhrases"`
	AsianPhrases      []string `json:"asianPhrases"`
	Snapshot          Snapshot `json:"snapshot"`
}

// CatalogEvidence 轉成目錄建置所需的格式
func (e Evidence) CatalogEvidence() catalog.Evidence {
	return catalog.Evidence{
		MainstreamPhrases: e.MainstreamPhrases,
		AsianPhrases:      e.AsianPhrases,
	}
}

// FromSources 依來源類型彙整短語
func FromSources(generatedAt string, sources []SourceResult) Evidence {
	var mainstream, asian []string
	for _, src := range sources {
		switch src.SignalType {
		case KindAsian:
			asian = append(asian, src.Tokens...)
		default:
			mainstream = append(mainstream, src.Tokens...)
		}
	}
	return Evidence{
		MainstreamPhrases: UniquePhrases(mainstream),
		AsianPhrases:      UniquePhrases(asian),
		Snapshot: Snapshot{
			GeneratedAt: generatedAt,
			Sources:     sources,
		},
	}
}

// LoadEvidenceFile 讀取先前輸出的訊號檔，短語會重新正規化
func LoadEvidenceFile(path string) (Evidence, error) {
	var evidence Evidence
	if err := common.ReadJSONFile(path, &evidence); err != nil {
		return Evidence{}, fmt.Errorf("read evidence file: %w", err)
	}
	evidence.MainstreamPhrases = normalizeAll(evidence.MainstreamPhrases)
	evidence.AsianPhrases = normalizeAll(evidence.AsianPhrases)
	if evidence.Snapshot.Sources == nil {
		evidence.Snapshot.Sources = []SourceResult{}
	}
	return evidence, nil
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, NormalizePhrase(v))
	}
	return UniquePhrases(out)
}
