package recipe

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dinner-recommender/internal/core/catalog"
	"dinner-recommender/internal/core/recommend"
	"dinner-recommender/internal/pkg/common"
)

const defaultMaxCookMinutes = 30

// requestID 取得請求 ID 並回寫到響應標頭
func requestID(c *gin.Context) string {
	id := common.RequestID(c)
	c.Header("X-Request-ID", id)
	return id
}

// parseMarket 空值預設為 NZ
func parseMarket(raw string) (common.Market, error) {
	market := common.Market(strings.ToUpper(strings.TrimSpace(raw)))
	if market == "" {
		return common.MarketNZ, nil
	}
	if _, ok := recommend.ConfigFor(market); !ok {
		return "", common.ErrInvalidMarket
	}
	return market, nil
}

// localNow 將目前時間轉到使用者時區
func localNow(now time.Time, timezone string, market common.Market) (time.Time, string, error) {
	loc, err := recommend.ResolveLocation(timezone, market)
	if err != nil {
		return time.Time{}, "", err
	}
	return now.In(loc), loc.String(), nil
}

// normalizePantry 只有名稱的庫存項目以詞庫補上 ingredientKey，缺少 id 時依順序編號
func normalizePantry(items []common.PantryItem, lexicon *catalog.Lexicon) []common.PantryItem {
	out := make([]common.PantryItem, 0, len(items))
	for i, item := range items {
		if item.IngredientKey == "" {
			name := item.NameZh
			if name == "" {
				name = item.NameEn
			}
			entry := lexicon.Normalize(name)
			item.IngredientKey = entry.Key
			if item.NameZh == "" {
				item.NameZh = entry.NameZh
			}
			if item.NameEn == "" {
				item.NameEn = entry.NameEn
			}
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("item_%d", i+1)
		}
		out = append(out, item)
	}
	return out
}
