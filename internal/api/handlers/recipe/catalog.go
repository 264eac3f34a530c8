package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinner-recommender/internal/pkg/common"
)

// CatalogResponse 指定市場的食材目錄
type CatalogResponse struct {
	Market common.Market                  `json:"market"`
	Count  int                            `json:"count"`
	Items  []common.IngredientCatalogItem `json:"items"`
}

// HandleIngredientCatalog 列出市場可購得的食材
func (h *Handler) HandleIngredientCatalog(c *gin.Context) {
	requestID(c)

	market, err := parseMarket(c.Query("market"))
	if err != nil {
		common.WriteError(c, err)
		return
	}

	items := h.data.CatalogByMarket(market)
	c.JSON(http.StatusOK, CatalogResponse{
		Market: market,
		Count:  len(items),
		Items:  items,
	})
}

// HandleBuildReport 回傳最近一次離線建置的報告，未建置時為 null
func (h *Handler) HandleBuildReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Report)
}
