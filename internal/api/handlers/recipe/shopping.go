package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-recommender/internal/core/recommend"
	"dinner-recommender/internal/pkg/common"
)

// ShoppingListRequest 由食譜產生購物清單
type ShoppingListRequest struct {
	Market    string              `json:"market"`
	RecipeIDs []string            `json:"recipeIds" binding:"required,min=1,dive,required"`
	Pantry    []common.PantryItem `json:"pantry"`
}

// ShoppingListResponse 購物清單響應
type ShoppingListResponse struct {
	Market common.Market             `json:"market"`
	Items  []common.ShoppingListItem `json:"items"`
}

// ExpiryAlertRequest 到期提醒請求
type ExpiryAlertRequest struct {
	Market   string              `json:"market"`
	Timezone string              `json:"timezone"`
	Pantry   []common.PantryItem `json:"pantry"`
}

// ExpiryAlertResponse 到期提醒響應
type ExpiryAlertResponse struct {
	Market   common.Market `json:"market"`
	Timezone string        `json:"timezone"`
	recommend.ExpiryAlerts
}

// HandleShoppingList 彙整缺料
func (h *Handler) HandleShoppingList(c *gin.Context) {
	reqID := requestID(c)

	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	market, err := parseMarket(req.Market)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	pantry := normalizePantry(req.Pantry, h.data.Lexicon)
	items := h.engine.BuildShoppingList(req.RecipeIDs, pantry, market)

	common.LogInfo("購物清單完成",
		zap.String("request_id", reqID),
		zap.Strings("recipe_ids", req.RecipeIDs),
		zap.Int("items", len(items)),
	)

	c.JSON(http.StatusOK, ShoppingListResponse{Market: market, Items: items})
}

// HandleExpiryAlerts 列出即將到期的庫存
func (h *Handler) HandleExpiryAlerts(c *gin.Context) {
	reqID := requestID(c)

	var req ExpiryAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	market, err := parseMarket(req.Market)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	now, timezone, err := localNow(h.now(), req.Timezone, market)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	alerts := recommend.BuildExpiryAlerts(normalizePantry(req.Pantry, h.data.Lexicon), now)
	c.JSON(http.StatusOK, ExpiryAlertResponse{
		Market:       market,
		Timezone:     timezone,
		ExpiryAlerts: alerts,
	})
}
