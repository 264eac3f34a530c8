package recipe

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-recommender/internal/core/dataset"
	"dinner-recommender/internal/core/recommend"
	"dinner-recommender/internal/pkg/common"
)

// Handler 食譜與推薦處理程序
type Handler struct {
	data   *dataset.Dataset
	engine *recommend.Engine
	now    func() time.Time
}

// NewHandler 創建新的處理程序
func NewHandler(data *dataset.Dataset) *Handler {
	return &Handler{
		data:   data,
		engine: recommend.NewEngine(data.Recipes, data.Lexicon),
		now:    time.Now,
	}
}

// RecipeDetailResponse 食譜與精簡步驟
type RecipeDetailResponse struct {
	Recipe   common.Recipe    `json:"recipe"`
	AIAssist recommend.Assist `json:"aiAssist"`
}

// HandleRecipeDetail 取得單一食譜
func (h *Handler) HandleRecipeDetail(c *gin.Context) {
	reqID := requestID(c)

	market, err := parseMarket(c.Query("market"))
	if err != nil {
		common.WriteError(c, err)
		return
	}

	id := c.Param("id")
	recipe, ok := h.engine.Recipe(id)
	if !ok {
		common.LogWarn("食譜不存在",
			zap.String("request_id", reqID),
			zap.String("recipe_id", id),
		)
		common.WriteError(c, common.ErrRecipeNotFound)
		return
	}

	c.JSON(http.StatusOK, RecipeDetailResponse{
		Recipe:   recipe,
		AIAssist: recommend.BuildAssist(recipe, market),
	})
}
