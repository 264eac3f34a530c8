package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-recommender/internal/infrastructure/metrics"
	"dinner-recommender/internal/pkg/common"
)

// ProfileInput 使用者設定，未提供時依市場產生預設值
type ProfileInput struct {
	ID             string   `json:"id"`
	PrimaryMarket  string   `json:"primaryMarket"`
	Timezone       string   `json:"timezone"`
	MaxCookMinutes int      `json:"maxCookMinutes" binding:"omitempty,min=1,max=180"`
	DietPrefs      []string `json:"dietPrefs"`
}

// DinnerRequest 晚餐推薦請求，庫存快照隨請求提供
type DinnerRequest struct {
	Market   string              `json:"market"`
	Timezone string              `json:"timezone"`
	Profile  *ProfileInput       `json:"userProfile"`
	Pantry   []common.PantryItem `json:"pantry" binding:"dive"`
}

// MatchWithRecipe 配對結果附帶食譜內容
type MatchWithRecipe struct {
	common.RecipeMatchResult
	Recipe *common.Recipe `json:"recipe,omitempty"`
}

// DinnerResponse 晚餐推薦響應
type DinnerResponse struct {
	Profile     common.UserProfile `json:"profile"`
	Market      common.Market      `json:"market"`
	Timezone    string             `json:"timezone"`
	Full        []MatchWithRecipe  `json:"full"`
	Partial     []MatchWithRecipe  `json:"partial"`
	ExpiryFirst []MatchWithRecipe  `json:"expiryFirst"`
}

// HandleDinnerRecommendation 依庫存推薦晚餐
func (h *Handler) HandleDinnerRecommendation(c *gin.Context) {
	reqID := requestID(c)

	var req DinnerRequest
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
	profile, err := h.resolveProfile(req, market, reqID)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	now, timezone, err := localNow(h.now(), profile.Timezone, profile.PrimaryMarket)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	profile.Timezone = timezone

	pantry := normalizePantry(req.Pantry, h.data.Lexicon)
	output := h.engine.Recommend(pantry, profile, now)

	resp := DinnerResponse{
		Profile:     profile,
		Market:      market,
		Timezone:    timezone,
		Full:        h.withRecipes(output.Full),
		Partial:     h.withRecipes(output.Partial),
		ExpiryFirst: h.withRecipes(output.ExpiryFirst),
	}

	metrics.RecommendationMatches.WithLabelValues(string(common.MatchFull)).Add(float64(len(resp.Full)))
	metrics.RecommendationMatches.WithLabelValues(string(common.MatchPartial)).Add(float64(len(resp.Partial)))
	metrics.RecommendationMatches.WithLabelValues(string(common.MatchExpiryFirst)).Add(float64(len(resp.ExpiryFirst)))

	common.LogInfo("晚餐推薦完成",
		zap.String("request_id", reqID),
		zap.Int("pantry_items", len(pantry)),
		zap.Int("full", len(resp.Full)),
		zap.Int("partial", len(resp.Partial)),
		zap.Int("expiry_first", len(resp.ExpiryFirst)),
	)

	c.JSON(http.StatusOK, resp)
}

// resolveProfile 請求中的設定優先，缺少的欄位以市場預設補齊
func (h *Handler) resolveProfile(req DinnerRequest, market common.Market, reqID string) (common.UserProfile, error) {
	profile := common.UserProfile{
		ID:             reqID,
		PrimaryMarket:  market,
		Timezone:       req.Timezone,
		MaxCookMinutes: defaultMaxCookMinutes,
		DietPrefs:      []string{},
	}
	if req.Profile == nil {
		return profile, nil
	}

	in := req.Profile
	if in.ID != "" {
		profile.ID = in.ID
	}
	if in.PrimaryMarket != "" {
		primary, err := parseMarket(in.PrimaryMarket)
		if err != nil {
			return common.UserProfile{}, err
		}
		profile.PrimaryMarket = primary
	}
	if in.Timezone != "" {
		profile.Timezone = in.Timezone
	}
	if in.MaxCookMinutes > 0 {
		profile.MaxCookMinutes = in.MaxCookMinutes
	}
	if in.DietPrefs != nil {
		profile.DietPrefs = in.DietPrefs
	}
	return profile, nil
}

func (h *Handler) withRecipes(results []common.RecipeMatchResult) []MatchWithRecipe {
	out := make([]MatchWithRecipe, 0, len(results))
	for _, r := range results {
		item := MatchWithRecipe{RecipeMatchResult: r}
		if recipe, ok := h.engine.Recipe(r.RecipeID); ok {
			item.Recipe = &recipe
		}
		out = append(out, item)
	}
	return out
}
