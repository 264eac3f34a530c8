package recommend

import (
	"fmt"
	"time"

	"dinner-recommender/internal/pkg/common"
)

// MarketConfig 市場相關設定
type MarketConfig struct {
	Market                common.Market
	Currency              string
	DefaultTimezone       string
	StoreTypeByIngredient map[string]common.StoreType
	PackageSuggestions    map[string]string
}

var asianStoreItems = map[string]common.StoreType{
	"doubanjiang":   common.StoreAsian,
	"shaoxing_wine": common.StoreAsian,
	"oyster_sauce":  common.StoreAsian,
	"bok_choy":      common.StoreAsian,
	"choy_sum":      common.StoreAsian,
	"tofu_firm":     common.StoreAsian,
	"sesame_oil":    common.StoreAsian,
}

var marketConfigs = map[common.Market]MarketConfig{
	common.MarketNZ: {
		Market:                common.MarketNZ,
		Currency:              "NZD",
		DefaultTimezone:       "Pacific/Auckland",
		StoreTypeByIngredient: asianStoreItems,
		PackageSuggestions: map[string]string{
			"rice":          "5kg bag",
			"noodles":       "400g pack",
			"egg":           "dozen",
			"soy_sauce":     "500ml bottle",
			"chicken_thigh": "500g tray",
			"beef_slice":    "400g tray",
			"tofu_firm":     "300g block",
		},
	},
	common.MarketAU: {
		Market:                common.MarketAU,
		Currency:              "AUD",
		DefaultTimezone:       "Australia/Sydney",
		StoreTypeByIngredient: asianStoreItems,
		PackageSuggestions: map[string]string{
			"rice":          "5kg bag",
			"noodles":       "500g pack",
			"egg":           "12 pack",
			"soy_sauce":     "500ml bottle",
			"chicken_thigh": "500g pack",
			"tofu_firm":     "300g block",
		},
	},
}

// ConfigFor 取得市場設定
func ConfigFor(market common.Market) (MarketConfig, bool) {
	cfg, ok := marketConfigs[market]
	return cfg, ok
}

// StoreType 建議購買的商店，未設定為 local
func (m MarketConfig) StoreType(key string) common.StoreType {
	if t, ok := m.StoreTypeByIngredient[key]; ok {
		return t
	}
	return common.StoreLocal
}

// SuggestedPackage 建議包裝，未設定為 standard pack
func (m MarketConfig) SuggestedPackage(key string) string {
	if p, ok := m.PackageSuggestions[key]; ok {
		return p
	}
	return "standard pack"
}

// ResolveLocation 優先使用設定的時區，空字串時使用市場預設
func ResolveLocation(timezone string, market common.Market) (*time.Location, error) {
	if timezone == "" {
		cfg, ok := ConfigFor(market)
		if !ok {
			return nil, common.ErrInvalidMarket.Wrap(fmt.Errorf("unknown market %q", market))
		}
		timezone = cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, common.ErrInvalidTimezone.Wrap(err)
	}
	return loc, nil
}
