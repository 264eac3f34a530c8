package recommend

import (
	"sort"
	"time"

	"dinner-recommender/internal/pkg/common"
)

const priorityAlertCount = 3

// ExpiryAlerts 到期提醒與最優先處理的項目
type ExpiryAlerts struct {
	Alerts        []common.ExpiryAlert `json:"alerts"`
	PriorityItems []common.ExpiryAlert `json:"priorityItems"`
}

// BuildExpiryAlerts 列出 0 到 3 天內到期的庫存，依剩餘天數排序
func BuildExpiryAlerts(pantry []common.PantryItem, now time.Time) ExpiryAlerts {
	alerts := []common.ExpiryAlert{}
	for _, item := range pantry {
		days, ok := DaysToExpiry(item.ExpiresAt, now)
		if !ok || days < 0 || days > expiryWindowDays {
			continue
		}
		stage := common.ExpiryThreeDay
		if days == 0 {
			stage = common.ExpiryToday
		}
		alerts = append(alerts, common.ExpiryAlert{
			ItemID:        item.ID,
			IngredientKey: item.IngredientKey,
			NameZh:        item.NameZh,
			ExpiresAt:     item.ExpiresAt,
			DaysToExpiry:  days,
			Stage:         stage,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysToExpiry < alerts[j].DaysToExpiry
	})

	priority := alerts
	if len(priority) > priorityAlertCount {
		priority = priority[:priorityAlertCount]
	}
	return ExpiryAlerts{
		Alerts:        alerts,
		PriorityItems: append([]common.ExpiryAlert{}, priority...),
	}
}
