package recommend

import (
	"time"

	"dinner-recommender/internal/core/units"
	"dinner-recommender/internal/pkg/common"
)

// pantryIndex 依 ingredientKey 分組的庫存快照
type pantryIndex map[string][]common.PantryItem

func indexPantry(pantry []common.PantryItem) pantryIndex {
	idx := make(pantryIndex, len(pantry))
	for _, item := range pantry {
		idx[item.IngredientKey] = append(idx[item.IngredientKey], item)
	}
	return idx
}

// quantity 換算到目標單位後加總；無法換算的項目不計
func (idx pantryIndex) quantity(key string, unit common.Unit) float64 {
	total := 0.0
	for _, item := range idx[key] {
		if q, ok := units.ConvertUnit(item.Quantity, item.Unit, unit); ok {
			total += q
		}
	}
	return total
}

func (idx pantryIndex) expiringSoon(key string, now time.Time) bool {
	for _, item := range idx[key] {
		if days, ok := DaysToExpiry(item.ExpiresAt, now); ok && days >= 0 && days <= expiryWindowDays {
			return true
		}
	}
	return false
}

// 沒有時區資訊的格式以 now 的時區解讀
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseExpiry 解析 ISO-8601 到期時間並轉換到 loc
func ParseExpiry(expiresAt string, loc *time.Location) (time.Time, bool) {
	if expiresAt == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, expiresAt); err == nil {
		return t.In(loc), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, expiresAt, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysToExpiry 以 now 的時區計算相差的日曆天數，已過期為負數
func DaysToExpiry(expiresAt string, now time.Time) (int, bool) {
	expiry, ok := ParseExpiry(expiresAt, now.Location())
	if !ok {
		return 0, false
	}
	return calendarDays(now, expiry), true
}

func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
