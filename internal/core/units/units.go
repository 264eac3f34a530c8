// Package units 處理計量單位換算與數值修約
package units

import (
	"math"

	"dinner-recommender/internal/pkg/common"
)

type family int

const (
	familyMass family = iota + 1
	familyVolume
)

type factor struct {
	family family
	base   float64
}

// 以 g 與 ml 為基準
var factors = map[common.Unit]factor{
	common.UnitGram:       {familyMass, 1},
	common.UnitKilogram:   {familyMass, 1000},
	common.UnitMilliliter: {familyVolume, 1},
	common.UnitLiter:      {familyVolume, 1000},
	common.UnitTablespoon: {familyVolume, 15},
	common.UnitTeaspoon:   {familyVolume, 5},
}

// ConvertUnit 換算數量。同單位直接回傳；跨類別或未知單位回傳 ok=false
func ConvertUnit(quantity float64, from, to common.Unit) (float64, bool) {
	if from == to {
		return quantity, true
	}
	f, okFrom := factors[from]
	t, okTo := factors[to]
	if !okFrom || !okTo || f.family != t.family {
		return 0, false
	}
	return quantity * f.base / t.base, true
}

// SafeRound 四捨五入到指定小數位（0.5 遠離零）
func SafeRound(value float64, precision int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	p := math.Pow(10, float64(precision))
	return math.Round(value*p) / p
}

// Round2 四捨五入到兩位小數
func Round2(value float64) float64 {
	return SafeRound(value, 2)
}

// Clamp01 限制在 [0, 1]
func Clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
