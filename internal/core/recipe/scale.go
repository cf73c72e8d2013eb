package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// quantityPattern 數量（整數、小數或 a/b 分數）、可選單位、其餘為品項
var quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:/\d+(?:\.\d+)?)?)\s*([a-zA-Z]+)?\s+(.+)$`)

// 營養估算基準值（每項食材）
const (
	baseCalories      = 150
	baseProtein       = 5
	baseCarbohydrates = 20
	baseFat           = 5
)

// ScaleIngredient 依倍率縮放食材行的數量，單位與品項保持不變
//
// 無法解析數量的行原樣返回。混合分數（"1 1/2"）與範圍（"2-3"）不支援。
func ScaleIngredient(line string, factor float64) string {
	m := quantityPattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}

	quantity, ok := parseQuantity(m[1])
	if !ok {
		return line
	}

	scaled := FormatQuantity(roundHalfUp(quantity*factor, 1))
	unit, item := m[2], m[3]
	if unit != "" {
		return scaled + " " + unit + " " + item
	}
	return scaled + " " + item
}

// ScaleIngredients 縮放所有食材行，回傳新切片
func ScaleIngredients(lines []string, factor float64) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ScaleIngredient(line, factor)
	}
	return out
}

// ScaleNutrition 依倍率縮放營養資訊，四捨五入到整數
func ScaleNutrition(n Nutrition, factor float64) Nutrition {
	return Nutrition{
		Calories:      roundHalfUp(n.Calories*factor, 0),
		Protein:       roundHalfUp(n.Protein*factor, 0),
		Carbohydrates: roundHalfUp(n.Carbohydrates*factor, 0),
		Fat:           roundHalfUp(n.Fat*factor, 0),
	}
}

// EstimateNutrition 以食材數量粗估每人份營養
func EstimateNutrition(ingredientCount, servings int) Nutrition {
	n := float64(ingredientCount)
	s := float64(servingsOrDefault(servings))
	return Nutrition{
		Calories:      roundHalfUp(baseCalories*n/s, 0),
		Protein:       roundHalfUp(baseProtein*n/s, 0),
		Carbohydrates: roundHalfUp(baseCarbohydrates*n/s, 0),
		Fat:           roundHalfUp(baseFat*n/s, 0),
	}
}

// FormatQuantity 輸出數量，去除多餘的小數 0（4.0 -> "4"）
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// parseQuantity 解析數量字串，分數以分子/分母計算
func parseQuantity(token string) (float64, bool) {
	if num, denom, found := strings.Cut(token, "/"); found {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(denom, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	q, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// roundHalfUp 四捨五入到指定小數位，.5 一律進位
func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	// 先修正浮點誤差（例如 2.675*100 = 267.49999...）
	shifted := math.Round(v*p*1e6) / 1e6
	return math.Floor(shifted+0.5) / p
}
