package recipe

import (
	"fmt"
	"strings"

	"recipe-forge/internal/pkg/common"
)

// ParseDietary 解析以逗號分隔的飲食標籤
//
// 大小寫不敏感，回傳標準寫法並去除重複；未知標籤回傳驗證錯誤。
func ParseDietary(s string) ([]DietaryTag, error) {
	tags := []DietaryTag{}
	seen := make(map[DietaryTag]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, ok := lookupTag(part)
		if !ok {
			return nil, common.NewValidationError(fmt.Sprintf(
				"Unknown dietary option %q (allowed: %s)", part, joinTags(AllDietaryTags, ", ")))
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags, nil
}

func lookupTag(s string) (DietaryTag, bool) {
	for _, tag := range AllDietaryTags {
		if strings.EqualFold(string(tag), s) {
			return tag, true
		}
	}
	return "", false
}

// CleanIngredients 去除前後空白並過濾空白食材
func CleanIngredients(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, common.NewValidationError("Please provide ingredients")
	}
	cleaned := make([]string, 0, len(raw))
	for _, ing := range raw {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	if len(cleaned) == 0 {
		return nil, common.NewValidationError("Please provide valid ingredients")
	}
	return cleaned, nil
}
