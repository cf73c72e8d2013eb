package recipe

import (
	"fmt"
	"strings"
)

// ShareText 分享用的純文字摘要
func ShareText(r Record) string {
	var sb strings.Builder
	sb.WriteString(r.Title)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Cooking Time: %d mins\n", r.CookingTime))
	sb.WriteString(fmt.Sprintf("Difficulty: %s\n", r.Difficulty))
	if len(r.DietaryTags) > 0 {
		sb.WriteString(fmt.Sprintf("Dietary: %s\n", joinTags(r.DietaryTags, ", ")))
	}
	return sb.String()
}
