package recipe

import (
	"fmt"
	"strings"
)

// BuildPrompt 產生要求模型以標籤段落回覆的提示詞
func BuildPrompt(in GenerateInput) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a detailed recipe using these ingredients: %s.\n", strings.Join(in.Ingredients, ", ")))
	if dietary := in.DietaryText(); dietary != "" {
		sb.WriteString(fmt.Sprintf("Make it %s.\n", dietary))
	}
	sb.WriteString(fmt.Sprintf("The recipe should serve %d.\n", servingsOrDefault(in.Servings)))
	sb.WriteString("Include exact measurements and detailed cooking instructions.\n")
	sb.WriteString("Format as follows:\n")
	sb.WriteString("Title: [creative recipe name]\n")
	sb.WriteString("Ingredients: [list with measurements, one per line]\n")
	sb.WriteString("Instructions: [numbered steps, one per line]\n")
	sb.WriteString("Cooking Time: [in minutes]\n")
	sb.WriteString("Difficulty: [Easy/Medium/Hard]")
	return sb.String()
}
