package recipe

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipe-forge/internal/pkg/common"

	"go.uber.org/zap"
)

// 標籤式段落：標籤、冒號、直到下一個標籤的內容
var (
	titlePattern        = regexp.MustCompile(`(?i)Title:[ \t]*(\S.*)`)
	cookingTimePattern  = regexp.MustCompile(`(?i)Cooking Time:\s*(\d+)`)
	difficultyPattern   = regexp.MustCompile(`(?i)Difficulty:\s*(Easy|Medium|Hard)`)
	ingredientsPattern  = regexp.MustCompile(`(?is)Ingredients:(.*?)(?:Instructions:|$)`)
	instructionsPattern = regexp.MustCompile(`(?is)Instructions:(.*?)(?:Cooking Time:|$)`)
)

var defaultInstructions = []string{"Combine all ingredients", "Cook until done"}

// Normalize 從模型輸出的自由文字解析出完整食譜
//
// 任何欄位解析失敗都使用預設值；解析過程發生 panic 時整筆改用全預設值。
// 對任意輸入（包含空字串）都會回傳合法的 Record。
func Normalize(text string, in GenerateInput) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			common.LogWarn("Recipe text normalization panicked, using defaults",
				zap.Any("panic", r),
				zap.Int("text_length", len(text)),
			)
			rec = defaultRecord(in)
		}
	}()

	rec = defaultRecord(in)

	if m := titlePattern.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			rec.Title = title
		}
	}

	if m := ingredientsPattern.FindStringSubmatch(text); m != nil {
		if lines := splitLines(m[1]); len(lines) > 0 {
			rec.Ingredients = lines
		}
	}

	if m := instructionsPattern.FindStringSubmatch(text); m != nil {
		if lines := splitLines(m[1]); len(lines) > 0 {
			rec.Instructions = lines
		}
	}

	if m := cookingTimePattern.FindStringSubmatch(text); m != nil {
		if minutes, err := strconv.Atoi(m[1]); err == nil && minutes > 0 {
			rec.CookingTime = minutes
		}
	}

	if m := difficultyPattern.FindStringSubmatch(text); m != nil {
		rec.Difficulty = canonicalDifficulty(m[1])
	}

	return rec
}

// defaultRecord 所有欄位都使用預設值的食譜
func defaultRecord(in GenerateInput) Record {
	servings := servingsOrDefault(in.Servings)
	return Record{
		Title:           fallbackTitle(in.Ingredients),
		Ingredients:     defaultIngredientLines(in.Ingredients),
		Instructions:    append(StringList{}, defaultInstructions...),
		CookingTime:     DefaultCookingTime,
		Difficulty:      DifficultyMedium,
		Servings:        servings,
		NutritionalInfo: EstimateNutrition(len(in.Ingredients), servings),
		DietaryTags:     append(TagList{}, in.Dietary...),
	}
}

// fallbackTitle "<首字大寫的第一個食材> Recipe"
func fallbackTitle(ingredients []string) string {
	if len(ingredients) == 0 || ingredients[0] == "" {
		return "Chef's Choice Recipe"
	}
	return capitalize(ingredients[0]) + " Recipe"
}

func defaultIngredientLines(ingredients []string) StringList {
	lines := make(StringList, 0, len(ingredients))
	for _, ing := range ingredients {
		lines = append(lines, "1 cup "+ing)
	}
	if len(lines) == 0 {
		lines = append(lines, "1 cup mixed ingredients")
	}
	return lines
}

// splitLines 依換行切割並去除空行
func splitLines(section string) StringList {
	var lines StringList
	for _, line := range strings.Split(section, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func canonicalDifficulty(s string) Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
