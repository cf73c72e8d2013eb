package recipe

import (
	"sort"
	"strings"
)

// template 以主要食材為鍵的備用食譜模板
type template struct {
	prefix           string
	cookingTime      int
	baseInstructions []string
}

// combination 常見食材組合
type combination struct {
	title        string
	instructions []string
}

var templates = map[string]template{
	"rice": {
		prefix:      "Mexican-Style",
		cookingTime: 25,
		baseInstructions: []string{
			"Rinse the rice thoroughly until water runs clear",
			"Heat oil in a large pan over medium heat",
			"Add rice and toast for 2-3 minutes",
			"Add water (2 cups for every cup of rice)",
			"Bring to a boil, then reduce heat and simmer for 18-20 minutes",
			"Let stand for 5 minutes, then fluff with a fork",
		},
	},
	"beans": {
		prefix:      "Seasoned",
		cookingTime: 30,
		baseInstructions: []string{
			"Rinse beans thoroughly",
			"Heat oil in a pan over medium heat",
			"Add beans and your preferred seasonings",
			"Simmer for 15-20 minutes until heated through",
			"Mash slightly if desired",
		},
	},
	"bread": {
		prefix:      "Toasted",
		cookingTime: 10,
		baseInstructions: []string{
			"Slice bread to desired thickness",
			"Toast until golden brown",
			"Arrange on a serving plate",
		},
	},
	"salsa": {
		prefix:      "Fresh",
		cookingTime: 15,
		baseInstructions: []string{
			"Combine salsa with other ingredients",
			"Mix well to incorporate flavors",
			"Let stand for 5 minutes before serving",
		},
	},
}

var genericTemplate = template{
	prefix:      "Fresh",
	cookingTime: 25,
	baseInstructions: []string{
		"Prepare all ingredients",
		"If using rice or beans, cook them first",
		"Combine ingredients in a large bowl",
		"Add seasonings to taste",
		"For best results, let stand 5 minutes before serving",
	},
}

var finishingSteps = []string{
	"Combine with remaining ingredients",
	"Adjust seasonings to taste",
}

// combinations 的鍵會經過 combinationKey 正規化
var combinations = func() map[string]combination {
	raw := map[string]combination{
		"bread,beans": {
			title: "Bean Toast",
			instructions: []string{
				"Toast the bread until golden brown",
				"Heat and season the beans",
				"Spread beans over toasted bread",
				"Top with lettuce and salsa if available",
				"Serve immediately while warm",
			},
		},
		"rice,beans": {
			title: "Rice and Beans Bowl",
			instructions: []string{
				"Cook rice according to package instructions",
				"Heat and season the beans",
				"Combine rice and beans in a bowl",
				"Top with lettuce and salsa if available",
				"Garnish with fresh herbs if desired",
			},
		},
	}
	out := make(map[string]combination, len(raw))
	for key, c := range raw {
		out[combinationKey(strings.Split(key, ","))] = c
	}
	return out
}()

// defaultQuantities 各食材的預設份量
var defaultQuantities = map[string]string{
	"rice":    "2 cups rice",
	"beans":   "1 can beans, drained and rinsed",
	"bread":   "2 slices bread",
	"salsa":   "1/2 cup salsa",
	"lettuce": "1 cup shredded lettuce",
}

// Synthesize 不呼叫外部服務，依規則表產生食譜
//
// 相同輸入永遠產生相同輸出。
func Synthesize(in GenerateInput) Record {
	servings := servingsOrDefault(in.Servings)
	rec := Record{
		Ingredients:     ingredientLines(in.Ingredients),
		Servings:        servings,
		NutritionalInfo: EstimateNutrition(len(in.Ingredients), servings),
		DietaryTags:     append(TagList{}, in.Dietary...),
	}

	if c, ok := combinations[combinationKey(in.Ingredients)]; ok {
		rec.Title = c.title
		rec.Instructions = append(StringList{}, c.instructions...)
		rec.CookingTime = DefaultCookingTime
		rec.Difficulty = DifficultyEasy
		return rec
	}

	tmpl := genericTemplate
	if len(in.Ingredients) > 0 {
		if t, ok := templates[strings.ToLower(strings.TrimSpace(in.Ingredients[0]))]; ok {
			tmpl = t
		}
	}

	dietary := in.DietaryText()
	title := tmpl.prefix + " " + strings.Join(in.Ingredients, " and ")
	if dietary != "" {
		title = dietary + " " + title
	}
	rec.Title = strings.TrimSpace(title)

	instructions := make(StringList, 0, len(tmpl.baseInstructions)+len(finishingSteps)+1)
	instructions = append(instructions, tmpl.baseInstructions...)
	instructions = append(instructions, finishingSteps...)
	if dietary != "" {
		instructions = append(instructions, "Ensure all ingredients comply with "+dietary+" requirements")
	}
	rec.Instructions = instructions
	rec.CookingTime = tmpl.cookingTime

	rec.Difficulty = DifficultyEasy
	if len(in.Ingredients) > 3 {
		rec.Difficulty = DifficultyMedium
	}

	return rec
}

// combinationKey 小寫、排序後以逗號連接
func combinationKey(ingredients []string) string {
	keys := make([]string, len(ingredients))
	for i, ing := range ingredients {
		keys[i] = strings.ToLower(strings.TrimSpace(ing))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func ingredientLines(ingredients []string) StringList {
	lines := make(StringList, 0, len(ingredients))
	for _, ing := range ingredients {
		if line, ok := defaultQuantities[strings.ToLower(strings.TrimSpace(ing))]; ok {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, "1 cup "+ing)
	}
	if len(lines) == 0 {
		lines = append(lines, "1 cup mixed ingredients")
	}
	return lines
}
