package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labeledText = `Title: Garlic Rice
Ingredients:
2 cups rice
3 cloves garlic

Instructions:
1. Cook rice
2. Add garlic
Cooking Time: 25 minutes
Difficulty: easy`

func TestNormalize_LabeledText(t *testing.T) {
	in := GenerateInput{Ingredients: []string{"rice", "garlic"}, Servings: 2}

	rec := Normalize(labeledText, in)

	assert.Equal(t, "Garlic Rice", rec.Title)
	assert.Equal(t, StringList{"2 cups rice", "3 cloves garlic"}, rec.Ingredients)
	assert.Equal(t, StringList{"1. Cook rice", "2. Add garlic"}, rec.Instructions)
	assert.Equal(t, 25, rec.CookingTime)
	assert.Equal(t, DifficultyEasy, rec.Difficulty)
	assert.Equal(t, 2, rec.Servings)
	assert.Equal(t, Nutrition{Calories: 150, Protein: 5, Carbohydrates: 20, Fat: 5}, rec.NutritionalInfo)
}

func TestNormalize_EmptyTitleLine(t *testing.T) {
	in := GenerateInput{Ingredients: []string{"rice"}}

	rec := Normalize("Title:\nIngredients:\n1 cup rice\nInstructions:\n1. Boil", in)

	assert.Equal(t, "Rice Recipe", rec.Title)
	assert.Equal(t, StringList{"1 cup rice"}, rec.Ingredients)
}

func TestNormalize_EmptyText(t *testing.T) {
	in := GenerateInput{Ingredients: []string{"rice", "garlic"}, Dietary: []DietaryTag{TagVegan}}

	rec := Normalize("", in)

	assert.Equal(t, "Rice Recipe", rec.Title)
	assert.Equal(t, StringList{"1 cup rice", "1 cup garlic"}, rec.Ingredients)
	assert.Equal(t, StringList{"Combine all ingredients", "Cook until done"}, rec.Instructions)
	assert.Equal(t, DefaultCookingTime, rec.CookingTime)
	assert.Equal(t, DifficultyMedium, rec.Difficulty)
	assert.Equal(t, DefaultServings, rec.Servings)
	assert.Equal(t, TagList{TagVegan}, rec.DietaryTags)
}

func TestNormalize_ZeroCookingTimeUsesDefault(t *testing.T) {
	rec := Normalize("Cooking Time: 0", GenerateInput{Ingredients: []string{"rice"}})
	assert.Equal(t, DefaultCookingTime, rec.CookingTime)
}

func TestNormalize_CaseInsensitiveLabels(t *testing.T) {
	rec := Normalize("TITLE: Loud Soup\ndifficulty: HARD", GenerateInput{Ingredients: []string{"soup"}})
	assert.Equal(t, "Loud Soup", rec.Title)
	assert.Equal(t, DifficultyHard, rec.Difficulty)
}

func TestNormalize_AlwaysValid(t *testing.T) {
	inputs := []string{
		"",
		"no labels at all",
		"Title:",
		"Ingredients:\n\n\nInstructions:\n",
		"Difficulty: Impossible\nCooking Time: soon",
		"\x00\xff\xfe garbage Title:\n",
		labeledText,
	}
	for _, text := range inputs {
		for _, ingredients := range [][]string{nil, {"tofu"}, {"rice", "beans", "salsa"}} {
			rec := Normalize(text, GenerateInput{Ingredients: ingredients})
			require.NoError(t, rec.Validate(), "text=%q ingredients=%v", text, ingredients)
		}
	}
}
