package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareText(t *testing.T) {
	r := Record{Title: "Rice and Beans Bowl", CookingTime: 30, Difficulty: DifficultyEasy}
	assert.Equal(t, "Rice and Beans Bowl\n\nCooking Time: 30 mins\nDifficulty: Easy\n", ShareText(r))

	r.DietaryTags = TagList{TagVegan, TagGlutenFree}
	assert.Equal(t, "Rice and Beans Bowl\n\nCooking Time: 30 mins\nDifficulty: Easy\nDietary: Vegan, Gluten-Free\n", ShareText(r))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(GenerateInput{Ingredients: []string{"rice", "beans"}, Dietary: []DietaryTag{TagVegan}, Servings: 2})

	assert.Contains(t, p, "Create a detailed recipe using these ingredients: rice, beans.")
	assert.Contains(t, p, "Make it Vegan.")
	assert.Contains(t, p, "The recipe should serve 2.")
	for _, label := range []string{"Title:", "Ingredients:", "Instructions:", "Cooking Time:", "Difficulty:"} {
		assert.Contains(t, p, label)
	}

	assert.NotContains(t, BuildPrompt(GenerateInput{Ingredients: []string{"rice"}}), "Make it")
}
