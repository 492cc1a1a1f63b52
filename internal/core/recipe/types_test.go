package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayIngredients(t *testing.T) {
	var r RawRecipe
	r.SetPair(1, "Spaghetti", "200g")
	r.SetPair(3, "Salt", "")
	r.SetPair(7, "  ", "2 cups")
	r.SetPair(20, "Basil", "1 handful")

	got := r.DisplayIngredients()

	assert.Equal(t, []Ingredient{
		{Index: 1, Name: "Spaghetti", Measure: "200g"},
		{Index: 3, Name: "Salt", Measure: ""},
		{Index: 20, Name: "Basil", Measure: "1 handful"},
	}, got)
}

func TestDisplayIngredients_KeepsMeasureAsIs(t *testing.T) {
	var r RawRecipe
	r.SetPair(1, " Flour ", " 1 cup ")
	r.SetPair(2, "Eggs", "   ")

	got := r.DisplayIngredients()

	assert.Equal(t, []Ingredient{
		{Index: 1, Name: "Flour", Measure: " 1 cup "},
		{Index: 2, Name: "Eggs", Measure: "   "},
	}, got)
}

func TestDisplayIngredients_Empty(t *testing.T) {
	got := RawRecipe{Name: "Water"}.DisplayIngredients()

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSetPair_OutOfRange(t *testing.T) {
	var r RawRecipe
	r.SetPair(0, "Zero", "")
	r.SetPair(21, "TwentyOne", "")

	assert.Equal(t, [MaxIngredients]Pair{}, r.Ingredients)
}

func TestTranslate_ReplacesOnlyNameAndInstructions(t *testing.T) {
	raw := RawRecipe{
		ID:           "52770",
		Name:         "Spaghetti",
		Category:     "Pasta",
		Area:         "Italian",
		Instructions: "Boil pasta.",
		Tags:         "Pasta,Quick",
	}
	raw.SetPair(1, "Spaghetti", "200g")
	raw.SetPair(2, "Salt", "pinch")

	got := Translate(raw, "Espaguete", "Cozinhe o macarrão.", "en", "pt")

	assert.Equal(t, "Espaguete", got.Name)
	assert.Equal(t, "Cozinhe o macarrão.", got.Instructions)
	assert.Equal(t, raw.ID, got.ID)
	assert.Equal(t, raw.Category, got.Category)
	assert.Equal(t, raw.Area, got.Area)
	assert.Equal(t, raw.Tags, got.Tags)
	assert.Equal(t, raw.Thumbnail, got.Thumbnail)
	assert.False(t, got.HasThumbnail())
	assert.Equal(t, raw.Ingredients, got.Ingredients)
	assert.Equal(t, "pt", got.TargetLang)

	// 原始資料不受影響
	got.Ingredients[0].Measure = "changed"
	assert.Equal(t, "200g", raw.Ingredients[0].Measure)
	assert.Equal(t, "Spaghetti", raw.Name)
}
