package recipe

import (
	"foodgram-backend/entities"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecipeResponse(t *testing.T) {
	authorID := uuid.New()
	pubDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        "Pancakes",
		ImageURL:    "https://cdn.example.com/recipes/pancakes.png",
		Text:        "Mix and fry.",
		CookingTime: 20,
		PubDate:     pubDate,
		Author:      &entities.User{ID: authorID, Username: "cook"},
		Tags: []*entities.Tag{
			{ID: tagBID, Name: "lunch", Color: "#00ff00", Slug: "lunch"},
			{ID: tagAID, Name: "breakfast", Color: "#ff0000", Slug: "breakfast"},
		},
		Ingredients: []*entities.IngredientForRecipe{
			{IngredientID: sugarID, Amount: 30, Ingredient: &entities.Ingredient{ID: sugarID, Name: "sugar", MeasurementUnit: "g"}},
			{IngredientID: flourID, Amount: 200, Ingredient: &entities.Ingredient{ID: flourID, Name: "flour", MeasurementUnit: "g"}},
		},
	}

	resp := toRecipeResponse(recipe, recipeFlags{favorited: true, authorSubscribed: true})

	assert.Equal(t, recipe.ID.String(), resp.ID)
	assert.True(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.True(t, resp.Author.IsSubscribed)
	assert.Equal(t, "cook", resp.Author.Username)
	assert.Equal(t, pubDate, resp.PubDate)

	require.Len(t, resp.Tags, 2)
	assert.Equal(t, "breakfast", resp.Tags[0].Slug)
	assert.Equal(t, "lunch", resp.Tags[1].Slug)

	require.Len(t, resp.Ingredients, 2)
	assert.Equal(t, flourID.String(), resp.Ingredients[0].ID)
	assert.Equal(t, 200, resp.Ingredients[0].Amount)
	assert.Equal(t, "sugar", resp.Ingredients[1].Name)
}

func TestToRecipeResponse_AnonymousFlags(t *testing.T) {
	resp := toRecipeResponse(&entities.Recipe{ID: uuid.New(), Name: "Soup", CookingTime: 5}, recipeFlags{})

	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
	assert.Empty(t, resp.Tags)
	assert.Empty(t, resp.Ingredients)
}
