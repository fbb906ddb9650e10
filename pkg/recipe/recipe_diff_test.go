package recipe

import (
	"foodgram-backend/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffIngredients_ReplacesSetExactly(t *testing.T) {
	recipeID := uuid.New()
	rowA := uuid.New()
	rowB := uuid.New()

	existing := []*entities.IngredientForRecipe{
		{ID: rowA, RecipeID: recipeID, IngredientID: flourID, Amount: 1},
		{ID: rowB, RecipeID: recipeID, IngredientID: sugarID, Amount: 2},
	}
	wanted := []*entities.IngredientForRecipe{
		{IngredientID: flourID, Amount: 3},
	}

	plan := diffIngredients(recipeID, existing, wanted)

	assert.Empty(t, plan.create)
	require.Len(t, plan.update, 1)
	assert.Equal(t, rowA, plan.update[0].ID)
	assert.Equal(t, 3, plan.update[0].Amount)
	assert.Equal(t, []uuid.UUID{rowB}, plan.delete)
}

func TestDiffIngredients_AddsNewRows(t *testing.T) {
	recipeID := uuid.New()
	existing := []*entities.IngredientForRecipe{
		{ID: uuid.New(), RecipeID: recipeID, IngredientID: flourID, Amount: 5},
	}
	wanted := []*entities.IngredientForRecipe{
		{IngredientID: flourID, Amount: 5},
		{IngredientID: sugarID, Amount: 7},
	}

	plan := diffIngredients(recipeID, existing, wanted)

	assert.Empty(t, plan.update)
	assert.Empty(t, plan.delete)
	require.Len(t, plan.create, 1)
	assert.Equal(t, sugarID, plan.create[0].IngredientID)
	assert.Equal(t, recipeID, plan.create[0].RecipeID)
	assert.Equal(t, 7, plan.create[0].Amount)
	assert.NotEqual(t, uuid.Nil, plan.create[0].ID)
}

func TestDiffIngredients_NoChanges(t *testing.T) {
	recipeID := uuid.New()
	existing := []*entities.IngredientForRecipe{
		{ID: uuid.New(), RecipeID: recipeID, IngredientID: flourID, Amount: 5},
	}

	plan := diffIngredients(recipeID, existing, []*entities.IngredientForRecipe{{IngredientID: flourID, Amount: 5}})
	assert.True(t, plan.empty())
}

func TestDiffTags(t *testing.T) {
	tagC := uuid.New()

	add, remove := diffTags([]uuid.UUID{tagAID, tagBID}, []uuid.UUID{tagBID, tagC})

	assert.Equal(t, []uuid.UUID{tagC}, add)
	assert.Equal(t, []uuid.UUID{tagAID}, remove)
}

func TestDiffTags_Identical(t *testing.T) {
	add, remove := diffTags([]uuid.UUID{tagAID}, []uuid.UUID{tagAID})

	assert.Empty(t, add)
	assert.Empty(t, remove)
}
