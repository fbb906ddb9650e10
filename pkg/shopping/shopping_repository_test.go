//go:build integration

package shopping

import (
	"context"
	"fmt"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testinfra"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB) *entities.User {
	t.Helper()
	id := uuid.New()
	user := &entities.User{
		ID:       id,
		Email:    fmt.Sprintf("%s@example.com", id),
		Username: id.String(),
		Password: "hash",
		Role:     "user",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) uuid.UUID {
	t.Helper()
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient.ID
}

func seedRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, amounts map[uuid.UUID]int) uuid.UUID {
	t.Helper()
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        "recipe",
		Text:        "text",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(recipe).Error)

	for ingredientID, amount := range amounts {
		require.NoError(t, db.Create(&entities.IngredientForRecipe{
			ID:           uuid.New(),
			RecipeID:     recipe.ID,
			IngredientID: ingredientID,
			Amount:       amount,
		}).Error)
	}
	return recipe.ID
}

func seedCart(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}).Error)
}

func TestShoppingRepository_Integration(t *testing.T) {
	db := testinfra.NewMigratedDB(t)
	repo := NewShoppingRepository(db)
	ctx := context.Background()

	t.Run("sums amounts per ingredient across cart recipes", func(t *testing.T) {
		author := seedUser(t, db)
		buyer := seedUser(t, db)
		x := seedIngredient(t, db, "X", "g")
		y := seedIngredient(t, db, "Y", "g")

		r1 := seedRecipe(t, db, author.ID, map[uuid.UUID]int{x: 2})
		r2 := seedRecipe(t, db, author.ID, map[uuid.UUID]int{x: 5, y: 1})
		seedCart(t, db, buyer.ID, r1)
		seedCart(t, db, buyer.ID, r2)

		totals, err := repo.GetCartIngredientTotals(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, totals, 2)

		assert.Equal(t, "X - 7 g.\nY - 1 g.\n", string(Render(ToShoppingList(totals))))
		assert.Equal(t, x, totals[0].IngredientID)
	})

	t.Run("empty cart returns no rows", func(t *testing.T) {
		buyer := seedUser(t, db)

		totals, err := repo.GetCartIngredientTotals(ctx, buyer.ID)
		require.NoError(t, err)
		assert.Empty(t, totals)
	})

	t.Run("other users' carts are not counted", func(t *testing.T) {
		author := seedUser(t, db)
		buyer := seedUser(t, db)
		other := seedUser(t, db)
		flour := seedIngredient(t, db, "flour", "g")
		milk := seedIngredient(t, db, "milk", "ml")

		pancakes := seedRecipe(t, db, author.ID, map[uuid.UUID]int{flour: 200, milk: 300})
		bread := seedRecipe(t, db, author.ID, map[uuid.UUID]int{flour: 500})
		seedCart(t, db, buyer.ID, pancakes)
		seedCart(t, db, other.ID, pancakes)
		seedCart(t, db, other.ID, bread)

		totals, err := repo.GetCartIngredientTotals(ctx, buyer.ID)
		require.NoError(t, err)
		assert.Equal(t, "flour - 200 g.\nmilk - 300 ml.\n", string(Render(ToShoppingList(totals))))
	})

	t.Run("removing a recipe from the cart drops its amounts", func(t *testing.T) {
		author := seedUser(t, db)
		buyer := seedUser(t, db)
		x := seedIngredient(t, db, "X", "g")

		r1 := seedRecipe(t, db, author.ID, map[uuid.UUID]int{x: 2})
		r2 := seedRecipe(t, db, author.ID, map[uuid.UUID]int{x: 5})
		seedCart(t, db, buyer.ID, r1)
		seedCart(t, db, buyer.ID, r2)

		require.NoError(t, db.Where("user_id = ? AND recipe_id = ?", buyer.ID, r2).
			Delete(&entities.ShoppingCart{}).Error)

		totals, err := repo.GetCartIngredientTotals(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, 2, totals[0].Total)
	})

	t.Run("GetUserEmail", func(t *testing.T) {
		buyer := seedUser(t, db)

		email, err := repo.GetUserEmail(ctx, buyer.ID)
		require.NoError(t, err)
		assert.Equal(t, buyer.Email, email)

		_, err = repo.GetUserEmail(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
