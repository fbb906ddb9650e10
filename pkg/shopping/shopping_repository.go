package shopping

import (
	"context"
	"foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		GetCartIngredientTotals(ctx context.Context, userID uuid.UUID) ([]IngredientTotal, error)
		GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error)
	}

	// IngredientTotal is one row of the cart aggregate, unique per ingredient.
	IngredientTotal struct {
		IngredientID    uuid.UUID
		Name            string
		MeasurementUnit string
		Total           int
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) GetCartIngredientTotals(ctx context.Context, userID uuid.UUID) ([]IngredientTotal, error) {
	var totals []IngredientTotal

	if err := r.db.WithContext(ctx).
		Model(&entities.IngredientForRecipe{}).
		Select("ingredients.id AS ingredient_id, ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_for_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_for_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_for_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name asc").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *shoppingRepository) GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("email").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return "", err
	}
	return user.Email, nil
}
