package recipe

import (
	"context"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientForRecipe, tagIDs []uuid.UUID) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientForRecipe, tagIDs []uuid.UUID) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]*entities.Recipe, int64, error)

		CountIngredients(ctx context.Context, ids []uuid.UUID) (int64, error)
		CountTags(ctx context.Context, ids []uuid.UUID) (int64, error)

		AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		GetFavoritedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		GetFavoriteRecipes(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error)

		AddToShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFromShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		IsInShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		GetShoppingCartRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		GetShoppingCartRecipes(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}

	recipeTag struct {
		RecipeID uuid.UUID
		TagID    uuid.UUID
	}
)

const recipeTagsTable = "recipe_tags"

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientForRecipe, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		rows := make([]*entities.IngredientForRecipe, 0, len(ingredients))
		for _, item := range ingredients {
			rows = append(rows, &entities.IngredientForRecipe{
				ID:           uuid.New(),
				RecipeID:     recipe.ID,
				IngredientID: item.IngredientID,
				Amount:       item.Amount,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}

		return linkTags(tx, recipe.ID, tagIDs)
	})
}

// UpdateRecipe writes scalar fields and reconciles tag and ingredient links
// in one transaction. The recipe row is locked first so two edits of the
// same recipe cannot interleave their association writes.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientForRecipe, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked entities.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", recipe.ID).
			First(&locked).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image_url":    recipe.ImageURL,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}

		var storedTagIDs []uuid.UUID
		if err := tx.Table(recipeTagsTable).
			Where("recipe_id = ?", recipe.ID).
			Pluck("tag_id", &storedTagIDs).Error; err != nil {
			return err
		}
		addTags, removeTags := diffTags(storedTagIDs, tagIDs)
		if len(removeTags) > 0 {
			if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ? AND tag_id IN ?", recipe.ID, removeTags).Error; err != nil {
				return err
			}
		}
		if err := linkTags(tx, recipe.ID, addTags); err != nil {
			return err
		}

		var stored []*entities.IngredientForRecipe
		if err := tx.Where("recipe_id = ?", recipe.ID).Find(&stored).Error; err != nil {
			return err
		}
		plan := diffIngredients(recipe.ID, stored, ingredients)
		if plan.empty() {
			return nil
		}
		if len(plan.delete) > 0 {
			if err := tx.Where("id IN ?", plan.delete).Delete(&entities.IngredientForRecipe{}).Error; err != nil {
				return err
			}
		}
		for _, row := range plan.update {
			if err := tx.Model(&entities.IngredientForRecipe{}).
				Where("id = ?", row.ID).
				Update("amount", row.Amount).Error; err != nil {
				return err
			}
		}
		if len(plan.create) > 0 {
			if err := tx.Omit(clause.Associations).Create(&plan.create).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.IngredientForRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Favourite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("recipes.id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	if err := r.filterRecipes(ctx, filter, userID).
		Model(&entities.Recipe{}).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.withDetails(r.filterRecipes(ctx, filter, userID)).
		Order("recipes.pub_date desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) filterRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) *gorm.DB {
	db := r.db.WithContext(ctx)
	query := db.Model(&entities.Recipe{})

	if len(filter.Tags) > 0 {
		query = query.Where("recipes.id IN (?)", db.
			Table(recipeTagsTable).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.Tags))
	}
	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if userID != "" && filter.IsFavorited {
		query = query.Where("recipes.id IN (?)", db.
			Model(&entities.Favourite{}).
			Select("recipe_id").
			Where("user_id = ?", userID))
	}
	if userID != "" && filter.IsInShoppingCart {
		query = query.Where("recipes.id IN (?)", db.
			Model(&entities.ShoppingCart{}).
			Select("recipe_id").
			Where("user_id = ?", userID))
	}
	return query
}

func (r *recipeRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
}

func (r *recipeRepository) CountIngredients(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) CountTags(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.Favourite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favourite{})
	return result.RowsAffected > 0, result.Error
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favourite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetFavoritedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.memberRecipeIDs(ctx, &entities.Favourite{}, userID, recipeIDs)
}

func (r *recipeRepository) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error) {
	return r.memberRecipes(ctx, "favourites", userID, page, limit)
}

func (r *recipeRepository) AddToShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *recipeRepository) RemoveFromShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCart{})
	return result.RowsAffected > 0, result.Error
}

func (r *recipeRepository) IsInShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetShoppingCartRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.memberRecipeIDs(ctx, &entities.ShoppingCart{}, userID, recipeIDs)
}

func (r *recipeRepository) GetShoppingCartRecipes(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error) {
	return r.memberRecipes(ctx, "shopping_carts", userID, page, limit)
}

func (r *recipeRepository) memberRecipeIDs(ctx context.Context, model interface{}, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	members := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return members, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		members[id] = true
	}
	return members, nil
}

func (r *recipeRepository) memberRecipes(ctx context.Context, table string, userID uuid.UUID, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit
	join := "JOIN " + table + " ON recipes.id = " + table + ".recipe_id"

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins(join).
		Where(table+".user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Select("recipes.*").
		Joins(join).
		Where(table+".user_id = ?", userID).
		Order(table + ".created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func linkTags(tx *gorm.DB, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]recipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, recipeTag{RecipeID: recipeID, TagID: tagID})
	}
	return tx.Table(recipeTagsTable).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
