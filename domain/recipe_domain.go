package domain

import (
	"errors"
	"time"
)

const (
	MinCookingTime      = 1
	MaxCookingTime      = 1440
	MinIngredientAmount = 1
	MaxIngredientAmount = 2000
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessAddShoppingCart  = "recipe added to shopping cart"
	MessageSuccessRemoveCart       = "recipe removed from shopping cart"
	MessageSuccessGetFavorites     = "success get favorite recipes"
	MessageSuccessGetShoppingCart  = "success get shopping cart recipes"
	MessageSuccessSendShoppingList = "shopping list sent successfully"

	MessageFailedGetRecipes         = "failed to get recipes"
	MessageFailedGetRecipeDetail    = "failed to get recipe detail"
	MessageFailedCreateRecipe       = "failed to create recipe"
	MessageFailedUpdateRecipe       = "failed to update recipe"
	MessageFailedDeleteRecipe       = "failed to delete recipe"
	MessageFailedAddFavorite        = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite     = "failed to remove recipe from favorites"
	MessageFailedAddShoppingCart    = "failed to add recipe to shopping cart"
	MessageFailedRemoveShoppingCart = "failed to remove recipe from shopping cart"
	MessageFailedGetFavorites       = "failed to get favorite recipes"
	MessageFailedGetShoppingCart    = "failed to get shopping cart recipes"
	MessageFailedDownloadShopping   = "failed to download shopping list"
	MessageFailedSendShoppingList   = "failed to send shopping list"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("only the author can modify this recipe")

	ErrEmptyIngredientList = errors.New("select at least one ingredient")
	ErrDuplicateIngredient = errors.New("ingredients must not repeat")
	ErrNonPositiveAmount   = errors.New("ingredient amount must be greater than zero")
	ErrAmountTooHigh       = errors.New("ingredient amount must not exceed 2000")
	ErrEmptyTagList        = errors.New("select at least one tag")
	ErrDuplicateTag        = errors.New("tags must not repeat")
	ErrCookingTimeTooLow   = errors.New("cooking time must be at least 1 minute")
	ErrCookingTimeTooHigh  = errors.New("cooking time must not exceed 1440 minutes")
	ErrImageRequired       = errors.New("recipe image is required")
	ErrRecipeNameRequired  = errors.New("recipe name is required")
	ErrRecipeTextRequired  = errors.New("recipe text is required")

	ErrRecipeAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrRecipeNotFavorited     = errors.New("recipe is not in favorites")
	ErrRecipeAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrRecipeNotInCart        = errors.New("recipe is not in the shopping cart")
)

type (
	// RecipeIngredientRequest is one entry of the write-shape ingredient list.
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount"`
	}

	// RecipeRequest is the write shape accepted on create and update.
	// CookingTime is a pointer so an update can tell "omitted" from zero.
	RecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
		Image       string                    `json:"image"`
		Name        string                    `json:"name" validate:"omitempty,max=200"`
		Text        string                    `json:"text"`
		CookingTime *int                      `json:"cooking_time"`
	}

	RecipeFilter struct {
		Tags             []string
		AuthorID         string
		IsFavorited      bool
		IsInShoppingCart bool
		Page             int
		Limit            int
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	// RecipeResponse is the read shape returned by every recipe endpoint.
	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		PubDate          time.Time                  `json:"pub_date"`
	}

	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeResponse `json:"recipes"`
		Pagination Pagination       `json:"pagination"`
	}
)
