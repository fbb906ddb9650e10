package recipe

import (
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"github.com/google/uuid"
)

type validatedRecipe struct {
	ingredients   []*entities.IngredientForRecipe
	ingredientIDs []uuid.UUID
	tagIDs        []uuid.UUID
}

// validateRecipeRequest applies the authoring rules to a write-shape
// request. The first violated rule is returned; nothing is written before
// the whole request passes. When requireCookingTime is false an omitted
// cooking time is accepted (partial update).
func validateRecipeRequest(req domain.RecipeRequest, requireCookingTime bool) (*validatedRecipe, error) {
	if len(req.Ingredients) == 0 {
		return nil, domain.ErrEmptyIngredientList
	}

	result := &validatedRecipe{
		ingredients:   make([]*entities.IngredientForRecipe, 0, len(req.Ingredients)),
		ingredientIDs: make([]uuid.UUID, 0, len(req.Ingredients)),
	}
	seenIngredients := make(map[uuid.UUID]struct{}, len(req.Ingredients))
	for _, item := range req.Ingredients {
		ingredientID, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, domain.ErrIngredientNotFound
		}
		if _, ok := seenIngredients[ingredientID]; ok {
			return nil, domain.ErrDuplicateIngredient
		}
		seenIngredients[ingredientID] = struct{}{}
		result.ingredientIDs = append(result.ingredientIDs, ingredientID)
	}

	for i, item := range req.Ingredients {
		if item.Amount < domain.MinIngredientAmount {
			return nil, domain.ErrNonPositiveAmount
		}
		if item.Amount > domain.MaxIngredientAmount {
			return nil, domain.ErrAmountTooHigh
		}
		result.ingredients = append(result.ingredients, &entities.IngredientForRecipe{
			IngredientID: result.ingredientIDs[i],
			Amount:       item.Amount,
		})
	}

	if len(req.Tags) == 0 {
		return nil, domain.ErrEmptyTagList
	}

	result.tagIDs = make([]uuid.UUID, 0, len(req.Tags))
	seenTags := make(map[uuid.UUID]struct{}, len(req.Tags))
	for _, rawTag := range req.Tags {
		tagID, err := uuid.Parse(rawTag)
		if err != nil {
			return nil, domain.ErrTagNotFound
		}
		if _, ok := seenTags[tagID]; ok {
			return nil, domain.ErrDuplicateTag
		}
		seenTags[tagID] = struct{}{}
		result.tagIDs = append(result.tagIDs, tagID)
	}

	if req.CookingTime == nil {
		if requireCookingTime {
			return nil, domain.ErrCookingTimeTooLow
		}
		return result, nil
	}
	if *req.CookingTime < domain.MinCookingTime {
		return nil, domain.ErrCookingTimeTooLow
	}
	if *req.CookingTime > domain.MaxCookingTime {
		return nil, domain.ErrCookingTimeTooHigh
	}

	return result, nil
}
