package recipe

import (
	"foodgram-backend/entities"
	"github.com/google/uuid"
)

type ingredientPlan struct {
	create []*entities.IngredientForRecipe
	update []*entities.IngredientForRecipe
	delete []uuid.UUID
}

func (p ingredientPlan) empty() bool {
	return len(p.create) == 0 && len(p.update) == 0 && len(p.delete) == 0
}

// diffIngredients computes the writes that turn the stored association rows
// into exactly the wanted list. Rows are matched by ingredient; a kept row
// with a new amount is updated in place.
func diffIngredients(recipeID uuid.UUID, existing, wanted []*entities.IngredientForRecipe) ingredientPlan {
	var plan ingredientPlan

	stored := make(map[uuid.UUID]*entities.IngredientForRecipe, len(existing))
	for _, row := range existing {
		stored[row.IngredientID] = row
	}

	keep := make(map[uuid.UUID]struct{}, len(wanted))
	for _, item := range wanted {
		keep[item.IngredientID] = struct{}{}

		row, ok := stored[item.IngredientID]
		if !ok {
			plan.create = append(plan.create, &entities.IngredientForRecipe{
				ID:           uuid.New(),
				RecipeID:     recipeID,
				IngredientID: item.IngredientID,
				Amount:       item.Amount,
			})
			continue
		}
		if row.Amount != item.Amount {
			plan.update = append(plan.update, &entities.IngredientForRecipe{
				ID:           row.ID,
				RecipeID:     recipeID,
				IngredientID: row.IngredientID,
				Amount:       item.Amount,
			})
		}
	}

	for _, row := range existing {
		if _, ok := keep[row.IngredientID]; !ok {
			plan.delete = append(plan.delete, row.ID)
		}
	}

	return plan
}

// diffTags returns the tag ids to link and unlink.
func diffTags(existing, wanted []uuid.UUID) (add []uuid.UUID, remove []uuid.UUID) {
	stored := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		stored[id] = struct{}{}
	}
	keep := make(map[uuid.UUID]struct{}, len(wanted))
	for _, id := range wanted {
		keep[id] = struct{}{}
		if _, ok := stored[id]; !ok {
			add = append(add, id)
		}
	}
	for _, id := range existing {
		if _, ok := keep[id]; !ok {
			remove = append(remove, id)
		}
	}
	return add, remove
}
