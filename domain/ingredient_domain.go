package domain

import (
	"errors"
)

var (
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessGetIngredient    = "ingredient retrieved successfully"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedGetIngredient    = "failed to retrieve ingredient"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	IngredientRequest struct {
		Name            string `json:"name" validate:"required,max=200"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
	}

	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
)
