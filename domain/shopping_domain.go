package domain

import (
	"errors"
)

const ShoppingListFileName = "my_shopping_list.txt"

var (
	ErrShoppingCartEmpty = errors.New("shopping cart is empty")
)

type (
	// ShoppingListItem is one ingredient total across the requester's cart.
	ShoppingListItem struct {
		IngredientID    string `json:"ingredient_id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int    `json:"total_amount"`
	}
)
