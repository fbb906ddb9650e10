package handlers

import (
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/internal/utils/storage"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
		{domain.ErrEmptyIngredientList, fiber.StatusBadRequest},
		{domain.ErrIngredientNotFound, fiber.StatusBadRequest},
		{domain.ErrRecipeAlreadyInCart, fiber.StatusBadRequest},
		{domain.ErrSelfSubscribe, fiber.StatusBadRequest},
		{domain.ErrUserIdentityRequired, fiber.StatusUnauthorized},
		{fmt.Errorf("%w: text/plain", storage.ErrFileTypeNotAllowed), fiber.StatusBadRequest},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestLookupStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, lookupStatus(domain.ErrTagNotFound, domain.ErrTagNotFound))
	assert.Equal(t, fiber.StatusBadRequest, lookupStatus(domain.ErrTagNotFound))
}
