package handlers

import (
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/internal/utils/storage"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type errorStatusRule struct {
	err    error
	status int
}

var errorStatusRules = []errorStatusRule{
	{domain.ErrRecipeNotFound, fiber.StatusNotFound},
	{domain.ErrUserNotFound, fiber.StatusNotFound},

	{domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
	{domain.ErrUserNotAllowed, fiber.StatusForbidden},

	{domain.ErrUserIdentityRequired, fiber.StatusUnauthorized},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized},
	{domain.ErrTokenNotFound, fiber.StatusUnauthorized},

	{domain.ErrEmptyIngredientList, fiber.StatusBadRequest},
	{domain.ErrDuplicateIngredient, fiber.StatusBadRequest},
	{domain.ErrNonPositiveAmount, fiber.StatusBadRequest},
	{domain.ErrAmountTooHigh, fiber.StatusBadRequest},
	{domain.ErrEmptyTagList, fiber.StatusBadRequest},
	{domain.ErrDuplicateTag, fiber.StatusBadRequest},
	{domain.ErrCookingTimeTooLow, fiber.StatusBadRequest},
	{domain.ErrCookingTimeTooHigh, fiber.StatusBadRequest},
	{domain.ErrImageRequired, fiber.StatusBadRequest},
	{domain.ErrRecipeNameRequired, fiber.StatusBadRequest},
	{domain.ErrRecipeTextRequired, fiber.StatusBadRequest},
	{domain.ErrIngredientNotFound, fiber.StatusBadRequest},
	{domain.ErrTagNotFound, fiber.StatusBadRequest},
	{domain.ErrRecipeAlreadyFavorited, fiber.StatusBadRequest},
	{domain.ErrRecipeNotFavorited, fiber.StatusBadRequest},
	{domain.ErrRecipeAlreadyInCart, fiber.StatusBadRequest},
	{domain.ErrRecipeNotInCart, fiber.StatusBadRequest},
	{domain.ErrShoppingCartEmpty, fiber.StatusBadRequest},
	{domain.ErrTagSlugTaken, fiber.StatusBadRequest},

	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest},
	{domain.ErrUsernameTaken, fiber.StatusBadRequest},
	{domain.ErrInvalidCredentials, fiber.StatusBadRequest},
	{domain.ErrInvalidPassword, fiber.StatusBadRequest},
	{domain.ErrSelfSubscribe, fiber.StatusBadRequest},
	{domain.ErrAlreadySubscribed, fiber.StatusBadRequest},
	{domain.ErrNotSubscribed, fiber.StatusBadRequest},
	{domain.ErrInvalidRecipesLimit, fiber.StatusBadRequest},

	{storage.ErrInvalidBase64Image, fiber.StatusBadRequest},
	{storage.ErrFileTypeNotAllowed, fiber.StatusBadRequest},
	{storage.ErrEmptyFile, fiber.StatusBadRequest},
}

// errorStatus maps a service error to its HTTP status. Unknown errors are
// treated as server failures.
func errorStatus(err error) int {
	for _, rule := range errorStatusRules {
		if errors.Is(err, rule.err) {
			return rule.status
		}
	}
	return fiber.StatusInternalServerError
}

// lookupStatus is errorStatus for endpoints addressing a resource by path
// id, where a missing reference is a 404 rather than a validation failure.
func lookupStatus(err error, notFound ...error) int {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return fiber.StatusNotFound
		}
	}
	return errorStatus(err)
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}

	return page, limit
}
