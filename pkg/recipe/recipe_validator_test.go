package recipe

import (
	"foodgram-backend/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	flourID = uuid.MustParse("6f1f6f8a-6d1e-4d2b-9a37-3b0b5c3f0a01")
	sugarID = uuid.MustParse("6f1f6f8a-6d1e-4d2b-9a37-3b0b5c3f0a02")
	tagAID  = uuid.MustParse("9c0d4c61-2a55-4f0a-8d9e-1b1f7e6a0b01")
	tagBID  = uuid.MustParse("9c0d4c61-2a55-4f0a-8d9e-1b1f7e6a0b02")
)

func minutes(n int) *int {
	return &n
}

func validRequest() domain.RecipeRequest {
	return domain.RecipeRequest{
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: flourID.String(), Amount: 200},
			{ID: sugarID.String(), Amount: 50},
		},
		Tags:        []string{tagAID.String(), tagBID.String()},
		Image:       "data:image/png;base64,AAAA",
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: minutes(20),
	}
}

func TestValidateRecipeRequest_Valid(t *testing.T) {
	got, err := validateRecipeRequest(validRequest(), true)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{flourID, sugarID}, got.ingredientIDs)
	assert.Equal(t, []uuid.UUID{tagAID, tagBID}, got.tagIDs)
	require.Len(t, got.ingredients, 2)
	assert.Equal(t, flourID, got.ingredients[0].IngredientID)
	assert.Equal(t, 200, got.ingredients[0].Amount)
	assert.Equal(t, sugarID, got.ingredients[1].IngredientID)
	assert.Equal(t, 50, got.ingredients[1].Amount)
}

func TestValidateRecipeRequest_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.RecipeRequest)
		want   error
	}{
		{
			name:   "empty ingredients",
			mutate: func(req *domain.RecipeRequest) { req.Ingredients = nil },
			want:   domain.ErrEmptyIngredientList,
		},
		{
			name: "duplicate ingredient",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients = []domain.RecipeIngredientRequest{
					{ID: flourID.String(), Amount: 1},
					{ID: flourID.String(), Amount: 2},
				}
			},
			want: domain.ErrDuplicateIngredient,
		},
		{
			name: "duplicate reported before bad amount",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients = []domain.RecipeIngredientRequest{
					{ID: flourID.String(), Amount: 0},
					{ID: flourID.String(), Amount: 2},
				}
			},
			want: domain.ErrDuplicateIngredient,
		},
		{
			name: "zero amount",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[1].Amount = 0
			},
			want: domain.ErrNonPositiveAmount,
		},
		{
			name: "negative amount",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[0].Amount = -3
			},
			want: domain.ErrNonPositiveAmount,
		},
		{
			name: "amount too high",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[0].Amount = 2001
			},
			want: domain.ErrAmountTooHigh,
		},
		{
			name:   "empty tags",
			mutate: func(req *domain.RecipeRequest) { req.Tags = []string{} },
			want:   domain.ErrEmptyTagList,
		},
		{
			name: "ingredient rule wins over tag rule",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients = nil
				req.Tags = nil
			},
			want: domain.ErrEmptyIngredientList,
		},
		{
			name: "duplicate tag",
			mutate: func(req *domain.RecipeRequest) {
				req.Tags = []string{tagAID.String(), tagAID.String()}
			},
			want: domain.ErrDuplicateTag,
		},
		{
			name:   "cooking time zero",
			mutate: func(req *domain.RecipeRequest) { req.CookingTime = minutes(0) },
			want:   domain.ErrCookingTimeTooLow,
		},
		{
			name:   "cooking time missing",
			mutate: func(req *domain.RecipeRequest) { req.CookingTime = nil },
			want:   domain.ErrCookingTimeTooLow,
		},
		{
			name:   "cooking time too long",
			mutate: func(req *domain.RecipeRequest) { req.CookingTime = minutes(1441) },
			want:   domain.ErrCookingTimeTooHigh,
		},
		{
			name: "malformed ingredient id",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[0].ID = "flour"
			},
			want: domain.ErrIngredientNotFound,
		},
		{
			name:   "malformed tag id",
			mutate: func(req *domain.RecipeRequest) { req.Tags = []string{"breakfast"} },
			want:   domain.ErrTagNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			got, err := validateRecipeRequest(req, true)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}

func TestValidateRecipeRequest_BoundaryValues(t *testing.T) {
	req := validRequest()
	req.Ingredients[0].Amount = 1
	req.Ingredients[1].Amount = 2000
	req.CookingTime = minutes(1440)

	_, err := validateRecipeRequest(req, true)
	assert.NoError(t, err)

	req.CookingTime = minutes(1)
	_, err = validateRecipeRequest(req, true)
	assert.NoError(t, err)
}

func TestValidateRecipeRequest_PartialUpdateAllowsMissingCookingTime(t *testing.T) {
	req := validRequest()
	req.CookingTime = nil

	got, err := validateRecipeRequest(req, false)
	require.NoError(t, err)
	assert.Len(t, got.ingredients, 2)
}
