package recipe

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/user"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

const recipeImageFolder = "recipes"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) (domain.RecipeListResponse, error)

		AddFavorite(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error)
		RemoveFavorite(ctx context.Context, recipeID string, userID string) error
		GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeShortResponse, int64, error)

		AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error
		GetShoppingCartRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeShortResponse, int64, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		followRepository user.FollowRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, followRepository user.FollowRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		followRepository: followRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.RecipeResponse, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrUserIdentityRequired
	}

	validated, err := validateRecipeRequest(req, true)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.RecipeResponse{}, domain.ErrRecipeNameRequired
	}
	if strings.TrimSpace(req.Text) == "" {
		return domain.RecipeResponse{}, domain.ErrRecipeTextRequired
	}
	if req.Image == "" {
		return domain.RecipeResponse{}, domain.ErrImageRequired
	}
	if err := s.checkReferences(ctx, validated); err != nil {
		return domain.RecipeResponse{}, err
	}

	objectKey, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		CookingTime: *req.CookingTime,
		ImageURL:    s.s3.GetPublicLinkKey(objectKey),
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, validated.ingredients, validated.tagIDs); err != nil {
		s.removeImage(ctx, objectKey)
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	validated, err := validateRecipeRequest(req, false)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.checkReferences(ctx, validated); err != nil {
		return domain.RecipeResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		recipe.Name = name
	}
	if strings.TrimSpace(req.Text) != "" {
		recipe.Text = req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}

	previousImage := recipe.ImageURL
	newObjectKey := ""
	if req.Image != "" {
		newObjectKey, err = s.uploadImage(ctx, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(newObjectKey)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, validated.ingredients, validated.tagIDs); err != nil {
		if newObjectKey != "" {
			s.removeImage(ctx, newObjectKey)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if newObjectKey != "" {
		s.removeImage(ctx, s.s3.GetObjectKeyFromLink(previousImage))
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	s.removeImage(ctx, s.s3.GetObjectKeyFromLink(recipe.ImageURL))
	return nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	viewerID, ok := parseViewer(userID)
	if !ok {
		return toRecipeResponse(recipe, recipeFlags{}), nil
	}

	var flags recipeFlags
	if flags.favorited, err = s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID); err != nil {
		return domain.RecipeResponse{}, err
	}
	if flags.inShoppingCart, err = s.recipeRepository.IsInShoppingCart(ctx, viewerID, recipe.ID); err != nil {
		return domain.RecipeResponse{}, err
	}
	if recipe.AuthorID != viewerID {
		if flags.authorSubscribed, err = s.followRepository.IsFollowing(ctx, viewerID, recipe.AuthorID); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	return toRecipeResponse(recipe, flags), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) (domain.RecipeListResponse, error) {
	viewerID, authenticated := parseViewer(userID)
	if !authenticated {
		userID = ""
	}
	if filter.AuthorID != "" {
		if _, err := uuid.Parse(filter.AuthorID); err != nil {
			return domain.RecipeListResponse{
				Recipes:    []domain.RecipeResponse{},
				Pagination: domain.NewPagination(filter.Page, filter.Limit, 0),
			}, nil
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	subscribed := map[uuid.UUID]bool{}
	if authenticated && len(recipes) > 0 {
		recipeIDs := make([]uuid.UUID, 0, len(recipes))
		authorIDs := make([]uuid.UUID, 0, len(recipes))
		for _, recipe := range recipes {
			recipeIDs = append(recipeIDs, recipe.ID)
			if recipe.AuthorID != viewerID {
				authorIDs = append(authorIDs, recipe.AuthorID)
			}
		}

		if favorited, err = s.recipeRepository.GetFavoritedRecipeIDs(ctx, viewerID, recipeIDs); err != nil {
			return domain.RecipeListResponse{}, err
		}
		if inCart, err = s.recipeRepository.GetShoppingCartRecipeIDs(ctx, viewerID, recipeIDs); err != nil {
			return domain.RecipeListResponse{}, err
		}
		if subscribed, err = s.followRepository.GetFollowingIDs(ctx, viewerID, authorIDs); err != nil {
			return domain.RecipeListResponse{}, err
		}
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipeResponse(recipe, recipeFlags{
			favorited:        favorited[recipe.ID],
			inShoppingCart:   inCart[recipe.ID],
			authorSubscribed: subscribed[recipe.AuthorID],
		}))
	}

	return domain.RecipeListResponse{
		Recipes:    result,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, count),
	}, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error) {
	return s.addMembership(ctx, recipeID, userID, membership{
		exists:       s.recipeRepository.IsFavorited,
		add:          s.recipeRepository.AddFavorite,
		alreadyExist: domain.ErrRecipeAlreadyFavorited,
	})
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID string, userID string) error {
	return s.removeMembership(ctx, recipeID, userID, s.recipeRepository.RemoveFavorite, domain.ErrRecipeNotFavorited)
}

func (s *recipeService) GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeShortResponse, int64, error) {
	viewerID, ok := parseViewer(userID)
	if !ok {
		return nil, 0, domain.ErrUserIdentityRequired
	}

	recipes, count, err := s.recipeRepository.GetFavoriteRecipes(ctx, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toShortList(recipes), count, nil
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error) {
	return s.addMembership(ctx, recipeID, userID, membership{
		exists:       s.recipeRepository.IsInShoppingCart,
		add:          s.recipeRepository.AddToShoppingCart,
		alreadyExist: domain.ErrRecipeAlreadyInCart,
	})
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error {
	return s.removeMembership(ctx, recipeID, userID, s.recipeRepository.RemoveFromShoppingCart, domain.ErrRecipeNotInCart)
}

func (s *recipeService) GetShoppingCartRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeShortResponse, int64, error) {
	viewerID, ok := parseViewer(userID)
	if !ok {
		return nil, 0, domain.ErrUserIdentityRequired
	}

	recipes, count, err := s.recipeRepository.GetShoppingCartRecipes(ctx, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toShortList(recipes), count, nil
}

type membership struct {
	exists       func(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	add          func(ctx context.Context, userID, recipeID uuid.UUID) error
	alreadyExist error
}

func (s *recipeService) addMembership(ctx context.Context, recipeID string, userID string, m membership) (domain.RecipeShortResponse, error) {
	viewerID, ok := parseViewer(userID)
	if !ok {
		return domain.RecipeShortResponse{}, domain.ErrUserIdentityRequired
	}

	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	exists, err := m.exists(ctx, viewerID, recipe.ID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if exists {
		return domain.RecipeShortResponse{}, m.alreadyExist
	}

	if err := m.add(ctx, viewerID, recipe.ID); err != nil {
		// a concurrent request won the race to the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, m.alreadyExist
		}
		return domain.RecipeShortResponse{}, err
	}

	return ToRecipeShortResponse(recipe), nil
}

func (s *recipeService) removeMembership(
	ctx context.Context,
	recipeID string,
	userID string,
	remove func(ctx context.Context, userID, recipeID uuid.UUID) (bool, error),
	notFound error,
) error {
	viewerID, ok := parseViewer(userID)
	if !ok {
		return domain.ErrUserIdentityRequired
	}

	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	removed, err := remove(ctx, viewerID, recipe.ID)
	if err != nil {
		return err
	}
	if !removed {
		return notFound
	}
	return nil
}

func (s *recipeService) findRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	viewerID, ok := parseViewer(userID)
	if !ok {
		return nil, domain.ErrUserIdentityRequired
	}

	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != viewerID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) checkReferences(ctx context.Context, validated *validatedRecipe) error {
	count, err := s.recipeRepository.CountIngredients(ctx, validated.ingredientIDs)
	if err != nil {
		return err
	}
	if count != int64(len(validated.ingredientIDs)) {
		return domain.ErrIngredientNotFound
	}

	count, err = s.recipeRepository.CountTags(ctx, validated.tagIDs)
	if err != nil {
		return err
	}
	if count != int64(len(validated.tagIDs)) {
		return domain.ErrTagNotFound
	}
	return nil
}

func (s *recipeService) uploadImage(ctx context.Context, encoded string) (string, error) {
	data, err := storage.DecodeBase64Image(encoded)
	if err != nil {
		return "", err
	}
	return s.s3.UploadFile(ctx, uuid.New().String(), data, recipeImageFolder, storage.AllowImage...)
}

func (s *recipeService) removeImage(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("failed to delete recipe image %s: %v", objectKey, err)
	}
}

func parseViewer(userID string) (uuid.UUID, bool) {
	if userID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func toShortList(recipes []*entities.Recipe) []domain.RecipeShortResponse {
	result := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, ToRecipeShortResponse(recipe))
	}
	return result
}
