package user

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/jwt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"strings"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUser(ctx context.Context, targetID string, userID string) (domain.UserResponse, error)
		ListUsers(ctx context.Context, page, limit int, userID string) ([]domain.UserResponse, int64, error)
		SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error

		Subscribe(ctx context.Context, authorID string, recipesLimit int, userID string) (domain.UserFollowResponse, error)
		Unsubscribe(ctx context.Context, authorID string, userID string) error
		GetSubscriptions(ctx context.Context, page, limit, recipesLimit int, userID string) ([]domain.UserFollowResponse, int64, error)
	}

	userService struct {
		userRepository   UserRepository
		followRepository FollowRepository
		jwtService       jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, followRepository FollowRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:   userRepository,
		followRepository: followRepository,
		jwtService:       jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return domain.UserResponse{}, domain.ErrHashPasswordFailed
	}

	user := &entities.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	return ToUserResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		log.Errorf("failed to sign token for %s: %v", user.ID, err)
		return domain.LoginResponse{}, domain.ErrGenerateTokenFailed
	}

	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	viewerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrUserIdentityRequired
	}

	user, err := s.findUser(ctx, viewerID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, targetID string, userID string) (domain.UserResponse, error) {
	id, err := uuid.Parse(targetID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	subscribed, err := s.isSubscribed(ctx, userID, user.ID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user, subscribed), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int, userID string) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	following := map[uuid.UUID]bool{}
	if viewerID, err := uuid.Parse(userID); err == nil && len(users) > 0 {
		ids := make([]uuid.UUID, 0, len(users))
		for _, user := range users {
			if user.ID != viewerID {
				ids = append(ids, user.ID)
			}
		}
		if following, err = s.followRepository.GetFollowingIDs(ctx, viewerID, ids); err != nil {
			return nil, 0, err
		}
	}

	result := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, ToUserResponse(user, following[user.ID]))
	}
	return result, count, nil
}

func (s *userService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error {
	viewerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrUserIdentityRequired
	}

	user, err := s.findUser(ctx, viewerID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return domain.ErrHashPasswordFailed
	}

	return s.userRepository.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *userService) Subscribe(ctx context.Context, authorID string, recipesLimit int, userID string) (domain.UserFollowResponse, error) {
	viewerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserFollowResponse{}, domain.ErrUserIdentityRequired
	}
	if recipesLimit < 0 {
		return domain.UserFollowResponse{}, domain.ErrInvalidRecipesLimit
	}

	target, err := s.findTarget(ctx, authorID)
	if err != nil {
		return domain.UserFollowResponse{}, err
	}
	if target.ID == viewerID {
		return domain.UserFollowResponse{}, domain.ErrSelfSubscribe
	}

	following, err := s.followRepository.IsFollowing(ctx, viewerID, target.ID)
	if err != nil {
		return domain.UserFollowResponse{}, err
	}
	if following {
		return domain.UserFollowResponse{}, domain.ErrAlreadySubscribed
	}

	if err := s.followRepository.CreateFollow(ctx, viewerID, target.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserFollowResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.UserFollowResponse{}, err
	}

	counts, err := s.userRepository.CountRecipesByAuthors(ctx, []uuid.UUID{target.ID})
	if err != nil {
		return domain.UserFollowResponse{}, err
	}
	return s.toFollowResponse(ctx, target, recipesLimit, counts[target.ID])
}

func (s *userService) Unsubscribe(ctx context.Context, authorID string, userID string) error {
	viewerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrUserIdentityRequired
	}

	target, err := s.findTarget(ctx, authorID)
	if err != nil {
		return err
	}
	if target.ID == viewerID {
		return domain.ErrSelfSubscribe
	}

	removed, err := s.followRepository.DeleteFollow(ctx, viewerID, target.ID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, page, limit, recipesLimit int, userID string) ([]domain.UserFollowResponse, int64, error) {
	viewerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrUserIdentityRequired
	}
	if recipesLimit < 0 {
		return nil, 0, domain.ErrInvalidRecipesLimit
	}

	authors, count, err := s.followRepository.GetFollowing(ctx, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
	}
	counts, err := s.userRepository.CountRecipesByAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.UserFollowResponse, 0, len(authors))
	for _, author := range authors {
		item, err := s.toFollowResponse(ctx, author, recipesLimit, counts[author.ID])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, count, nil
}

func (s *userService) toFollowResponse(ctx context.Context, author *entities.User, recipesLimit int, total int64) (domain.UserFollowResponse, error) {
	recipes, err := s.userRepository.GetRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.UserFollowResponse{}, err
	}

	short := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, recipe := range recipes {
		short = append(short, domain.RecipeShortResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return domain.UserFollowResponse{
		UserResponse: ToUserResponse(author, true),
		Recipes:      short,
		RecipesCount: total,
	}, nil
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) findTarget(ctx context.Context, authorID string) (*entities.User, error) {
	id, err := uuid.Parse(authorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findUser(ctx, id)
}

// isSubscribed is false for anonymous viewers and for a user looking at
// their own profile.
func (s *userService) isSubscribed(ctx context.Context, userID string, targetID uuid.UUID) (bool, error) {
	viewerID, err := uuid.Parse(userID)
	if err != nil || viewerID == targetID {
		return false, nil
	}
	return s.followRepository.IsFollowing(ctx, viewerID, targetID)
}

func ToUserResponse(user *entities.User, subscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}
