package domain

import (
	"errors"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetUser       = "user retrieved successfully"
	MessageSuccessGetUsers      = "users retrieved successfully"
	MessageSuccessSetPassword   = "password updated successfully"
	MessageSuccessSubscribe     = "subscribed successfully"
	MessageSuccessUnsubscribe   = "unsubscribed successfully"
	MessageSuccessSubscriptions = "subscriptions retrieved successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetUser       = "failed to retrieve user"
	MessageFailedGetUsers      = "failed to retrieve users"
	MessageFailedSetPassword   = "failed to update password"
	MessageFailedSubscribe     = "failed to subscribe"
	MessageFailedUnsubscribe   = "failed to unsubscribe"
	MessageFailedSubscriptions = "failed to retrieve subscriptions"

	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidPassword      = errors.New("current password is incorrect")
	ErrSelfSubscribe        = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed    = errors.New("already subscribed to this author")
	ErrNotSubscribed        = errors.New("not subscribed to this author")
	ErrInvalidRecipesLimit  = errors.New("recipes_limit must be a positive number")
	ErrHashPasswordFailed   = errors.New("failed to hash password")
	ErrGenerateTokenFailed  = errors.New("failed to generate token")
	ErrUserIdentityRequired = errors.New("authentication required")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,alphanum"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	// UserFollowResponse is a followed author with a preview of their recipes.
	UserFollowResponse struct {
		UserResponse
		Recipes      []RecipeShortResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
