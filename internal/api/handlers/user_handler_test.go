package handlers

import (
	"context"
	"encoding/json"
	"foodgram-backend/domain"
	"foodgram-backend/internal/utils"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	args := m.Called(req)
	return args.Get(0).(domain.UserResponse), args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	args := m.Called(req)
	return args.Get(0).(domain.LoginResponse), args.Error(1)
}

func (m *mockUserService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.UserResponse), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, targetID string, userID string) (domain.UserResponse, error) {
	args := m.Called(targetID, userID)
	return args.Get(0).(domain.UserResponse), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context, page, limit int, userID string) ([]domain.UserResponse, int64, error) {
	args := m.Called(page, limit, userID)
	return args.Get(0).([]domain.UserResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error {
	return m.Called(req, userID).Error(0)
}

func (m *mockUserService) Subscribe(ctx context.Context, authorID string, recipesLimit int, userID string) (domain.UserFollowResponse, error) {
	args := m.Called(authorID, recipesLimit, userID)
	return args.Get(0).(domain.UserFollowResponse), args.Error(1)
}

func (m *mockUserService) Unsubscribe(ctx context.Context, authorID string, userID string) error {
	return m.Called(authorID, userID).Error(0)
}

func (m *mockUserService) GetSubscriptions(ctx context.Context, page, limit, recipesLimit int, userID string) ([]domain.UserFollowResponse, int64, error) {
	args := m.Called(page, limit, recipesLimit, userID)
	return args.Get(0).([]domain.UserFollowResponse), args.Get(1).(int64), args.Error(2)
}

func newUserTestApp() (*fiber.App, *mockUserService) {
	utils.InitValidator()
	users := new(mockUserService)
	h := NewUserHandler(users, utils.Validate)

	app := fiber.New()
	app.Post("/api/auth/token/login", h.Login)
	api := app.Group("/api/users")
	api.Post("", h.Register)
	api.Get("/subscriptions", withUser(testUserID), h.GetSubscriptions)
	api.Get("/:id", withUser(""), h.GetUser)
	api.Post("/:id/subscribe", withUser(testUserID), h.Subscribe)
	api.Delete("/:id/subscribe", withUser(testUserID), h.Unsubscribe)
	return app, users
}

func TestRegister_ValidatesBody(t *testing.T) {
	app, users := newUserTestApp()

	status, _, _ := doRequest(t, app, fiber.MethodPost, "/api/users", `{"email": "not-an-email", "username": "cook"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	users.AssertNotCalled(t, "Register", mock.Anything)
}

func TestLogin_ReturnsAuthToken(t *testing.T) {
	app, users := newUserTestApp()
	users.On("Login", domain.LoginRequest{Email: "cook@example.com", Password: "supersecret"}).
		Return(domain.LoginResponse{AuthToken: "signed"}, nil)

	status, body, _ := doRequest(t, app, fiber.MethodPost, "/api/auth/token/login",
		`{"email": "cook@example.com", "password": "supersecret"}`)
	require.Equal(t, fiber.StatusOK, status)

	var envelope struct {
		Data domain.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "signed", envelope.Data.AuthToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app, users := newUserTestApp()
	users.On("Login", mock.Anything).Return(domain.LoginResponse{}, domain.ErrInvalidCredentials)

	status, _, _ := doRequest(t, app, fiber.MethodPost, "/api/auth/token/login",
		`{"email": "cook@example.com", "password": "wrong"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSubscribe_Statuses(t *testing.T) {
	const authorID = "7a6b5c4d-3e2f-4a1b-9c8d-7e6f5a4b3c21"

	t.Run("created with recipes limit", func(t *testing.T) {
		app, users := newUserTestApp()
		users.On("Subscribe", authorID, 3, testUserID).Return(domain.UserFollowResponse{RecipesCount: 10}, nil)

		status, _, _ := doRequest(t, app, fiber.MethodPost, "/api/users/"+authorID+"/subscribe?recipes_limit=3", "")
		assert.Equal(t, fiber.StatusCreated, status)
	})

	t.Run("invalid recipes limit", func(t *testing.T) {
		app, users := newUserTestApp()

		status, _, _ := doRequest(t, app, fiber.MethodPost, "/api/users/"+authorID+"/subscribe?recipes_limit=abc", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
		users.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("self", func(t *testing.T) {
		app, users := newUserTestApp()
		users.On("Subscribe", testUserID, 0, testUserID).Return(domain.UserFollowResponse{}, domain.ErrSelfSubscribe)

		status, _, _ := doRequest(t, app, fiber.MethodPost, "/api/users/"+testUserID+"/subscribe", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("missing author", func(t *testing.T) {
		app, users := newUserTestApp()
		users.On("Subscribe", authorID, 0, testUserID).Return(domain.UserFollowResponse{}, domain.ErrUserNotFound)

		status, _, _ := doRequest(t, app, fiber.MethodPost, "/api/users/"+authorID+"/subscribe", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("unsubscribe when not subscribed", func(t *testing.T) {
		app, users := newUserTestApp()
		users.On("Unsubscribe", authorID, testUserID).Return(domain.ErrNotSubscribed)

		status, _, _ := doRequest(t, app, fiber.MethodDelete, "/api/users/"+authorID+"/subscribe", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestGetSubscriptions_PassesPaging(t *testing.T) {
	app, users := newUserTestApp()
	users.On("GetSubscriptions", 1, 10, 2, testUserID).Return([]domain.UserFollowResponse{}, int64(0), nil)

	status, _, _ := doRequest(t, app, fiber.MethodGet, "/api/users/subscriptions?limit=10&recipes_limit=2", "")

	assert.Equal(t, fiber.StatusOK, status)
	users.AssertExpectations(t)
}
