package shopping

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/internal/utils/mailing"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockShoppingRepository struct {
	mock.Mock
}

func (m *mockShoppingRepository) GetCartIngredientTotals(ctx context.Context, userID uuid.UUID) ([]IngredientTotal, error) {
	args := m.Called(ctx, userID)
	totals, _ := args.Get(0).([]IngredientTotal)
	return totals, args.Error(1)
}

func (m *mockShoppingRepository) GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendMail(toEmail string, subject string, body string, attachments ...mailing.Attachment) error {
	return m.Called(toEmail, subject, body, attachments).Error(0)
}

var (
	flourID = uuid.MustParse("1b4e28ba-2fa1-41d2-883f-0016d3cca001")
	eggsID  = uuid.MustParse("1b4e28ba-2fa1-41d2-883f-0016d3cca002")
)

func TestToShoppingList_CarriesTotals(t *testing.T) {
	rows := []IngredientTotal{
		{IngredientID: flourID, Name: "X", MeasurementUnit: "g", Total: 7},
		{IngredientID: eggsID, Name: "Y", MeasurementUnit: "pcs", Total: 1},
	}

	items := ToShoppingList(rows)

	require.Len(t, items, 2)
	assert.Equal(t, flourID.String(), items[0].IngredientID)
	assert.Equal(t, "X - 7 g.", FormatLine(items[0]))
	assert.Equal(t, "Y - 1 pcs.", FormatLine(items[1]))
}

func TestToShoppingList_OrdersByNameThenUnit(t *testing.T) {
	rows := []IngredientTotal{
		{IngredientID: uuid.New(), Name: "sugar", MeasurementUnit: "g", Total: 10},
		{IngredientID: uuid.New(), Name: "milk", MeasurementUnit: "ml", Total: 200},
		{IngredientID: uuid.New(), Name: "milk", MeasurementUnit: "cup", Total: 1},
		{IngredientID: uuid.New(), Name: "apple", MeasurementUnit: "pcs", Total: 3},
	}

	items := ToShoppingList(rows)

	var lines []string
	for _, item := range items {
		lines = append(lines, FormatLine(item))
	}
	assert.Equal(t, []string{
		"apple - 3 pcs.",
		"milk - 1 cup.",
		"milk - 200 ml.",
		"sugar - 10 g.",
	}, lines)
}

func TestToShoppingList_Empty(t *testing.T) {
	assert.Empty(t, ToShoppingList(nil))
	assert.Empty(t, Render(nil))
}

func TestDownloadShoppingList(t *testing.T) {
	repo := new(mockShoppingRepository)
	svc := NewShoppingService(repo, new(mockMailer))
	ctx := context.Background()
	userID := uuid.New()

	repo.On("GetCartIngredientTotals", ctx, userID).Return([]IngredientTotal{
		{IngredientID: eggsID, Name: "eggs", MeasurementUnit: "pcs", Total: 4},
		{IngredientID: flourID, Name: "flour", MeasurementUnit: "g", Total: 350},
	}, nil)

	data, err := svc.DownloadShoppingList(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, "eggs - 4 pcs.\nflour - 350 g.\n", string(data))
}

func TestDownloadShoppingList_EmptyCart(t *testing.T) {
	repo := new(mockShoppingRepository)
	svc := NewShoppingService(repo, new(mockMailer))
	ctx := context.Background()
	userID := uuid.New()

	repo.On("GetCartIngredientTotals", ctx, userID).Return([]IngredientTotal{}, nil)

	data, err := svc.DownloadShoppingList(ctx, userID.String())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDownloadShoppingList_RequiresUser(t *testing.T) {
	svc := NewShoppingService(new(mockShoppingRepository), new(mockMailer))

	_, err := svc.DownloadShoppingList(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUserIdentityRequired)
}

func TestSendShoppingList(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("mails the list as an attachment", func(t *testing.T) {
		repo := new(mockShoppingRepository)
		mailer := new(mockMailer)
		svc := NewShoppingService(repo, mailer)

		repo.On("GetCartIngredientTotals", ctx, userID).Return([]IngredientTotal{
			{IngredientID: flourID, Name: "flour", MeasurementUnit: "g", Total: 350},
		}, nil)
		repo.On("GetUserEmail", ctx, userID).Return("cook@example.com", nil)
		mailer.On("SendMail", "cook@example.com", shoppingListSubject, mock.Anything,
			[]mailing.Attachment{{FileName: "my_shopping_list.txt", Content: []byte("flour - 350 g.\n")}},
		).Return(nil)

		require.NoError(t, svc.SendShoppingList(ctx, userID.String()))
		mailer.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		repo := new(mockShoppingRepository)
		mailer := new(mockMailer)
		svc := NewShoppingService(repo, mailer)

		repo.On("GetCartIngredientTotals", ctx, userID).Return(nil, nil)

		err := svc.SendShoppingList(ctx, userID.String())
		assert.ErrorIs(t, err, domain.ErrShoppingCartEmpty)
		mailer.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("smtp failure", func(t *testing.T) {
		repo := new(mockShoppingRepository)
		mailer := new(mockMailer)
		svc := NewShoppingService(repo, mailer)

		repo.On("GetCartIngredientTotals", ctx, userID).Return([]IngredientTotal{
			{IngredientID: flourID, Name: "flour", MeasurementUnit: "g", Total: 1},
		}, nil)
		repo.On("GetUserEmail", ctx, userID).Return("cook@example.com", nil)
		mailer.On("SendMail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: refused"))

		assert.Error(t, svc.SendShoppingList(ctx, userID.String()))
	})
}
