package shopping

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/internal/utils/mailing"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"sort"
)

const shoppingListSubject = "Your Foodgram shopping list"

type (
	ShoppingService interface {
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, userID string) ([]byte, error)
		SendShoppingList(ctx context.Context, userID string) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		mailer             mailing.Mailer
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, mailer mailing.Mailer) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		mailer:             mailer,
	}
}

// GetShoppingList returns one item per ingredient in the user's cart with
// the amounts summed across recipes by the repository.
func (s *shoppingService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserIdentityRequired
	}

	totals, err := s.shoppingRepository.GetCartIngredientTotals(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToShoppingList(totals), nil
}

func (s *shoppingService) DownloadShoppingList(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Render(items), nil
}

func (s *shoppingService) SendShoppingList(ctx context.Context, userID string) error {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrShoppingCartEmpty
	}

	email, err := s.shoppingRepository.GetUserEmail(ctx, uuid.MustParse(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	body := fmt.Sprintf("<p>Your shopping list has %d ingredients. The full list is attached.</p>", len(items))
	if err := s.mailer.SendMail(email, shoppingListSubject, body, mailing.Attachment{
		FileName: domain.ShoppingListFileName,
		Content:  Render(items),
	}); err != nil {
		log.Errorf("failed to send shopping list to %s: %v", email, err)
		return err
	}
	return nil
}

// ToShoppingList converts the per-ingredient totals of the cart query into
// list items ordered by name, then unit, then id.
func ToShoppingList(totals []IngredientTotal) []domain.ShoppingListItem {
	items := make([]domain.ShoppingListItem, 0, len(totals))
	for _, row := range totals {
		items = append(items, domain.ShoppingListItem{
			IngredientID:    row.IngredientID.String(),
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			TotalAmount:     row.Total,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		if items[i].MeasurementUnit != items[j].MeasurementUnit {
			return items[i].MeasurementUnit < items[j].MeasurementUnit
		}
		return items[i].IngredientID < items[j].IngredientID
	})
	return items
}

// FormatLine renders "{name} - {amount} {unit}.".
func FormatLine(item domain.ShoppingListItem) string {
	return fmt.Sprintf("%s - %d %s.", item.Name, item.TotalAmount, item.MeasurementUnit)
}

func Render(items []domain.ShoppingListItem) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString(FormatLine(item))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
