package shoplist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"foodgram/internal/domain"
)

const (
	FileName = "shop-list.txt"

	titleLine  = "список покупок"
	headerLine = "ингридиент, ед. - количество"
)

// ItemSource returns the cart's ingredients summed per (name, unit).
type ItemSource interface {
	Items(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error)
}

type Service struct {
	source ItemSource
}

func NewService(source ItemSource) *Service {
	return &Service{source: source}
}

// Build returns the consolidated list sorted by name, then unit. Sorting
// happens here with plain byte comparison so the order does not depend on
// the database collation.
func (s *Service) Build(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	items, err := s.source.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items, nil
}

// Text builds and renders the user's shopping list.
func (s *Service) Text(ctx context.Context, userID int64) (string, error) {
	items, err := s.Build(ctx, userID)
	if err != nil {
		return "", err
	}
	return Render(items), nil
}

// Render — две строки заголовка, затем "<name> (<unit>) - <amount>" на
// каждую позицию; каждая строка, включая последнюю, заканчивается "\n".
func Render(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(titleLine)
	b.WriteByte('\n')
	b.WriteString(headerLine)
	b.WriteByte('\n')
	for _, it := range items {
		fmt.Fprintf(&b, "%s (%s) - %d\n", it.Name, it.MeasurementUnit, it.Amount)
	}
	return b.String()
}
