// gifts — каталог и отправка подарков. Биллинг и балансы — серверные;
// клиент отправляет запрос и показывает результат.
package gifts

import (
	"context"
	"fmt"

	"github.com/heartlink-app/go-heartlink-client/internal/models"
)

type api interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
}

type Service struct {
	api api
}

func New(api api) *Service {
	return &Service{api: api}
}

// Catalog возвращает доступные подарки.
func (s *Service) Catalog(ctx context.Context) (*models.GiftCatalog, error) {
	const op = "gifts.Catalog"

	var cat models.GiftCatalog
	if err := s.api.Get(ctx, "/gifts", &cat); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cat, nil
}

// Send отправляет подарок пользователю targetID.
// Нехватка баланса приходит 422-й с field-level деталями (KindValidation).
func (s *Service) Send(ctx context.Context, targetID, giftID int64, note string) (*models.SendGiftResult, error) {
	const op = "gifts.Send"

	var res models.SendGiftResult
	if err := s.api.Post(ctx, "/gifts/send", models.SendGiftRequest{
		TargetID: targetID,
		GiftID:   giftID,
		Note:     note,
	}, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &res, nil
}
