// messages — превью диалогов для списка чатов. Доставка сообщений и
// realtime — вне зоны клиента, здесь только чтение свёрстанных сервером превью.
package messages

import (
	"context"
	"fmt"
	"net/url"

	"github.com/heartlink-app/go-heartlink-client/internal/models"
)

type api interface {
	Get(ctx context.Context, path string, out any) error
}

type Service struct {
	api api
}

func New(api api) *Service {
	return &Service{api: api}
}

// Conversations возвращает страницу превью диалогов.
func (s *Service) Conversations(ctx context.Context, cursor string) (*models.ConversationsPage, error) {
	const op = "messages.Conversations"

	path := "/messages/conversations"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}

	var page models.ConversationsPage
	if err := s.api.Get(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &page, nil
}
