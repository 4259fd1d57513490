// profiles — типизированная обёртка над REST-эндпойнтами дискавери
// и собственного профиля. Подбор кандидатов — серверная логика,
// клиент только запрашивает страницы и отправляет свайпы.
package profiles

import (
	"context"
	"fmt"
	"net/url"

	"github.com/heartlink-app/go-heartlink-client/internal/models"
)

// api — используемая часть HTTP-клиента.
type api interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Patch(ctx context.Context, path string, in, out any) error
}

// sessionSink — менеджер сессии как приёмник обновлений профиля.
type sessionSink interface {
	UpdateUser(patch models.UserPatch)
}

type Service struct {
	api  api
	sess sessionSink
}

func New(api api, sess sessionSink) *Service {
	return &Service{api: api, sess: sess}
}

// Me возвращает собственный профиль.
func (s *Service) Me(ctx context.Context) (*models.User, error) {
	const op = "profiles.Me"

	var user models.User
	if err := s.api.Get(ctx, "/profiles/me", &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// UpdateMe отправляет merge-patch профиля и синхронизирует снапшот сессии
// с ответом сервера (новые поля перезаписывают, отсутствующие сохраняются).
func (s *Service) UpdateMe(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	const op = "profiles.UpdateMe"

	var user models.User
	if err := s.api.Patch(ctx, "/profiles/me", patch, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.sess != nil {
		s.sess.UpdateUser(patch)
	}

	return &user, nil
}

// Discover возвращает страницу кандидатов; cursor пустой — первая страница.
func (s *Service) Discover(ctx context.Context, cursor string) (*models.DiscoverPage, error) {
	const op = "profiles.Discover"

	path := "/profiles/discover"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}

	var page models.DiscoverPage
	if err := s.api.Get(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &page, nil
}

// Swipe отправляет решение по карточке; Matched в ответе — взаимный лайк.
func (s *Service) Swipe(ctx context.Context, targetID int64, direction models.SwipeDirection) (*models.SwipeResult, error) {
	const op = "profiles.Swipe"

	var res models.SwipeResult
	if err := s.api.Post(ctx, "/profiles/swipes", models.SwipeRequest{
		TargetID:  targetID,
		Direction: direction,
	}, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &res, nil
}
