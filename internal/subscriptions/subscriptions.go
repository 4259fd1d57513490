// subscriptions — тарифы и авторитетные серверные проверки фич.
// CheckFeature — серверная половина feature-гейта (featuregate.Checker).
package subscriptions

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

// Plans возвращает доступные тарифы.
func (s *Service) Plans(ctx context.Context) ([]models.Plan, error) {
	const op = "subscriptions.Plans"

	var resp models.PlansResponse
	if err := s.api.Get(ctx, "/subscriptions/plans", &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp.Plans, nil
}

// Features возвращает активные фичи текущего пользователя.
func (s *Service) Features(ctx context.Context) ([]string, error) {
	const op = "subscriptions.Features"

	var resp models.FeaturesResponse
	if err := s.api.Get(ctx, "/subscriptions/features", &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp.Features, nil
}

// CheckFeature — авторитетная проверка одной фичи на сервере.
func (s *Service) CheckFeature(ctx context.Context, name string) (bool, error) {
	const op = "subscriptions.CheckFeature"

	var resp models.FeatureCheckResponse
	if err := s.api.Get(ctx, "/subscriptions/features/"+url.PathEscape(name)+"/check", &resp); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return resp.Available, nil
}
