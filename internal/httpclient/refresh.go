package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartlink-app/go-heartlink-client/internal/apierrors"
	"github.com/heartlink-app/go-heartlink-client/internal/models"
	logctx "github.com/heartlink-app/go-heartlink-client/internal/pkg/log"
	"github.com/heartlink-app/go-heartlink-client/internal/pkg/redact"
)

// singleflight-ключ: рефреш один на процесс, параллельные 401 ждут общий результат.
const refreshKey = "refresh"

// refresh обменивает refresh-токен на новый access-токен и сохраняет его.
//
// Машина состояний запроса: Unauthorized -> RefreshPending ->
// {RefreshSucceeded -> повтор в Do, RefreshFailed -> инвалидация сессии}.
// Провал терминален: хранилище очищается целиком, менеджер сессии
// уведомляется, вызывающий получает KindAuthExpired.
func (c *Client) refresh(ctx context.Context) error {
	_, err, shared := c.refreshSF.Do(refreshKey, func() (any, error) {
		return nil, c.doRefresh(ctx)
	})

	if err != nil {
		return err
	}

	if shared {
		logctx.From(ctx).Debug("refresh_deduplicated")
	}

	return nil
}

func (c *Client) doRefresh(ctx context.Context) error {
	const op = "httpclient.doRefresh"

	lg := logctx.From(ctx)

	rec, err := c.store.Read()
	if err != nil || rec.RefreshToken == "" {
		// Рефрешить нечем — сразу RefreshFailed.
		return c.invalidate(ctx, "session expired", fmt.Errorf("%s: no refresh token", op))
	}

	payload, err := json.Marshal(models.RefreshRequest{RefreshToken: rec.RefreshToken})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	status, body, err := c.send(ctx, http.MethodPost, refreshPath, payload, uuid.NewString(), false)
	if err != nil {
		// Сетевой сбой рефреша не уничтожает сессию: токены могли остаться
		// валидными, пользователь повторит действие при живой сети.
		return err
	}

	if status < 200 || status > 299 {
		return c.invalidate(ctx, "session expired", apierrors.FromResponse(status, body))
	}

	var out models.RefreshResponse
	if uerr := json.Unmarshal(body, &out); uerr != nil || out.Token == "" {
		return c.invalidate(ctx, "session expired", fmt.Errorf("%s: malformed refresh response", op))
	}

	now := time.Now().UTC()
	rec.AccessToken = out.Token
	rec.ExpiresAt = AccessExpiry(out.Token, now, out.ExpiresIn, c.fallbackTTL)

	if serr := c.store.Save(rec); serr != nil {
		return c.invalidate(ctx, "session expired", fmt.Errorf("%s: %w", op, serr))
	}

	lg.Info("token_refreshed",
		slog.String("token", redact.Token(out.Token)),
		slog.Time("expires_at", rec.ExpiresAt),
	)

	return nil
}

// invalidate — терминальный RefreshFailed: чистим хранилище, сигналим
// менеджеру сессии, возвращаем AuthExpired с причиной в cause.
func (c *Client) invalidate(ctx context.Context, reason string, cause error) error {
	if err := c.store.Clear(); err != nil {
		logctx.From(ctx).Warn("token_clear_failed", slog.String("err", err.Error()))
	}

	logctx.From(ctx).Info("session_invalidated", slog.String("reason", reason))

	if c.onSessionInvalid != nil {
		c.onSessionInvalid(reason)
	}

	return apierrors.AuthExpired(cause)
}

// AccessExpiry вычисляет срок жизни access-токена:
// expiresIn из ответа -> exp-claim из самого токена (без проверки подписи —
// секрета у клиента нет и быть не должно) -> фиксированный fallback TTL.
func AccessExpiry(token string, now time.Time, expiresIn int64, fallback time.Duration) time.Time {
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn) * time.Second)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, eerr := parsed.Claims.GetExpirationTime(); eerr == nil && exp != nil {
			return exp.Time.UTC()
		}
	}

	return now.Add(fallback)
}

// ProactiveRefresh — рефреш по инициативе сессии (окно threshold до
// истечения access-токена при старте). Семантика провала та же, что у
// рефреша по 401.
func (c *Client) ProactiveRefresh(ctx context.Context) error {
	return c.refresh(ctx)
}
