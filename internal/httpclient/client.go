// httpclient — единая точка исходящих запросов к REST-бэкенду HeartLink.
//
// Ответственность:
//   - прикрепление Authorization: Bearer <access-токен> из хранилища
//     (отсутствие токена — не ошибка, заголовок просто опускается);
//   - нормализация ответов/ошибок в таксономию apierrors;
//   - прозрачный рефреш по 401: не более одного рефреша на исходный
//     запрос, после успешного рефреша запрос повторяется ровно один раз;
//     второй 401 после повтора терминален и больше не ретраится;
//   - одновременные 401 от независимых запросов схлопываются в один
//     upstream-рефреш (singleflight); инвариант "не более одного рефреша
//     на запрос" при этом сохраняется.
//
// Порядок в рамках одного запроса строго последовательный:
// retry не уходит, пока рефреш не завершился.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartlink-app/go-heartlink-client/internal/apierrors"
	"github.com/heartlink-app/go-heartlink-client/internal/config"
	logctx "github.com/heartlink-app/go-heartlink-client/internal/pkg/log"
	"github.com/heartlink-app/go-heartlink-client/internal/tokenstore"
)

const (
	refreshPath = "/auth/refresh-token"
	loginPath   = "/auth/login"
)

// Client — HTTP-клиент поверх net/http с токен-стором и рефреш-координатором.
// Безопасен для конкурентного использования.
type Client struct {
	baseURL     string
	httpc       *http.Client
	store       tokenstore.Store
	log         *slog.Logger
	fallbackTTL time.Duration
	userAgent   string
	deviceID    string

	refreshSF singleflight.Group

	// onSessionInvalid дергается при терминальном провале рефреша,
	// после очистки хранилища. Регистрируется менеджером сессии.
	onSessionInvalid func(reason string)
}

// New создает клиент по конфигурации. Логгер nil — берём slog.Default().
func New(cfg *config.Config, store tokenstore.Store, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.API.BaseURL, "/"),
		httpc:       &http.Client{Timeout: cfg.API.Timeout},
		store:       store,
		log:         log,
		fallbackTTL: cfg.Auth.AccessTokenFallbackTTL,
		userAgent:   "go-heartlink-client",
	}
}

// SetOnSessionInvalid регистрирует колбэк терминальной инвалидации сессии.
// Вызывать до первого запроса; клиент не синхронизирует это поле.
func (c *Client) SetOnSessionInvalid(fn func(reason string)) {
	c.onSessionInvalid = fn
}

// SetDeviceID — идентификатор установки для заголовка X-Device-Id.
// Как и колбэк выше, выставляется при сборке, до первого запроса.
func (c *Client) SetDeviceID(id string) {
	c.deviceID = id
}

// Get/Post/Patch/Delete — сахар над Do.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do выполняет запрос method path с JSON-телом in и декодирует 2xx-ответ
// в out (nil out — тело отбрасывается). Не-2xx и транспортные сбои
// возвращаются как *apierrors.Error.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	const op = "httpclient.Do"

	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
	}

	requestID := uuid.NewString()
	ctx = logctx.With(ctx,
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)

	status, respBody, err := c.send(ctx, method, path, body, requestID, true)
	if err != nil {
		return err
	}

	// 401 — передаём управление рефреш-координатору; один повтор максимум.
	// Login работает без сессии: его 401 — неверные креды, а не протухший
	// access-токен, рефреш и инвалидация здесь неуместны.
	if status == http.StatusUnauthorized && path != refreshPath && path != loginPath {
		if rerr := c.refresh(ctx); rerr != nil {
			return rerr
		}

		status, respBody, err = c.send(ctx, method, path, body, requestID, true)
		if err != nil {
			return err
		}

		// Запрос уже повторён: повторный 401 терминален, нового рефреша нет.
		if status == http.StatusUnauthorized {
			return apierrors.AuthExpired(nil)
		}
	}

	if status < 200 || status > 299 {
		return apierrors.FromResponse(status, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}

	return nil
}

// send — одна физическая отправка. Тело пересобирается из буфера на каждый
// вызов, поэтому повтор после рефреша безопасен.
func (c *Client) send(ctx context.Context, method, path string, body []byte, requestID string, withAuth bool) (int, []byte, error) {
	const op = "httpclient.send"

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}

	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	if withAuth {
		// Токен читается из хранилища на каждую попытку: после рефреша
		// повтор автоматически уходит уже с новым access-токеном.
		if rec, rerr := c.store.Read(); rerr == nil && rec.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+rec.AccessToken)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		logctx.From(ctx).Warn("request_failed",
			slog.String("err", err.Error()),
			slog.Duration("dur", time.Since(start)),
		)

		return 0, nil, apierrors.Network(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apierrors.Network(err)
	}

	logctx.From(ctx).Debug("request_done",
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)

	return resp.StatusCode, respBody, nil
}
