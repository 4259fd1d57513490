package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartlink-app/go-heartlink-client/internal/apierrors"
	"github.com/heartlink-app/go-heartlink-client/internal/httpclient"
	"github.com/heartlink-app/go-heartlink-client/internal/models"
	"github.com/heartlink-app/go-heartlink-client/internal/pkg/redact"
	"github.com/heartlink-app/go-heartlink-client/internal/tokenstore"
)

// LoginOutcome — дискриминированный результат логина.
type LoginOutcome string

const (
	// LoginOK — вход выполнен, токены сохранены, сессия Authenticated.
	LoginOK LoginOutcome = "ok"
	// LoginRequiresVerification — аккаунт существует, но e-mail не
	// подтверждён; токены не сохраняются, сессия остаётся Anonymous.
	LoginRequiresVerification LoginOutcome = "requires_verification"
)

// LoginResult — исход успешного вызова Login. Ошибочный исход
// (неверные креды, сеть, 5xx) приходит обычным error из apierrors.
type LoginResult struct {
	Outcome LoginOutcome
	User    *models.User
}

// Initialize восстанавливает сессию при старте процесса: читает хранилище,
// при необходимости проактивно рефрешит access-токен (окно RefreshThreshold
// до истечения) и подтягивает текущего пользователя.
//
// Любой сбой на этом пути — нефатальный: токены чистятся, сессия
// оседает в Anonymous, ошибка логируется. Вызов не зависает — все сетевые
// шаги ограничены таймаутом клиента и ctx.
func (m *Manager) Initialize(ctx context.Context) State {
	const op = "session.Initialize"

	rec, err := m.store.Read()
	if err != nil {
		// Токенов никогда не было или они очищены — чистый Anonymous.
		m.settleAnonymous("")
		return StateAnonymous
	}

	now := time.Now().UTC()

	// Refresh-токен старше своего TTL мёртв локально — сразу Anonymous,
	// без заведомо провального похода на /auth/refresh-token.
	if rec.RefreshExpired(now, m.cfg.RefreshTokenTTL) {
		m.log.Info("stored_refresh_token_expired", slog.String("op", op))
		m.clearAndSettle(ReasonSessionExpired)

		return StateAnonymous
	}

	// Просроченный или истекающий access-токен рефрешим до похода за
	// пользователем; живой токен не трогаем.
	if rec.Expired(now) || rec.WithinRefreshWindow(now, m.cfg.RefreshThreshold) {
		if rerr := m.client.ProactiveRefresh(ctx); rerr != nil {
			m.log.Warn("startup_refresh_failed",
				slog.String("op", op),
				slog.String("err", rerr.Error()),
			)
			m.clearAndSettle(ReasonSessionExpired)
			return StateAnonymous
		}
	}

	var user models.User
	if err := m.client.Get(ctx, "/auth/me", &user); err != nil {
		m.log.Warn("startup_me_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		m.clearAndSettle(ReasonSessionExpired)
		return StateAnonymous
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &user
	m.invalidateReason = ""
	m.mu.Unlock()

	m.log.Info("session_restored", slog.String("email", redact.Email(user.Email)))

	return StateAuthenticated
}

// Login выполняет вход по email+пароль.
// Исходы: LoginOK (токены сохранены, Authenticated);
// LoginRequiresVerification (ничего не сохранено, Anonymous);
// error — отказ с сообщением из apierrors.
func (m *Manager) Login(ctx context.Context, email, password string) (LoginResult, error) {
	const op = "session.Login"

	var resp models.LoginResponse
	if err := m.client.Post(ctx, "/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp); err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if resp.RequiresVerification {
		// Токены не сохраняются; сессия оседает в Anonymous с причиной,
		// по которой экран логина покажет кнопку повторной отправки письма.
		m.mu.Lock()
		m.state = StateAnonymous
		m.user = nil
		m.invalidateReason = ReasonUnverifiedEmail
		m.mu.Unlock()

		m.log.Info("login_requires_verification", slog.String("email", redact.Email(email)))

		return LoginResult{Outcome: LoginRequiresVerification}, nil
	}

	if resp.Token == "" || resp.User == nil {
		return LoginResult{}, fmt.Errorf("%s: malformed login response", op)
	}

	now := time.Now().UTC()
	rec := tokenstore.Record{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    httpclient.AccessExpiry(resp.Token, now, resp.ExpiresIn, m.cfg.AccessTokenFallbackTTL),
		IssuedAt:     now,
	}

	if err := m.store.Save(rec); err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = resp.User
	m.invalidateReason = ""
	m.mu.Unlock()

	m.log.Info("login_ok", slog.String("email", redact.Email(email)))

	return LoginResult{Outcome: LoginOK, User: resp.User.Clone()}, nil
}

// Logout завершает сессию из любого предыдущего состояния: best-effort
// уведомляет бэкенд (ошибки глотаются), чистит хранилище и in-memory
// состояние. Навигацию не выполняет.
func (m *Manager) Logout(ctx context.Context) error {
	const op = "session.Logout"

	// Fire-and-forget: серверная инвалидация желательна, но не обязательна.
	if err := m.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		m.log.Debug("logout_notify_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	m.clearAndSettle(ReasonLoggedOut)

	return nil
}

// VerifyEmail подтверждает e-mail по токену из письма.
// Состояние сессии не трогает: битый/просроченный токен возвращается
// структурированной ошибкой (KindValidation/KindNotFound), отличимой
// от сетевого сбоя (KindNetwork).
func (m *Manager) VerifyEmail(ctx context.Context, token string) error {
	const op = "session.VerifyEmail"

	if err := m.client.Post(ctx, "/auth/verify-email", models.VerifyEmailRequest{Token: token}, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ResendVerification повторно отправляет письмо подтверждения.
func (m *Manager) ResendVerification(ctx context.Context, email string) error {
	const op = "session.ResendVerification"

	if err := m.client.Post(ctx, "/auth/resend-verification", models.ResendVerificationRequest{Email: email}, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// clearAndSettle — общий хвост logout/провалов инициализации.
func (m *Manager) clearAndSettle(reason string) {
	if err := m.store.Clear(); err != nil {
		m.log.Warn("token_clear_failed", slog.String("err", err.Error()))
	}

	m.settleAnonymous(reason)
}

func (m *Manager) settleAnonymous(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateAnonymous
	m.user = nil
	m.invalidateReason = reason
}

// IsAuthRelated — хелпер для вызывающих: ошибка означает смерть сессии?
func IsAuthRelated(err error) bool {
	return apierrors.IsAuthExpired(err) || errors.Is(err, ErrNotAuthenticated)
}
