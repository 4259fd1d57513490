// session содержит process-wide состояние аутентификации клиента:
// текущего пользователя, стадию жизненного цикла и причину последней
// инвалидации. Единственный владелец переходов состояния; остальные
// пакеты только читают снапшоты.
//
// Жизненный цикл: Initializing -> {Authenticated, Anonymous};
// Authenticated -> Anonymous на logout или терминальном провале рефреша;
// Authenticated -> Authenticated (updated) на merge профиля или рефреше.
//
// Менеджер не выполняет навигацию: редирект на экран логина — забота
// вызывающего, которому доступны State() и InvalidateReason().
//
// Экземпляр Manager безопасен для конкурентного использования; на один
// клиентский процесс живёт ровно одна сессия (мульти-аккаунта нет).
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartlink-app/go-heartlink-client/internal/config"
	"github.com/heartlink-app/go-heartlink-client/internal/models"
	"github.com/heartlink-app/go-heartlink-client/internal/tokenstore"
)

// State — стадия жизненного цикла сессии.
type State string

const (
	StateInitializing  State = "initializing"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

var (
	// ErrNotAuthenticated — операция требует живой сессии.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Причины инвалидации, которые экран логина превращает в сообщение
// (включая кнопку "отправить письмо ещё раз" для unverified email).
const (
	ReasonSessionExpired  = "session expired"
	ReasonUnverifiedEmail = "unverified email"
	ReasonLoggedOut       = "logged out"
)

// APIClient — транспорт, которым пользуется менеджер сессии.
// Реализуется httpclient.Client; в тестах подменяется gomock-моком.
type APIClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	ProactiveRefresh(ctx context.Context) error
	SetOnSessionInvalid(fn func(reason string))
}

// Manager — единственный владелец состояния сессии.
type Manager struct {
	client APIClient
	store  tokenstore.Store
	cfg    config.AuthConfig
	log    *slog.Logger

	mu               sync.RWMutex
	state            State
	user             *models.User
	invalidateReason string
}

// New создает менеджер в состоянии Initializing и регистрирует себя
// получателем сигнала терминальной инвалидации от HTTP-клиента.
func New(client APIClient, store tokenstore.Store, cfg config.AuthConfig, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}

	m := &Manager{
		client: client,
		store:  store,
		cfg:    cfg,
		log:    log,
		state:  StateInitializing,
	}

	client.SetOnSessionInvalid(m.handleInvalidated)

	return m
}

// handleInvalidated — сигнал от рефреш-координатора: хранилище уже очищено,
// остаётся уронить in-memory состояние.
func (m *Manager) handleInvalidated(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateAnonymous
	m.user = nil
	m.invalidateReason = reason
}

// State — текущая стадия жизненного цикла.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// CurrentUser — копия снапшота пользователя (nil для Anonymous).
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.user.Clone()
}

// AuthenticatedUser — снапшот пользователя живой сессии.
// Для любого другого состояния возвращает ErrNotAuthenticated.
func (m *Manager) AuthenticatedUser() (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != StateAuthenticated || m.user == nil {
		return nil, ErrNotAuthenticated
	}

	return m.user.Clone(), nil
}

// InvalidateReason — причина последнего перехода в Anonymous
// ("session expired", "unverified email", "logged out"); пустая строка,
// если инвалидации не было.
func (m *Manager) InvalidateReason() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.invalidateReason
}

// HasFeature — синхронная проверка по списку активных фич пользователя.
// Для неаутентифицированной сессии всегда false, для любого имени.
func (m *Manager) HasFeature(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != StateAuthenticated {
		return false
	}

	return m.user.HasFeature(name)
}

// UpdateUser — shallow-merge частичного обновления в снапшот пользователя.
// Статус аутентификации этим путём не меняется никогда.
func (m *Manager) UpdateUser(patch models.UserPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated || m.user == nil {
		return
	}

	m.user.Merge(patch)
}
