// tokenstore — durable-хранилище учётных данных клиента: access-токен,
// refresh-токен и момент истечения access-токена.
//
// Контракт:
//   - Save пишет все три значения атомарно с точки зрения читателей —
//     промежуточное состояние (часть старых, часть новых) ненаблюдаемо;
//   - Clear идемпотентен: очистка пустого хранилища — no-op, не ошибка;
//   - значения всегда очищаются вместе, никогда по отдельности;
//   - хранилище никогда не ходит в сеть.
//
// Конкурентные записи — last-write-wins: рефреш идемпотентен на стороне
// сервера, более новый токен всегда вытесняет старый.
package tokenstore

import (
	"errors"
	"time"
)

var (
	// ErrNotFound — токены не сохранялись или были очищены.
	ErrNotFound = errors.New("token record not found")
)

// Record — пара токенов, срок жизни access-токена и момент выдачи
// refresh-токена. IssuedAt выставляется при логине и переживает ротацию
// access-токена: refresh-токен при рефреше не меняется.
type Record struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	IssuedAt     time.Time `json:"issued_at"`
}

// Expired сообщает, истёк ли access-токен к моменту now.
// Нулевой ExpiresAt трактуем как "срок неизвестен, считаем живым":
// бэкенд всё равно ответит 401, и сработает обычный рефреш.
func (r Record) Expired(now time.Time) bool {
	if r.ExpiresAt.IsZero() {
		return false
	}

	return !now.Before(r.ExpiresAt)
}

// WithinRefreshWindow — access-токен ещё жив, но истекает в пределах
// threshold: кандидат на проактивный рефреш при инициализации сессии.
func (r Record) WithinRefreshWindow(now time.Time, threshold time.Duration) bool {
	if r.ExpiresAt.IsZero() {
		return false
	}

	return !r.Expired(now) && now.Add(threshold).After(r.ExpiresAt)
}

// RefreshExpired — refresh-токен заведомо мёртв: с момента выдачи прошло
// больше ttl, рефрешить им бессмысленно. Нулевой IssuedAt (запись старого
// формата) или нулевой ttl — считаем живым, решит сервер.
func (r Record) RefreshExpired(now time.Time, ttl time.Duration) bool {
	if r.IssuedAt.IsZero() || ttl <= 0 {
		return false
	}

	return !now.Before(r.IssuedAt.Add(ttl))
}

// Store задает контракт хранилища токенов.
type Store interface {
	// Save перезаписывает запись целиком.
	Save(rec Record) error
	// Read возвращает текущую запись или ErrNotFound.
	Read() (Record, error)
	// Clear удаляет запись; идемпотентен.
	Clear() error
}
