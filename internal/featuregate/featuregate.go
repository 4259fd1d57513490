// featuregate резолвит именованные подписочные фичи в решение о доступе:
// быстрая локальная проверка по снапшоту сессии, затем авторитетная
// серверная проверка для фич, которых нет в локальных claims.
//
// Отказ отдельной серверной проверки не валит вычисление целиком —
// такая фича считается недоступной (false). Для анонимной сессии
// серверные проверки не выполняются вовсе.
package featuregate

import (
	"context"
	"log/slog"
	"sync"

	logctx "github.com/heartlink-app/go-heartlink-client/internal/pkg/log"
	"github.com/heartlink-app/go-heartlink-client/internal/session"
)

// Mode — правило агрегации при проверке нескольких фич.
type Mode string

const (
	// ModeAll — доступ есть, только если доступны все фичи (дефолт).
	ModeAll Mode = "all"
	// ModeAny — достаточно хотя бы одной доступной фичи.
	ModeAny Mode = "any"
)

// Source — происхождение решения по конкретной фиче.
type Source string

const (
	SourceLocal  Source = "local"  // по claims из снапшота сессии
	SourceServer Source = "server" // подтверждено бэкендом
)

// FeatureResult — решение по одной фиче с провенансом.
type FeatureResult struct {
	Allowed bool
	Source  Source
}

// Decision — агрегированное решение по набору фич.
type Decision struct {
	Allowed  bool
	Features map[string]FeatureResult
}

// Session — читаемая гейтом часть менеджера сессии.
type Session interface {
	HasFeature(name string) bool
	State() session.State
}

// Checker — авторитетная серверная проверка одной фичи.
// Реализуется subscriptions.Service.
type Checker interface {
	CheckFeature(ctx context.Context, name string) (bool, error)
}

// Gate комбинирует локальные claims и серверные проверки.
type Gate struct {
	sess    Session
	checker Checker
}

func New(sess Session, checker Checker) *Gate {
	return &Gate{sess: sess, checker: checker}
}

// Check вычисляет решение по набору фич с правилом mode (пустой mode — ModeAll).
// Серверные проверки выполняются параллельно и ограничены ctx; отмена
// контекста обрывает невыполненные проверки, такие фичи считаются
// недоступными. Результат возвращается ровно один раз.
//
// Пустой набор имён: ModeAll — true (вакуумная истина), ModeAny — false.
func (g *Gate) Check(ctx context.Context, names []string, mode Mode) Decision {
	if mode == "" {
		mode = ModeAll
	}

	results := make([]FeatureResult, len(names))
	authenticated := g.sess.State() == session.StateAuthenticated

	var wg sync.WaitGroup

	for i, name := range names {
		if g.sess.HasFeature(name) {
			results[i] = FeatureResult{Allowed: true, Source: SourceLocal}
			continue
		}

		results[i] = FeatureResult{Allowed: false, Source: SourceLocal}

		if !authenticated {
			continue
		}

		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			available, err := g.checker.CheckFeature(ctx, name)
			if err != nil {
				// Недоступность проверки = недоступность фичи, не сбой гейта.
				logctx.From(ctx).Warn("feature_check_failed",
					slog.String("feature", name),
					slog.String("err", err.Error()),
				)

				return
			}

			results[i] = FeatureResult{Allowed: available, Source: SourceServer}
		}(i, name)
	}

	wg.Wait()

	features := make(map[string]FeatureResult, len(names))
	for i, name := range names {
		features[name] = results[i]
	}

	return Decision{
		Allowed:  aggregate(results, mode),
		Features: features,
	}
}

// CheckOne — частый случай одной фичи.
func (g *Gate) CheckOne(ctx context.Context, name string) bool {
	return g.Check(ctx, []string{name}, ModeAll).Allowed
}

func aggregate(results []FeatureResult, mode Mode) bool {
	if mode == ModeAny {
		for _, r := range results {
			if r.Allowed {
				return true
			}
		}

		return false
	}

	for _, r := range results {
		if !r.Allowed {
			return false
		}
	}

	return true
}
