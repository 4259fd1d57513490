// Пакет log протаскивает *slog.Logger через context.Context, чтобы
// request-scoped атрибуты (request_id, method, path) доезжали до всех
// записей по пути запроса без явной передачи логгера.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From возвращает логгер, привязанный к контексту; если его нет —
// slog.Default(), так что вызов безопасен на любом контексте.
func From(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok || l == nil {
		return slog.Default()
	}

	return l
}

// With — шорткат: обогащает логгер из контекста атрибутами и кладёт обратно.
// Используется HTTP-клиентом для request-scoped атрибутов (request_id, path).
func With(ctx context.Context, args ...any) context.Context {
	return Into(ctx, From(ctx).With(args...))
}
