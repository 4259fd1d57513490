// apierrors нормализует ответы бэкенда в единую таксономию ошибок клиента.
// На вход — HTTP-статус и тело ответа (или транспортная ошибка без ответа),
// на выход — *Error со стабильным Kind для машиночитаемой обработки
// и безопасным человекочитаемым Message.
//
// Маппинг статусов:
//   - нет ответа (транспорт)  -> KindNetwork
//   - 401                     -> KindAuthExpired ("session expired")
//   - 403                     -> KindForbidden
//   - 404                     -> KindNotFound
//   - 422                     -> KindValidation (field-level детали as-is)
//   - 5xx                     -> KindServer
//   - прочее                  -> KindUnknown (message сервера или fallback)
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind — стабильный машиночитаемый класс ошибки.
type Kind string

const (
	KindNetwork     Kind = "network"
	KindAuthExpired Kind = "auth_expired"
	KindForbidden   Kind = "forbidden"
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindServer      Kind = "server"
	KindUnknown     Kind = "unknown"
)

// Error — единый формат ошибки API-слоя.
// Status == 0 означает, что ответ не был получен (сетевой сбой).
// Fields заполнен только для KindValidation: имя поля -> список сообщений.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string][]string

	cause error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// serverBody — типовое тело ошибки бэкенда.
// 422 несёт errors: {field: [messages]}; прочие — message/error.
type serverBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// Network — транспортный сбой: ответ не получен.
func Network(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "network error: server unreachable",
		cause:   cause,
	}
}

// AuthExpired — терминальная ошибка аутентификации (после неудачного рефреша).
func AuthExpired(cause error) *Error {
	return &Error{
		Kind:    KindAuthExpired,
		Status:  http.StatusUnauthorized,
		Message: "session expired",
		cause:   cause,
	}
}

// FromResponse конвертирует не-2xx ответ бэкенда в *Error.
// Тело парсится best-effort: битый JSON не считается отдельной ошибкой,
// просто теряем детали и отдаём generic message.
func FromResponse(status int, body []byte) *Error {
	var sb serverBody
	_ = json.Unmarshal(body, &sb)

	serverMsg := sb.Message
	if serverMsg == "" {
		serverMsg = sb.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindAuthExpired, Status: status, Message: "session expired"}
	case status == http.StatusForbidden:
		return &Error{Kind: KindForbidden, Status: status, Message: "forbidden"}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: "not found"}
	case status == http.StatusUnprocessableEntity:
		msg := serverMsg
		if msg == "" {
			msg = "validation failed"
		}

		return &Error{Kind: KindValidation, Status: status, Message: msg, Fields: sb.Errors}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: "server error"}
	default:
		msg := serverMsg
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", status)
		}

		return &Error{Kind: KindUnknown, Status: status, Message: msg}
	}
}

// As — шорткат для errors.As на *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

func is(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}

	return false
}

func IsNetwork(err error) bool     { return is(err, KindNetwork) }
func IsAuthExpired(err error) bool { return is(err, KindAuthExpired) }
func IsForbidden(err error) bool   { return is(err, KindForbidden) }
func IsNotFound(err error) bool    { return is(err, KindNotFound) }
func IsValidation(err error) bool  { return is(err, KindValidation) }
func IsServer(err error) bool      { return is(err, KindServer) }
