package apierrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{name: "401_session_expired", status: 401, body: `{}`, wantKind: KindAuthExpired, wantMsg: "session expired"},
		{name: "403_forbidden", status: 403, body: `{}`, wantKind: KindForbidden, wantMsg: "forbidden"},
		{name: "404_not_found", status: 404, body: `{}`, wantKind: KindNotFound, wantMsg: "not found"},
		{name: "500_server_error", status: 500, body: `{"message":"stack trace leak"}`, wantKind: KindServer, wantMsg: "server error"},
		{name: "503_server_error", status: 503, body: ``, wantKind: KindServer, wantMsg: "server error"},
		{name: "418_unknown_with_server_message", status: 418, body: `{"message":"i am a teapot"}`, wantKind: KindUnknown, wantMsg: "i am a teapot"},
		{name: "400_unknown_error_field", status: 400, body: `{"error":"bad cursor"}`, wantKind: KindUnknown, wantMsg: "bad cursor"},
		{name: "400_unknown_generic_fallback", status: 400, body: `garbage`, wantKind: KindUnknown, wantMsg: "request failed with status 400"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := FromResponse(tc.status, []byte(tc.body))
			require.Equal(t, tc.wantKind, e.Kind)
			require.Equal(t, tc.status, e.Status)
			require.Equal(t, tc.wantMsg, e.Message)
		})
	}
}

func TestFromResponse_ValidationFieldsPassthrough(t *testing.T) {
	t.Parallel()

	body := `{"message":"validation failed","errors":{"email":["is invalid"],"age":["must be at least 18","must be a number"]}}`

	e := FromResponse(http.StatusUnprocessableEntity, []byte(body))
	require.Equal(t, KindValidation, e.Kind)
	require.Equal(t, map[string][]string{
		"email": {"is invalid"},
		"age":   {"must be at least 18", "must be a number"},
	}, e.Fields)
}

func TestNetwork(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	e := Network(cause)

	require.Equal(t, KindNetwork, e.Kind)
	require.Zero(t, e.Status)
	require.ErrorIs(t, e, cause)
	require.True(t, IsNetwork(e))
}

func TestKindHelpers(t *testing.T) {
	t.Parallel()

	require.True(t, IsAuthExpired(AuthExpired(nil)))
	require.True(t, IsValidation(FromResponse(422, nil)))
	require.True(t, IsForbidden(FromResponse(403, nil)))
	require.True(t, IsNotFound(FromResponse(404, nil)))
	require.True(t, IsServer(FromResponse(502, nil)))

	// Обёрнутая ошибка распознаётся через errors.As.
	wrapped := wrap(FromResponse(404, nil))
	require.True(t, IsNotFound(wrapped))

	require.False(t, IsNetwork(errors.New("plain")))
}

func wrap(err error) error {
	return &wrapper{err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "op: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
