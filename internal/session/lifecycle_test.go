package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/heartlink-app/go-heartlink-client/internal/apierrors"
	"github.com/heartlink-app/go-heartlink-client/internal/models"
	. "github.com/heartlink-app/go-heartlink-client/internal/session"
	"github.com/heartlink-app/go-heartlink-client/internal/tokenstore"
	"github.com/heartlink-app/go-heartlink-client/mocks"
)

func saveRecord(t *testing.T, store tokenstore.Store, expiresIn time.Duration) {
	t.Helper()
	require.NoError(t, store.Save(tokenstore.Record{
		AccessToken:  "t1",
		RefreshToken: "r1",
		ExpiresAt:    time.Now().UTC().Add(expiresIn),
	}))
}

func expectMe(api *mocks.MockAPIClient, user models.User) *gomock.Call {
	return api.EXPECT().
		Get(gomock.Any(), "/auth/me", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out any) error {
			*out.(*models.User) = user
			return nil
		})
}

func TestInitialize_NoTokensSettlesAnonymous(t *testing.T) {
	t.Parallel()

	m, _, _, _ := newManager(t)

	// Сетевых вызовов нет вовсе: мок не ожидает ни Get, ни ProactiveRefresh.
	require.Equal(t, StateAnonymous, m.Initialize(context.Background()))
	require.Equal(t, StateAnonymous, m.State())
}

func TestInitialize_FreshTokenSkipsRefresh(t *testing.T) {
	t.Parallel()

	m, api, store, _ := newManager(t)
	saveRecord(t, store, time.Hour)

	expectMe(api, models.User{ID: 9, Email: "user@example.com", ActiveFeatures: []string{"boost"}})

	require.Equal(t, StateAuthenticated, m.Initialize(context.Background()))
	require.True(t, m.HasFeature("boost"))
	require.Equal(t, int64(9), m.CurrentUser().ID)
}

func TestInitialize_WithinThresholdRefreshesProactively(t *testing.T) {
	t.Parallel()

	m, api, store, _ := newManager(t)
	// Истекает через 2 минуты — внутри 5-минутного окна.
	saveRecord(t, store, 2*time.Minute)

	gomock.InOrder(
		api.EXPECT().ProactiveRefresh(gomock.Any()).Return(nil),
		expectMe(api, models.User{ID: 9}),
	)

	require.Equal(t, StateAuthenticated, m.Initialize(context.Background()))
}

func TestInitialize_ExpiredTokenRefreshesBeforeMe(t *testing.T) {
	t.Parallel()

	m, api, store, _ := newManager(t)
	saveRecord(t, store, -time.Minute)

	gomock.InOrder(
		api.EXPECT().ProactiveRefresh(gomock.Any()).Return(nil),
		expectMe(api, models.User{ID: 9}),
	)

	require.Equal(t, StateAuthenticated, m.Initialize(context.Background()))
}

// Refresh-токен старше своего TTL мёртв локально: инициализация чистит
// хранилище и оседает в Anonymous, не делая ни рефреша, ни /auth/me.
func TestInitialize_StaleRefreshTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	m, _, store, _ := newManager(t)

	now := time.Now().UTC()
	require.NoError(t, store.Save(tokenstore.Record{
		AccessToken:  "t1",
		RefreshToken: "r1",
		ExpiresAt:    now.Add(-time.Minute),
		IssuedAt:     now.Add(-testAuthCfg().RefreshTokenTTL - time.Hour),
	}))

	require.Equal(t, StateAnonymous, m.Initialize(context.Background()))

	_, err := store.Read()
	require.ErrorIs(t, err, tokenstore.ErrNotFound)
	require.Equal(t, ReasonSessionExpired, m.InvalidateReason())
}

func TestInitialize_RefreshFailureSettlesAnonymous(t *testing.T) {
	t.Parallel()

	m, api, store, _ := newManager(t)
	saveRecord(t, store, -time.Minute)

	api.EXPECT().ProactiveRefresh(gomock.Any()).Return(apierrors.AuthExpired(nil))

	require.Equal(t, StateAnonymous, m.Initialize(context.Background()))

	_, err := store.Read()
	require.ErrorIs(t, err, tokenstore.ErrNotFound)
	require.Equal(t, ReasonSessionExpired, m.InvalidateReason())
}

// Недоступный сервер не подвешивает инициализацию: ошибка логируется,
// сессия оседает в Anonymous.
func TestInitialize_MeFailureSettlesAnonymous(t *testing.T) {
	t.Parallel()

	m, api, store, _ := newManager(t)
	saveRecord(t, store, time.Hour)

	api.EXPECT().
		Get(gomock.Any(), "/auth/me", gomock.Any()).
		Return(apierrors.Network(nil))

	require.Equal(t, StateAnonymous, m.Initialize(context.Background()))

	_, err := store.Read()
	require.ErrorIs(t, err, tokenstore.ErrNotFound)
}
