package gifts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/heartlink-app/go-heartlink-client/internal/apierrors"
	"github.com/heartlink-app/go-heartlink-client/internal/config"
	"github.com/heartlink-app/go-heartlink-client/internal/httpclient"
	"github.com/heartlink-app/go-heartlink-client/internal/models"
	"github.com/heartlink-app/go-heartlink-client/internal/tokenstore"
)

func testService(t *testing.T, r chi.Router) *Service {
	t.Helper()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL: srv.URL,
			Timeout: 5 * time.Second,
		},
		Auth: config.AuthConfig{
			AccessTokenFallbackTTL: 15 * time.Minute,
		},
	}

	store := tokenstore.NewMemory()
	require.NoError(t, store.Save(tokenstore.Record{
		AccessToken:  "t1",
		RefreshToken: "r1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	return New(httpclient.New(cfg, store, nil))
}

func TestCatalog_OK(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/gifts", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.GiftCatalog{Gifts: []models.Gift{
			{ID: 1, Name: "Роза", PriceRub: 50},
			{ID: 2, Name: "Мишка", PriceRub: 200},
		}})
	})

	svc := testService(t, r)

	cat, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Gifts, 2)
	require.Equal(t, int64(200), cat.Gifts[1].PriceRub)
}

func TestSend_OK(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/gifts/send", func(w http.ResponseWriter, req *http.Request) {
		var in models.SendGiftRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		require.Equal(t, int64(42), in.TargetID)
		require.Equal(t, int64(2), in.GiftID)
		require.Equal(t, "с днём рождения", in.Note)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SendGiftResult{Sent: true, Balance: 300})
	})

	svc := testService(t, r)

	res, err := svc.Send(context.Background(), 42, 2, "с днём рождения")
	require.NoError(t, err)
	require.True(t, res.Sent)
	require.Equal(t, int64(300), res.Balance)
}

func TestSend_InsufficientBalance(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/gifts/send", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"validation failed","errors":{"balance":["insufficient funds"]}}`))
	})

	svc := testService(t, r)

	_, err := svc.Send(context.Background(), 42, 2, "")
	require.Error(t, err)
	require.True(t, apierrors.IsValidation(err))

	apiErr, ok := apierrors.As(err)
	require.True(t, ok)
	require.Equal(t, []string{"insufficient funds"}, apiErr.Fields["balance"])
}
