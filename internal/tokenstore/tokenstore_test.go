package tokenstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecord_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{name: "future", exp: now.Add(time.Hour), want: false},
		{name: "past", exp: now.Add(-time.Hour), want: true},
		{name: "exact_now", exp: now, want: true},
		{name: "zero_means_unknown_alive", exp: time.Time{}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := Record{AccessToken: "a", ExpiresAt: tc.exp}
			require.Equal(t, tc.want, rec.Expired(now))
		})
	}
}

func TestRecord_WithinRefreshWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	threshold := 5 * time.Minute

	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{name: "expires_in_2m_inside_window", exp: now.Add(2 * time.Minute), want: true},
		{name: "expires_in_10m_outside_window", exp: now.Add(10 * time.Minute), want: false},
		{name: "already_expired_not_window", exp: now.Add(-time.Minute), want: false},
		{name: "zero_expiry_not_window", exp: time.Time{}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := Record{AccessToken: "a", ExpiresAt: tc.exp}
			require.Equal(t, tc.want, rec.WithinRefreshWindow(now, threshold))
		})
	}
}

func TestRecord_RefreshExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ttl := 168 * time.Hour

	tests := []struct {
		name     string
		issuedAt time.Time
		ttl      time.Duration
		want     bool
	}{
		{name: "fresh", issuedAt: now.Add(-time.Hour), ttl: ttl, want: false},
		{name: "older_than_ttl", issuedAt: now.Add(-169 * time.Hour), ttl: ttl, want: true},
		{name: "exactly_at_ttl", issuedAt: now.Add(-ttl), ttl: ttl, want: true},
		{name: "zero_issued_at_alive", issuedAt: time.Time{}, ttl: ttl, want: false},
		{name: "zero_ttl_alive", issuedAt: now.Add(-1000 * time.Hour), ttl: 0, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := Record{RefreshToken: "r", IssuedAt: tc.issuedAt}
			require.Equal(t, tc.want, rec.RefreshExpired(now, tc.ttl))
		})
	}
}
