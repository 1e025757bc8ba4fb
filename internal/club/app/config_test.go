package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CLUB_ISSUER", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "clubhouse", cfg.Issuer)
	require.Equal(t, "clubhouse.db", cfg.DatabaseFile)
	require.Equal(t, "/v1/blobs", cfg.BlobBaseURL)
	require.Equal(t, "club:memberships", cfg.EventStream)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, "20", cfg.LowStockThreshold.String())
	require.Equal(t, 30*time.Minute, cfg.POSSessionTTL)
	require.Equal(t, 1024, cfg.POSMaxSessions)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, int64(5<<20), cfg.MaxPhotoBytes)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CLUB_ISSUER", "club-test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CLUB_LOW_STOCK_THRESHOLD", "7.5")
	t.Setenv("CLUB_POS_SESSION_TTL", "5m")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "club-test", cfg.Issuer)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "7.5", cfg.LowStockThreshold.String())
	require.Equal(t, 5*time.Minute, cfg.POSSessionTTL)
	require.Equal(t, 9090, cfg.Port)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "70000"},
		{"PORT", "eighty"},
		{"CLUB_POS_MAX_SESSIONS", "0"},
		{"MAX_PHOTO_BYTES", "-1"},
		{"CLUB_LOW_STOCK_THRESHOLD", "-3"},
		{"CLUB_POS_SESSION_TTL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
