package auth

import (
	"testing"

	"quill/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaChaSealer_RoundTrip(t *testing.T) {
	sealer, err := newChaChaSealer([]byte("a-long-session-secret"))
	require.NoError(t, err)

	sealed, err := sealer.Seal("refresh-token-value", "row-1")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "refresh-token-value")

	opened, err := sealer.Open(sealed, "row-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-value", opened)

	again, err := sealer.Seal("refresh-token-value", "row-1")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonces must differ")
}

func TestChaChaSealer_OpenRejectsTampering(t *testing.T) {
	sealer, err := newChaChaSealer([]byte("a-long-session-secret"))
	require.NoError(t, err)

	sealed, err := sealer.Seal("token", "row-1")
	require.NoError(t, err)

	_, err = sealer.Open(sealed, "row-2")
	assert.Error(t, err, "aad mismatch")

	other, err := newChaChaSealer([]byte("another-secret"))
	require.NoError(t, err)
	_, err = other.Open(sealed, "row-1")
	assert.Error(t, err, "wrong key")

	_, err = sealer.Open("AAAA", "row-1")
	assert.Error(t, err, "too short")

	_, err = sealer.Open("not base64!", "row-1")
	assert.Error(t, err)
}

func TestChaChaSealer_StorageKey(t *testing.T) {
	sealer, err := NewChaChaSealer(&config.Config{Session: config.SessionConfig{Secret: "s"}})
	require.NoError(t, err)

	key := sealer.StorageKey("handle-1")
	assert.Len(t, key, 64)
	assert.Equal(t, key, sealer.StorageKey("handle-1"))
	assert.NotEqual(t, key, sealer.StorageKey("handle-2"))
	assert.NotContains(t, key, "handle-1")
}

func TestNewChaChaSealer_RequiresSecret(t *testing.T) {
	_, err := NewChaChaSealer(&config.Config{})
	assert.Error(t, err)
}
