package keystore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeypair(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(kp.AccountID(), "G"), "account id %s", kp.AccountID())
	assert.True(t, strings.HasPrefix(kp.Secret(), "S"), "secret %s", kp.Secret())

	other, err := NewKeypair()
	require.NoError(t, err)
	assert.NotEqual(t, kp.AccountID(), other.AccountID())
}

func TestKeypairSecretRoundTrip(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	restored, err := KeypairFromSecret(kp.Secret())
	require.NoError(t, err)
	assert.Equal(t, kp.AccountID(), restored.AccountID())
	assert.Equal(t, kp.Secret(), restored.Secret())
}

func TestKeypairFromSecretRejectsMalformed(t *testing.T) {
	testCases := []struct {
		desc   string
		secret string
	}{
		{"empty", ""},
		{"wrong prefix", "GABCDEF"},
		{"bad base32", "S!!!!"},
		{"truncated seed", "SAAAA"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := KeypairFromSecret(tc.secret)
			assert.Error(t, err)
		})
	}
}

func TestKeypairSignVerify(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	digest := []byte("32 bytes of deterministic digest")
	sig, err := kp.Sign(digest)
	require.NoError(t, err)

	assert.True(t, kp.Verify(digest, sig))
	assert.False(t, kp.Verify([]byte("tampered"), sig))

	other, err := NewKeypair()
	require.NoError(t, err)
	assert.False(t, other.Verify(digest, sig))
}
