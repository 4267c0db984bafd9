package algorithms

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseAlgorithm(t *testing.T) {
	base := &BaseAlgorithm{
		name:    "TEST256",
		hash:    crypto.SHA256,
		keyType: KeyTypeECDSA,
		keySize: 32,
	}

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "TEST256", base.Name())
	})

	t.Run("Hash", func(t *testing.T) {
		assert.Equal(t, crypto.SHA256, base.Hash())
	})

	t.Run("KeyType", func(t *testing.T) {
		assert.Equal(t, KeyTypeECDSA, base.KeyType())
		assert.True(t, base.KeyType().Asymmetric())
	})

	t.Run("Sign without method", func(t *testing.T) {
		_, err := base.Sign([]byte("input"), nil)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("KeyCheck ECDSA", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		assert.NoError(t, base.KeyCheck(&ecKey.PublicKey))
	})

	t.Run("KeyCheck RSA", func(t *testing.T) {
		rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		base.keyType = KeyTypeRSA
		assert.NoError(t, base.KeyCheck(&rsaKey.PublicKey))
	})

	t.Run("KeyCheck HMAC", func(t *testing.T) {
		base.keyType = KeyTypeHMAC
		assert.NoError(t, base.KeyCheck([]byte("secret")))
		assert.ErrorIs(t, base.KeyCheck([]byte{}), ErrInvalidKeyType)
		assert.ErrorIs(t, base.KeyCheck("secret"), ErrInvalidKeyType)
	})

	t.Run("KeyCheck Wrong Type", func(t *testing.T) {
		// ECDSA key with RSA type
		ecKey, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		base.keyType = KeyTypeRSA
		assert.Equal(t, ErrInvalidKeyType, base.KeyCheck(&ecKey.PublicKey))

		// RSA key with ECDSA type
		rsaKey, _ := rsa.GenerateKey(rand.Reader, 2048)
		base.keyType = KeyTypeECDSA
		assert.Equal(t, ErrInvalidKeyType, base.KeyCheck(&rsaKey.PublicKey))

		// private key where a public key is expected
		assert.Equal(t, ErrInvalidKeyType, base.KeyCheck(ecKey))
	})
}

func TestKeyTypeString(t *testing.T) {
	tests := []struct {
		keyType KeyType
		want    string
	}{
		{KeyTypeECDSA, "ECDSA"},
		{KeyTypeRSA, "RSA"},
		{KeyTypeHMAC, "HMAC"},
		{KeyTypeNone, "none"},
		{KeyType(42), "KeyType(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.keyType.String())
		})
	}
}

func TestNoneAlgorithm(t *testing.T) {
	alg, err := Get(None)
	require.NoError(t, err)

	assert.Equal(t, KeyTypeNone, alg.KeyType())
	assert.False(t, alg.KeyType().Asymmetric())

	signature, err := alg.Sign([]byte("header.payload"), nil)
	require.NoError(t, err)
	assert.Empty(t, signature)

	assert.NoError(t, alg.Verify([]byte("header.payload"), nil, nil))
	assert.ErrorIs(t, alg.Verify([]byte("header.payload"), []byte{1}, nil), ErrInvalidSignature)
}
