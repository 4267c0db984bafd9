package algorithms

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("Get existing algorithm", func(t *testing.T) {
		alg, err := Get("HS512")
		require.NoError(t, err)
		assert.Equal(t, "HS512", alg.Name())
	})

	t.Run("Get non-existent algorithm", func(t *testing.T) {
		_, err := Get("NONEXISTENT")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
		assert.Contains(t, err.Error(), "NONEXISTENT")
	})

	t.Run("Names are case sensitive", func(t *testing.T) {
		_, err := Get("hs256")
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("List registered algorithms", func(t *testing.T) {
		assert.Equal(t, []string{
			"ES256", "ES384", "ES512",
			"HS256", "HS384", "HS512",
			"PS256", "PS384", "PS512",
			"RS256", "RS384", "RS512",
			"none",
		}, List())
	})

	t.Run("List by key type", func(t *testing.T) {
		assert.Equal(t, []string{"HS256", "HS384", "HS512"}, ListByKeyType(KeyTypeHMAC))
		assert.Equal(t, []string{"PS256", "PS384", "PS512", "RS256", "RS384", "RS512"}, ListByKeyType(KeyTypeRSA))
		assert.Equal(t, []string{"none"}, ListByKeyType(KeyTypeNone))
	})
}

func TestCatalogContracts(t *testing.T) {
	tests := []struct {
		name    string
		hash    crypto.Hash
		keyType KeyType
	}{
		{"HS256", crypto.SHA256, KeyTypeHMAC},
		{"HS384", crypto.SHA384, KeyTypeHMAC},
		{"HS512", crypto.SHA512, KeyTypeHMAC},
		{"RS256", crypto.SHA256, KeyTypeRSA},
		{"RS384", crypto.SHA384, KeyTypeRSA},
		{"RS512", crypto.SHA512, KeyTypeRSA},
		{"PS256", crypto.SHA256, KeyTypeRSA},
		{"PS384", crypto.SHA384, KeyTypeRSA},
		{"PS512", crypto.SHA512, KeyTypeRSA},
		{"ES256", crypto.SHA256, KeyTypeECDSA},
		{"ES384", crypto.SHA384, KeyTypeECDSA},
		{"ES512", crypto.SHA512, KeyTypeECDSA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, err := Get(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.hash, alg.Hash())
			assert.Equal(t, tt.keyType, alg.KeyType())
		})
	}
}

func TestFamilyHelpers(t *testing.T) {
	tests := []struct {
		name       string
		hmac       bool
		asymmetric bool
	}{
		{"HS256", true, false},
		{"HS512", true, false},
		{"RS512", false, true},
		{"PS256", false, true},
		{"ES384", false, true},
		{"none", false, false},
		{"XX999", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hmac, IsHMAC(tt.name))
			assert.Equal(t, tt.asymmetric, IsAsymmetric(tt.name))
		})
	}
}
