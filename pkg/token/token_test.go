package token

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := NewMap()
	m.Set("sub", "test-token")
	m.Set("iat", int64(1517439589))
	m.Set("admin", true)

	t.Run("insertion order", func(t *testing.T) {
		assert.Equal(t, []string{"sub", "iat", "admin"}, m.Keys())
		assert.Equal(t, 3, m.Len())
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		c := m.Clone()
		c.Set("sub", "other")
		assert.Equal(t, []string{"sub", "iat", "admin"}, c.Keys())
		v, _ := c.Get("sub")
		assert.Equal(t, "other", v)

		original, _ := m.Get("sub")
		assert.Equal(t, "test-token", original)
	})

	t.Run("delete", func(t *testing.T) {
		c := m.Clone()
		c.Delete("iat")
		c.Delete("missing")
		assert.Equal(t, []string{"sub", "admin"}, c.Keys())
		_, ok := c.Get("iat")
		assert.False(t, ok)
	})

	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"sub":"test-token","iat":1517439589,"admin":true}`, string(data))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "{sub=test-token, iat=1517439589, admin=true}", m.String())
	})

	t.Run("nil map reads as empty", func(t *testing.T) {
		var nilMap *Map
		assert.Equal(t, 0, nilMap.Len())
		assert.Nil(t, nilMap.Keys())
		_, ok := nilMap.Get("sub")
		assert.False(t, ok)
		assert.Equal(t, "{}", nilMap.String())
		assert.Equal(t, 0, nilMap.Clone().Len())
	})

	t.Run("all stops early", func(t *testing.T) {
		var seen []string
		for k := range m.All() {
			seen = append(seen, k)
			if len(seen) == 2 {
				break
			}
		}
		assert.Equal(t, []string{"sub", "iat"}, seen)
	})
}

func TestParseMap(t *testing.T) {
	t.Run("keeps document order and number text", func(t *testing.T) {
		m, err := ParseMap([]byte(`{"z":1,"a":12345678901234567890,"m":1.50,"n":null,"list":["x",2,{"k":"v"}],"obj":{"b":false,"a":"<tag>"}}`))
		require.NoError(t, err)

		assert.Equal(t, []string{"z", "a", "m", "n", "list", "obj"}, m.Keys())
		big, _ := m.Get("a")
		assert.Equal(t, json.Number("12345678901234567890"), big)
		assert.Equal(t, "{z=1, a=12345678901234567890, m=1.50, n=null, list=[x, 2, {k=v}], obj={b=false, a=<tag>}}", m.String())

		data, err := m.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"z":1,"a":12345678901234567890,"m":1.50,"n":null,"list":["x",2,{"k":"v"}],"obj":{"b":false,"a":"<tag>"}}`, string(data))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var m Map
		require.NoError(t, json.Unmarshal([]byte(`{"b":"2","a":"1"}`), &m))
		assert.Equal(t, []string{"b", "a"}, m.Keys())
	})

	for name, input := range map[string]string{
		"invalid JSON": `{"sub":`,
		"array":        `["sub"]`,
		"string":       `"sub"`,
		"empty":        ``,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMap([]byte(input))
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}

func TestDecodeSecret(t *testing.T) {
	std := func(s string) []byte {
		b, err := base64.StdEncoding.DecodeString(s)
		require.NoError(t, err)
		return b
	}

	tests := []struct {
		name   string
		secret string
		want   []byte
	}{
		{"standard base64", "c2VjcmV0LWtleQ==", []byte("secret-key")},
		{"single padding", "c2VjcmV0LWs=", []byte("secret-k")},
		{"underscore skipped and partial quad dropped", "some_secret", std("somesecr")},
		{"url alphabet skipped", "ab-c_d", std("abcd")},
		{"whitespace skipped", "c2Vj\ncmV0", []byte("secret")},
		{"too short", "abc", []byte{}},
		{"no alphabet characters", "!!!", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeSecret(tt.secret))
		})
	}
}

func TestTokenParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  TokenParams
		wantErr error
	}{
		{"unsigned", TokenParams{Claims: subjectClaims()}, nil},
		{"HMAC", TokenParams{Signing: HMAC{Algorithm: "HS512", Secret: testSecret}}, nil},
		{"asymmetric", TokenParams{Signing: Asymmetric{Algorithm: "PS256", KeyFile: "private.pem"}}, nil},
		{"positive duration", TokenParams{Duration: time.Hour}, nil},
		{"negative duration", TokenParams{Duration: -time.Hour}, ErrInvalidDuration},
		{"none as HMAC", TokenParams{Signing: HMAC{Algorithm: "none", Secret: testSecret}}, ErrAlgorithmMismatch},
		{"ES256 as HMAC", TokenParams{Signing: HMAC{Algorithm: "ES256", Secret: testSecret}}, ErrAlgorithmMismatch},
		{"HS512 as asymmetric", TokenParams{Signing: Asymmetric{Algorithm: "HS512", KeyFile: "private.pem"}}, ErrAlgorithmMismatch},
		{"lowercase algorithm", TokenParams{Signing: HMAC{Algorithm: "hs512", Secret: testSecret}}, ErrUnsupportedAlgorithm},
		{"missing key file", TokenParams{Signing: Asymmetric{Algorithm: "RS256"}}, ErrMissingKeyMaterial},
		{"payload with duration", TokenParams{Payload: []byte("raw"), Duration: time.Hour}, ErrPayloadConflict},
		{"pointer signing option", TokenParams{Signing: &HMAC{Algorithm: "HS256", Secret: testSecret}}, ErrUnsupportedAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
