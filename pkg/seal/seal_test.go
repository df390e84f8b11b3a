package seal

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	plaintexts := []string{
		"",
		"secret terms",
		"multi\nline\ncontent with unicode: ação, 機密",
		string(make([]byte, 4096)),
	}

	for _, plaintext := range plaintexts {
		blob, err := Encrypt(plaintext, key)
		require.NoError(t, err)

		recovered, err := Decrypt(blob, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, recovered)
	}
}

func TestGenerateKeyIndependence(t *testing.T) {
	k1, err := GenerateKey()
	require.NoError(t, err)
	k2, err := GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)

	raw, err := base64.StdEncoding.DecodeString(k1)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestNonceUniqueness(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	b1, err := Encrypt("same content", key)
	require.NoError(t, err)
	b2, err := Encrypt("same content", key)
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2, "two encryptions of the same plaintext must differ")
}

func TestTamperDetection(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	blob, err := Encrypt("confidential clause", key)
	require.NoError(t, err)

	sealed, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	for i := range sealed {
		corrupted := make([]byte, len(sealed))
		copy(corrupted, sealed)
		corrupted[i] ^= 0x01

		_, err := Decrypt(base64.StdEncoding.EncodeToString(corrupted), key)
		assert.ErrorIs(t, err, ErrAuthentication, "flipped bit at offset %d must not decrypt", i)
	}
}

func TestWrongKey(t *testing.T) {
	k1, err := GenerateKey()
	require.NoError(t, err)
	k2, err := GenerateKey()
	require.NoError(t, err)

	blob, err := Encrypt("secret terms", k1)
	require.NoError(t, err)

	_, err = Decrypt(blob, k2)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestMalformedBlob(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	cases := map[string]string{
		"not base64": "%%%not-base64%%%",
		"empty":      "",
		"too short":  base64.StdEncoding.EncodeToString([]byte("short")),
	}
	for name, blob := range cases {
		_, err := Decrypt(blob, key)
		assert.ErrorIs(t, err, ErrMalformedBlob, name)
	}
}

func TestBadKey(t *testing.T) {
	blob, err := Encrypt("content", mustKey(t))
	require.NoError(t, err)

	for name, key := range map[string]string{
		"not base64":   "***",
		"wrong length": base64.StdEncoding.EncodeToString([]byte("sixteen byte key")),
	} {
		_, decErr := Decrypt(blob, key)
		assert.ErrorIs(t, decErr, ErrBadKey, name)

		_, encErr := Encrypt("content", key)
		assert.ErrorIs(t, encErr, ErrBadKey, name)
	}
}

func TestInvalidTextSurfacesAsEncodingError(t *testing.T) {
	key := mustKey(t)

	// Go strings may carry arbitrary bytes; sealing a non-UTF-8 string
	// must round-trip to the encoding error rather than garbage text.
	blob, err := Encrypt(string([]byte{0xff, 0xfe, 0xfd}), key)
	require.NoError(t, err)

	_, err = Decrypt(blob, key)
	assert.ErrorIs(t, err, ErrInvalidText)
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrMalformedBlob, ErrAuthentication))
	assert.False(t, errors.Is(ErrAuthentication, ErrInvalidText))
}

func mustKey(t *testing.T) string {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	return key
}
