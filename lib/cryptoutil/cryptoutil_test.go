package cryptoutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	c, err := NewCipher(key)
	require.NoError(t, err)

	sealed, err := c.Seal([]byte(`[{"Name":"JSESSIONID","Value":"abc"}]`))
	require.NoError(t, err)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, `[{"Name":"JSESSIONID","Value":"abc"}]`, string(opened))
}

func TestBadKey(t *testing.T) {
	_, err := NewCipher([]byte("short"))
	require.ErrorIs(t, err, InvalidKeySize)
}

func TestTamperedCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	c, err := NewCipher(key)
	require.NoError(t, err)

	sealed, err := c.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = c.Open("AAAA" + sealed[4:])
	require.Error(t, err)

	_, err = c.Open("AA")
	require.Error(t, err)
}
