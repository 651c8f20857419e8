package runkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncrypt(t *testing.T) {
	// '!' is the zero shift
	out, err := Encrypt("abc", "!!!")
	require.NoError(t, err)
	assert.Equal(t, "abc", out)

	// '"' shifts by one, wrapping from 'z' back to '!'
	out, err = Encrypt("az", `""`)
	require.NoError(t, err)
	assert.Equal(t, "b!", out)

	// spaces and non-ASCII pass through without using the key
	out, err = Encrypt("a béc", `"#$`)
	require.NoError(t, err)
	assert.Equal(t, "b déf", out)
}

func TestRoundTrip(t *testing.T) {
	key := NormalizeKey("We hold these truths to be self-evident, that all men are created equal.")
	assert.Equal(t, "Weholdthesetruthstobeselfevidentthatallmenarecreatedequal", key)

	for _, msg := range []string{"", "hello, world", "Attack at 0600 {sharp}~", "naïve"} {
		ciphertext, err := Encrypt(msg, key)
		require.NoError(t, err)
		plaintext, err := Decrypt(ciphertext, key)
		require.NoError(t, err)
		assert.Equal(t, msg, plaintext)
	}
}

func TestEmptyKey(t *testing.T) {
	_, err := Encrypt("abc", "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = Decrypt("abc", "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
