// Package runkey implements a running-key substitution cipher over the
// printable ASCII range '!' .. 'z'.  It is a toy, kept for demonstrations
// and for exercising the command-line plumbing; it offers no security.
package runkey

import (
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/plainsight"
)

const (
	first   = 0x21
	last    = 0x7A
	modulus = last - first + 1
)

// ErrEmptyKey is returned when the key has no characters.
var ErrEmptyKey = errors.New("runkey: key must be non-empty")

// NormalizeKey strips whitespace and punctuation from a key text, e.g. a
// passage of prose.
func NormalizeKey(text string) string {
	return plainsight.CollapsePunctuation(plainsight.CollapseWhitespace(text))
}

// Encrypt shifts every printable character of plain by the next character
// of key.  Other characters pass through unchanged and do not advance the
// key.  The key repeats when exhausted.
func Encrypt(plain string, key string) (string, error) {
	return shift(plain, key, func(c, k rune) rune {
		return mod(c+k-2*first, modulus) + first
	})
}

// Decrypt is the inverse of Encrypt.
func Decrypt(ciphertext string, key string) (string, error) {
	return shift(ciphertext, key, func(c, k rune) rune {
		return mod(c-k, modulus) + first
	})
}

func shift(text string, key string, fn func(c, k rune) rune) (string, error) {
	keyRunes := []rune(key)
	if len(keyRunes) == 0 {
		return "", ErrEmptyKey
	}

	out := []rune(text)
	j := 0
	for i, c := range out {
		if c < first || c > last {
			continue
		}
		out[i] = fn(c, keyRunes[j%len(keyRunes)])
		j++
	}
	return string(out), nil
}

func mod(a, b rune) rune {
	return ((a % b) + b) % b
}
