package plainsight

import (
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/inconshreveable/log15"
)

const (
	// DefaultMaxIdleSteps is the default limit on consecutive encoding
	// steps that consume no message bits.
	DefaultMaxIdleSteps = 1 << 16

	// seedAttempts bounds the search for a seed that does not begin with
	// a space.
	seedAttempts = 100
)

// Codec hides bit strings in cover text, and recovers them, using the
// language model of one frequency table.  A Codec holds no mutable state;
// concurrent calls are safe as long as its Rand is.
type Codec struct {
	table        *Table
	rnd          Rand
	log          log15.Logger
	maxIdleSteps int
}

// Option configures a Codec.
type Option func(*Codec)

// WithRand sets the random source used to draw seeds.  Tests use this to
// make Encrypt deterministic.
func WithRand(rnd Rand) Option {
	return func(c *Codec) {
		c.rnd = rnd
	}
}

// WithLogger sets the logger.  By default a Codec logs nothing.
func WithLogger(logger log15.Logger) Option {
	return func(c *Codec) {
		c.log = logger
	}
}

// WithMaxIdleSteps sets how many consecutive steps may pass without
// consuming a message bit before Encrypt gives up with ErrStalled.
func WithMaxIdleSteps(steps int) Option {
	return func(c *Codec) {
		c.maxIdleSteps = steps
	}
}

// New returns a Codec for table.  The table is borrowed, not copied.
func New(table *Table, opts ...Option) *Codec {
	assert.Assertf(table != nil, "table is nil")

	discard := log15.New()
	discard.SetHandler(log15.DiscardHandler())

	c := &Codec{
		table:        table,
		rnd:          DefaultRand,
		log:          discard,
		maxIdleSteps: DefaultMaxIdleSteps,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the table this Codec was built with.
func (c *Codec) Table() *Table {
	return c.table
}

// Encrypt hides plaintext in freshly generated cover text.  The initial
// context is drawn at random from the table.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	return c.encrypt(plaintext, "", false)
}

// EncryptWithSeed is like Encrypt, but starts the cover text with seed
// instead of a random draw.  seed must be exactly n-1 characters long.
func (c *Codec) EncryptWithSeed(plaintext string, seed string) (string, error) {
	return c.encrypt(plaintext, seed, true)
}

func (c *Codec) encrypt(plaintext string, seed string, explicitSeed bool) (string, error) {
	const op = "Encrypt"
	if plaintext == "" {
		return "", nil
	}
	if c.table.Len() == 0 {
		return "", validationf(op, ErrEmptyTable, "order %d", c.table.N())
	}

	n := c.table.N()
	var cover []rune
	switch {
	case explicitSeed:
		cover = []rune(seed)
		if len(cover) != n-1 {
			return "", validationf(op, ErrInvalidSeed, "got %d characters, want %d", len(cover), n-1)
		}
	case n > 1:
		drawn := []rune(c.seed())
		cover = drawn[:len(drawn)-1]
	}

	bits := ToBits(plaintext)
	idle := 0
	reseeds := 0
	for len(bits) != 0 {
		context := string(cover[len(cover)-(n-1):])
		dist := NextChars(c.table, context)

		if dist.Len() == 0 {
			cover = append(cover, []rune(c.seed())...)
			reseeds++
			idle++
		} else {
			tree, err := BuildTree(dist)
			if err != nil {
				return "", err
			}
			token, remaining, err := EncodeToken(tree, bits)
			if err != nil {
				return "", err
			}
			cover = append(cover, []rune(token)...)
			if len(remaining) < len(bits) {
				idle = 0
			} else {
				idle++
			}
			bits = remaining
		}

		if idle > c.maxIdleSteps {
			c.log.Error("Model stopped consuming bits", "steps", idle, "bitsLeft", len(bits))
			return "", validationf(op, ErrStalled, "%d steps without progress, %d bits left", idle, len(bits))
		}
	}

	c.log.Debug("Encrypted message", "chars", len(cover), "reseeds", reseeds)
	return string(cover), nil
}

// Decrypt recovers the plaintext hidden in ciphertext.  Characters that are
// not a valid continuation of their context mark a seed inserted by
// Encrypt; the scan skips over the rest of that seed.
func (c *Codec) Decrypt(ciphertext string) (string, error) {
	const op = "Decrypt"
	if ciphertext == "" {
		return "", nil
	}
	if c.table.Len() == 0 {
		return "", validationf(op, ErrEmptyTable, "order %d", c.table.N())
	}

	n := c.table.N()
	runes := []rune(ciphertext)
	skipped := 0

	var bits strings.Builder
	for i := n - 1; i < len(runes); i++ {
		context := string(runes[i-n+1 : i])
		tree, err := BuildTree(NextChars(c.table, context))
		if err != nil {
			return "", err
		}

		path, found := tree.Lookup(string(runes[i]))
		if !found {
			i += n - 1
			skipped++
			continue
		}
		bits.WriteString(path)
	}

	c.log.Debug("Decrypted message", "bits", bits.Len(), "seedsSkipped", skipped)
	return FromBits(bits.String())
}

// seed draws a whole n-gram from the table, avoiding n-grams that begin
// with a space.  If every attempt begins with a space the last draw is used
// anyway.
func (c *Codec) seed() string {
	dist := c.table.Distribution()

	var choice string
	for attempt := 0; attempt < seedAttempts; attempt++ {
		choice = Pick(dist, c.rnd)
		if !strings.HasPrefix(choice, " ") {
			return choice
		}
	}

	c.log.Warn("Failed to find seed without a leading space", "attempts", seedAttempts, "seed", choice)
	return choice
}
