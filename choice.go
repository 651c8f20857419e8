package plainsight

import (
	"math"
	"math/rand"

	"github.com/chronos-tachyon/assert"
)

// Rand returns a uniformly distributed number in [0, 1).
type Rand func() float64

// DefaultRand draws from the top-level math/rand source, which is safe for
// concurrent use.
var DefaultRand Rand = rand.Float64

// Pick draws one symbol from dist with probability proportional to its
// count.  It is a programming error to call Pick with an empty or
// inconsistent distribution.
func Pick(dist Distribution, rnd Rand) string {
	assert.Assertf(len(dist.Strings) != 0, "Pick called with an empty distribution")
	assert.Assertf(len(dist.Strings) == len(dist.Counts), "len(Strings) %d != len(Counts) %d", len(dist.Strings), len(dist.Counts))

	draw := rnd()
	if draw < 0 || draw >= 1 {
		return dist.Strings[0]
	}

	total := dist.Total()
	position := uint64(math.Floor(draw * float64(total)))

	var accum uint64
	for i, count := range dist.Counts {
		accum += uint64(count)
		if position < accum {
			return dist.Strings[i]
		}
	}

	// Rounding in the float multiply can land on total itself.
	return dist.Strings[0]
}
