package plainsight

import (
	"strings"
	"unicode/utf8"
)

// Distribution is a list of symbols paired with their weights, in the same
// shape as a Table.  NextChars produces one for every context; BuildTree and
// Pick consume them.
type Distribution struct {
	Strings []string
	Counts  []uint32
}

// Len returns the number of symbols.
func (d Distribution) Len() int {
	return len(d.Strings)
}

// Total returns the sum of all counts.
func (d Distribution) Total() uint64 {
	var sum uint64
	for _, c := range d.Counts {
		sum += uint64(c)
	}
	return sum
}

// NextChars returns the distribution of characters that follow prefix in
// t.  prefix is normally n-1 characters long (empty for n == 1).  The result
// holds the final character of every n-gram that starts with prefix, in
// table order.  An empty result means prefix was never followed by anything
// in the source text.
//
// Because the table is sorted, all n-grams sharing a prefix are contiguous
// and start at the prefix's own insertion point.
//
func NextChars(t *Table, prefix string) Distribution {
	var dist Distribution
	for i, _ := t.Search(prefix); i < len(t.strings) && strings.HasPrefix(t.strings[i], prefix); i++ {
		s := t.strings[i]
		_, size := utf8.DecodeLastRuneInString(s)
		dist.Strings = append(dist.Strings, s[len(s)-size:])
		dist.Counts = append(dist.Counts, t.counts[i])
	}
	return dist
}
