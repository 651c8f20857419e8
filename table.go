package plainsight

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"
)

// Table is an n-gram frequency table: every distinct n-character substring
// of a source text, in ascending order, paired with its number of
// occurrences.  A Table is immutable once built and may be shared freely
// between goroutines.
type Table struct {
	n       int
	strings []string
	counts  []uint32
}

// BuildTable scans every n-character window of text and returns the
// resulting frequency table.  Characters are Unicode code points.  A text
// shorter than n characters yields an empty table of order n.
func BuildTable(n int, text string) (*Table, error) {
	if n < 1 {
		return nil, validationf("BuildTable", ErrInvalidOrder, "got %d", n)
	}

	t := &Table{n: n}
	runes := []rune(text)
	for i := 0; i+n <= len(runes); i++ {
		t.insert(string(runes[i : i+n]))
	}
	return t, nil
}

// NewTable constructs a Table from previously extracted columns, e.g. a
// table loaded from storage.  The columns are copied.  Every string must be
// exactly n characters, strings must be strictly ascending, and every count
// must be positive.
func NewTable(n int, ngrams []string, counts []uint32) (*Table, error) {
	const op = "NewTable"
	if n < 1 {
		return nil, validationf(op, ErrInvalidOrder, "got %d", n)
	}
	if len(ngrams) != len(counts) {
		return nil, validationf(op, ErrSizeMismatch, "%d strings, %d counts", len(ngrams), len(counts))
	}
	for i, s := range ngrams {
		if utf8.RuneCountInString(s) != n {
			return nil, validationf(op, ErrInvalidTable, "string %d (%q) is not %d characters long", i, s, n)
		}
		if i > 0 && ngrams[i-1] >= s {
			return nil, validationf(op, ErrInvalidTable, "string %d (%q) is out of order", i, s)
		}
		if counts[i] == 0 {
			return nil, validationf(op, ErrInvalidTable, "count %d is zero", i)
		}
	}

	t := &Table{
		n:       n,
		strings: make([]string, len(ngrams)),
		counts:  make([]uint32, len(counts)),
	}
	copy(t.strings, ngrams)
	copy(t.counts, counts)
	return t, nil
}

// N returns the order of the table, i.e. the length of every n-gram.
func (t *Table) N() int {
	return t.n
}

// Len returns the number of distinct n-grams.
func (t *Table) Len() int {
	return len(t.strings)
}

// At returns the i'th n-gram and its count.
func (t *Table) At(i int) (string, uint32) {
	return t.strings[i], t.counts[i]
}

// Search returns the index of s within the table and true, or the index at
// which s would have to be inserted to keep the table sorted and false.
func (t *Table) Search(s string) (int, bool) {
	i := sort.SearchStrings(t.strings, s)
	return i, i < len(t.strings) && t.strings[i] == s
}

// Count returns the number of occurrences of s, or 0.
func (t *Table) Count(s string) uint32 {
	if i, found := t.Search(s); found {
		return t.counts[i]
	}
	return 0
}

// Total returns the sum of all counts.
func (t *Table) Total() uint64 {
	return t.Distribution().Total()
}

// Strings returns a copy of the n-gram column.
func (t *Table) Strings() []string {
	out := make([]string, len(t.strings))
	copy(out, t.strings)
	return out
}

// Counts returns a copy of the count column.
func (t *Table) Counts() []uint32 {
	out := make([]uint32, len(t.counts))
	copy(out, t.counts)
	return out
}

// Distribution returns the whole table as a Distribution.  The returned
// slices alias the table and must not be modified.
func (t *Table) Distribution() Distribution {
	return Distribution{Strings: t.strings, Counts: t.counts}
}

// String returns a short human-readable description of the table.
func (t *Table) String() string {
	return fmt.Sprintf("(frequency table of %d distinct %d-grams, %d total)", t.Len(), t.n, t.Total())
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (t *Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tN() = %d\n", t.n)
	for i, s := range t.strings {
		fmt.Fprintf(&buf, "\tCount(%q) = %d\n", s, t.counts[i])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = (*Table)(nil)

func (t *Table) insert(s string) {
	i, found := t.Search(s)
	if found {
		t.counts[i]++
		return
	}

	t.strings = append(t.strings, "")
	copy(t.strings[i+1:], t.strings[i:])
	t.strings[i] = s

	t.counts = append(t.counts, 0)
	copy(t.counts[i+1:], t.counts[i:])
	t.counts[i] = 1
}
