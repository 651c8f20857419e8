package plainsight

import (
	"reflect"
	"testing"
)

func TestNextChars(t *testing.T) {
	// aaa aab abb bba bab abb
	table, _ := BuildTable(3, "aaabbabb")

	type testRow struct {
		prefix string
		expect Distribution
	}

	testData := [...]testRow{
		{"aa", Distribution{Strings: []string{"a", "b"}, Counts: []uint32{1, 1}}},
		{"ab", Distribution{Strings: []string{"b"}, Counts: []uint32{2}}},
		{"ba", Distribution{Strings: []string{"b"}, Counts: []uint32{1}}},
		{"bb", Distribution{Strings: []string{"a"}, Counts: []uint32{1}}},
		{"zz", Distribution{}},
	}
	for _, row := range testData {
		t.Run(row.prefix, func(t *testing.T) {
			actual := NextChars(table, row.prefix)
			if !reflect.DeepEqual(row.expect, actual) {
				t.Errorf("wrong distribution:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
		})
	}
}

func TestNextChars_EmptyPrefix(t *testing.T) {
	table, _ := BuildTable(1, "caaabbbbab")
	actual := NextChars(table, "")
	expect := Distribution{Strings: []string{"a", "b", "c"}, Counts: []uint32{4, 5, 1}}
	if !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong distribution:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

func TestNextChars_Multibyte(t *testing.T) {
	table, _ := BuildTable(2, "xéxéxa")
	actual := NextChars(table, "x")
	expect := Distribution{Strings: []string{"a", "é"}, Counts: []uint32{1, 2}}
	if !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong distribution:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}
