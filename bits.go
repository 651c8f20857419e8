package plainsight

import (
	"strings"
	"unicode/utf16"
)

// BitsPerUnit is the number of bits used to represent one UTF-16 code unit.
const BitsPerUnit = 16

// ToBits returns the bit string for text: each UTF-16 code unit of text,
// most significant bit first, left-padded with zeros to BitsPerUnit bits.
// Characters outside the Basic Multilingual Plane take two code units.
func ToBits(text string) string {
	units := utf16.Encode([]rune(text))

	var sb strings.Builder
	sb.Grow(len(units) * BitsPerUnit)
	for _, unit := range units {
		for shift := BitsPerUnit - 1; shift >= 0; shift-- {
			sb.WriteByte('0' + byte(unit>>uint(shift))&1)
		}
	}
	return sb.String()
}

// FromBits is the inverse of ToBits.  Bits are consumed in groups of
// BitsPerUnit; a final group with fewer bits is silently discarded.
// Unpaired surrogates decode as U+FFFD.
func FromBits(bits string) (string, error) {
	numUnits := len(bits) / BitsPerUnit
	units := make([]uint16, numUnits)
	for i := 0; i < numUnits; i++ {
		group := bits[i*BitsPerUnit : (i+1)*BitsPerUnit]
		var unit uint16
		for j := 0; j < BitsPerUnit; j++ {
			switch group[j] {
			case '0':
				unit <<= 1
			case '1':
				unit = unit<<1 | 1
			default:
				return "", validationf("FromBits", ErrInvalidBit, "got %q at position %d", group[j], i*BitsPerUnit+j)
			}
		}
		units[i] = unit
	}
	return string(utf16.Decode(units)), nil
}
