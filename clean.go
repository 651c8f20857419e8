package plainsight

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRE  = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	reservedRE    = regexp.MustCompile(`["'&<>]`)
	punctuationRE = regexp.MustCompile(`[\x{21}-\x{2F}\x{5B}-\x{60}\x{A1}-\x{BF}]`)
)

// CleanText prepares text for use as a corpus or as a message: it is
// normalized to NFC, every run of whitespace becomes a single space, and
// the characters " ' & < > are removed.
func CleanText(s string) string {
	s = norm.NFC.String(s)
	s = whitespaceRE.ReplaceAllLiteralString(s, " ")
	return reservedRE.ReplaceAllLiteralString(s, "")
}

// CollapseWhitespace returns s with all whitespace removed.
func CollapseWhitespace(s string) string {
	return whitespaceRE.ReplaceAllLiteralString(s, "")
}

// CollapsePunctuation returns s with ASCII and Latin-1 punctuation and
// symbols removed (U+0021..U+002F, U+005B..U+0060, U+00A1..U+00BF).  The
// space characters U+0020 and U+00A0 are kept.
func CollapsePunctuation(s string) string {
	return punctuationRE.ReplaceAllLiteralString(s, "")
}
