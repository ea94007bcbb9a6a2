// Package ascii folds arbitrary UTF-8 text down to the printable ASCII
// subset the CAP format stores. Accented letters lose their marks instead of
// disappearing, so "José" pads as "Jose" rather than "Jos".
package ascii

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips combining marks and drops every rune outside 0x20-0x7E.
// The result is safe to space-pad into a fixed-width CAP text field.
func Fold(s string) string {
	chain := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		runes.Remove(runes.Predicate(nonASCII)),
	)
	out, _, err := transform.String(chain, s)
	if err != nil {
		// Normalization does not fail on valid UTF-8; if the input is
		// broken, keep whatever bytes are already plain ASCII.
		b := make([]byte, 0, len(s))
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x20 && s[i] <= 0x7E {
				b = append(b, s[i])
			}
		}
		return string(b)
	}
	return out
}

func nonASCII(r rune) bool {
	return r < 0x20 || r > 0x7E
}
