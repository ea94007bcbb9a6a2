// Package names implements the display-name abbreviation used in CAP player
// records: "Tristan Bissetta" becomes "T. Bissetta", never more than the 12
// characters the record's name field holds.
package names

import (
	"strings"

	"github.com/beaumcc/cap-generator/pkg/ascii"
)

// MaxLen is the width of the name field in a player record.
const MaxLen = 12

// Abbreviate collapses fullName to at most MaxLen characters. hint, when
// present, is the roster check-name of the form "Last,First[ Middle...]";
// the token count after its comma tells how many leading tokens of fullName
// belong to the first name. Candidates are tried in order: "I. Last",
// "I.Last", then the no-space form hard-truncated.
func Abbreviate(fullName, hint string) string {
	name := strings.TrimSpace(ascii.Fold(fullName))
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 {
		return truncate(tokens[0])
	}

	first := firstNameTokens(hint)
	if first < 1 {
		first = 1
	}
	if first > len(tokens)-1 {
		first = len(tokens) - 1
	}

	initial := strings.ToUpper(tokens[0][:1])
	last := strings.Join(tokens[first:], " ")

	if s := initial + ". " + last; len(s) <= MaxLen {
		return s
	}
	if s := initial + "." + last; len(s) <= MaxLen {
		return s
	}
	return truncate(initial + "." + last)
}

// firstNameTokens counts the whitespace-separated tokens after the comma of
// a "Last,First[ Middle...]" hint. Absent or malformed hints count as 1.
func firstNameTokens(hint string) int {
	_, after, ok := strings.Cut(hint, ",")
	if !ok {
		return 1
	}
	n := len(strings.Fields(after))
	if n == 0 {
		return 1
	}
	return n
}

func truncate(s string) string {
	if len(s) > MaxLen {
		return s[:MaxLen]
	}
	return s
}
