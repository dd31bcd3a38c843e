package hours

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName turns a person name into a comparison key that ignores case
// and word order, so "Jane Doe", "Doe Jane" and "doe-jane" share one key.
// The invoice export writes first name first and the timesheet export writes
// last name first.
func NormalizeName(name string) string {
	lower := cases.Lower(language.Und).String(name)
	words := strings.Fields(strings.ReplaceAll(lower, "-", " "))
	sort.Strings(words)
	return strings.Join(words, " ")
}
