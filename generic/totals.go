package generic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TOTALS - name → date → category → hours
// =============================================================================

// Totals accumulates hours per (name, date, category).
// Weekly aggregates use the empty date as their only date.
//
// A key that was never added is absent; a key whose additions sum to zero is
// present with value zero. Callers that must not create zero keys filter
// before calling Add.
type Totals struct {
	byName map[string]map[string]map[string]decimal.Decimal
}

func NewTotals() *Totals {
	return &Totals{byName: make(map[string]map[string]map[string]decimal.Decimal)}
}

// Add sums hours into the bucket for (name, date, category).
func (t *Totals) Add(name, date, category string, hours decimal.Decimal) {
	byDate, ok := t.byName[name]
	if !ok {
		byDate = make(map[string]map[string]decimal.Decimal)
		t.byName[name] = byDate
	}
	byCat, ok := byDate[date]
	if !ok {
		byCat = make(map[string]decimal.Decimal)
		byDate[date] = byCat
	}
	byCat[category] = byCat[category].Add(hours)
}

// Get returns the accumulated hours and whether the key is present.
func (t *Totals) Get(name, date, category string) (decimal.Decimal, bool) {
	v, ok := t.byName[name][date][category]
	return v, ok
}

// Len returns the number of present (name, date, category) keys.
func (t *Totals) Len() int {
	n := 0
	for _, byDate := range t.byName {
		for _, byCat := range byDate {
			n += len(byCat)
		}
	}
	return n
}

// Names returns all names in ascending order.
func (t *Totals) Names() []string {
	return sortedKeys(t.byName)
}

// Dates returns the dates recorded for name in ascending order.
func (t *Totals) Dates(name string) []string {
	return sortedKeys(t.byName[name])
}

// Categories returns the categories recorded for (name, date) in ascending order.
func (t *Totals) Categories(name, date string) []string {
	return sortedKeys(t.byName[name][date])
}

// bucket returns the category map for (name, date). Nil when absent.
func (t *Totals) bucket(name, date string) map[string]decimal.Decimal {
	return t.byName[name][date]
}

// collapsed sums every date of name into one category map.
// A category is present when it is present on any date.
func (t *Totals) collapsed(name string) map[string]decimal.Decimal {
	byDate := t.byName[name]
	if len(byDate) == 1 {
		for _, byCat := range byDate {
			return byCat
		}
	}
	out := make(map[string]decimal.Decimal)
	for _, byCat := range byDate {
		for cat, v := range byCat {
			out[cat] = out[cat].Add(v)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unionKeys returns the sorted union of the keys of a and b.
func unionKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	return sortedKeys(seen)
}
