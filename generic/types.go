/*
Package generic provides the source-agnostic reconciliation engine.

PURPOSE:
  This package contains the types and algorithms that compare two hour
  aggregates without knowing where they came from. The hours package parses
  the invoice ("factuur") and timesheet ("kloklijst") exports into Totals;
  this package joins them and classifies every cell.

KEY CONCEPTS IN THIS FILE (types.go):
  - Granularity: weekly (name × category) or daily (name × date × category)
  - Status: classification of one compared cell
  - Row: one line of a comparison report
  - StatusCounts: per-status counters that always agree with the row set

DESIGN PRINCIPLES:
  1. Precision: hours are decimal.Decimal, summed exactly, rounded only on output
  2. Absent is not zero: optional hour fields are decimal.NullDecimal
  3. Determinism: every ordering is lexicographic, never map order

USAGE:
  rows, counts := generic.Merge(factuur, kloklijst, generic.GranularityWeek)
  if counts.Total() != len(rows) {
      // impossible by construction
  }

SEE ALSO:
  - totals.go: HourCell accumulation buckets
  - merge.go: outer join and classification
  - errors.go: error taxonomy
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// GRANULARITY
// =============================================================================

type Granularity int

const (
	GranularityWeek Granularity = iota
	GranularityDay
)

func (g Granularity) String() string {
	switch g {
	case GranularityDay:
		return "day"
	default:
		return "week"
	}
}

// ParseGranularity accepts the names used in report URLs ("week", "day").
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "week":
		return GranularityWeek, true
	case "day":
		return GranularityDay, true
	}
	return GranularityWeek, false
}

// =============================================================================
// STATUS - Classification of one compared cell
// =============================================================================

type Status string

const (
	StatusOK              Status = "OK"
	StatusMismatch        Status = "MISMATCH"
	StatusOnlyInInvoice   Status = "ONLY_IN_INVOICE"
	StatusOnlyInTimesheet Status = "ONLY_IN_TIMESHEET"
)

// HoursPrecision is the number of decimals every reported hour value carries.
const HoursPrecision = 2

// =============================================================================
// ROW - One line of a comparison report
// =============================================================================

// Row is one (name[, date], category) cell of the outer join.
// Date is empty for weekly rows.
type Row struct {
	Name       string
	Date       string
	Category   string
	Invoice    decimal.NullDecimal
	Timesheet  decimal.NullDecimal
	Difference decimal.NullDecimal
	Status     Status
}

func roundedHours(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d.Round(HoursPrecision))
}

// =============================================================================
// STATUS COUNTS
// =============================================================================

type StatusCounts struct {
	OK              int
	Mismatch        int
	OnlyInInvoice   int
	OnlyInTimesheet int
}

// Add increments the counter for s. Unknown statuses are ignored.
func (c *StatusCounts) Add(s Status) {
	switch s {
	case StatusOK:
		c.OK++
	case StatusMismatch:
		c.Mismatch++
	case StatusOnlyInInvoice:
		c.OnlyInInvoice++
	case StatusOnlyInTimesheet:
		c.OnlyInTimesheet++
	}
}

func (c StatusCounts) Total() int {
	return c.OK + c.Mismatch + c.OnlyInInvoice + c.OnlyInTimesheet
}

// Discrepancies is the number of rows that are not OK.
func (c StatusCounts) Discrepancies() int {
	return c.Total() - c.OK
}
