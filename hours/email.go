package hours

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-validator/generic"
)

// ComposeSummary renders the discrepancy mail for a validation result.
// Only the weekly rows are used.
func ComposeSummary(res *Result, lang Language) string {
	return ComposeEmail(res.RowsWeek, res.Week, lang)
}

// ComposeEmail renders weekly rows as a mail body. When every row is OK the
// body is the fixed "no discrepancies" text for the week; otherwise it lists
// one line per row that is not OK, in row order.
func ComposeEmail(rows []generic.Row, week generic.WeekID, lang Language) string {
	t := lang.texts()

	var discrepancies []generic.Row
	for _, r := range rows {
		if r.Status != generic.StatusOK {
			discrepancies = append(discrepancies, r)
		}
	}

	if len(discrepancies) == 0 {
		return strings.Join([]string{
			t.greeting,
			"",
			fmt.Sprintf(t.noDiscrepancy, week),
			"",
			t.thanks,
		}, "\n")
	}

	lines := []string{
		t.greeting,
		"",
		fmt.Sprintf(t.header, week),
	}
	for _, r := range discrepancies {
		name := orDash(r.Name)
		code := orDash(r.Category)
		inv := formatHours(r.Invoice)
		ts := formatHours(r.Timesheet)

		switch r.Status {
		case generic.StatusMismatch:
			lines = append(lines, fmt.Sprintf(t.mismatch, name, inv, code, ts))
		case generic.StatusOnlyInInvoice:
			lines = append(lines, fmt.Sprintf(t.onlyInInvoice, name, inv, code))
		case generic.StatusOnlyInTimesheet:
			lines = append(lines, fmt.Sprintf(t.onlyInTimesheet, name, ts, code))
		default:
			lines = append(lines, fmt.Sprintf(t.fallback, name, code, orDash(string(r.Status))))
		}
	}
	lines = append(lines, "", t.question, "", t.thanks)
	return strings.Join(lines, "\n")
}

// formatHours renders 8 as "8" and 7.5 as "7,50". Absent values render "-".
func formatHours(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return FormatHours(v.Decimal)
}

// FormatHours renders whole hours without decimals and other values with
// two decimals and a decimal comma.
func FormatHours(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
