package generic

import "github.com/shopspring/decimal"

// =============================================================================
// MERGE - Outer join of two Totals with per-cell classification
// =============================================================================

// Merge joins invoice and timesheet totals and classifies every cell.
//
// Names, dates and categories are each iterated as the sorted union of both
// sides. At GranularityWeek a name's whole bucket is treated as one
// pseudo-date: any dated entries are summed per category and rows carry no
// date. At GranularityDay one row is produced per (name, date, category).
//
// Every key present in either input appears exactly once in the output, and
// counts.Total() == len(rows).
func Merge(invoice, timesheet *Totals, g Granularity) ([]Row, StatusCounts) {
	var rows []Row
	var counts StatusCounts

	emit := func(name, date string, inv, ts map[string]decimal.Decimal) {
		for _, cat := range unionKeys(inv, ts) {
			iv, inInvoice := inv[cat]
			tv, inTimesheet := ts[cat]
			row := classify(iv, inInvoice, tv, inTimesheet)
			row.Name = name
			row.Date = date
			row.Category = cat
			counts.Add(row.Status)
			rows = append(rows, row)
		}
	}

	for _, name := range unionKeys(invoice.byName, timesheet.byName) {
		if g == GranularityWeek {
			emit(name, "", invoice.collapsed(name), timesheet.collapsed(name))
			continue
		}
		for _, date := range unionKeys(invoice.byName[name], timesheet.byName[name]) {
			emit(name, date, invoice.bucket(name, date), timesheet.bucket(name, date))
		}
	}

	return rows, counts
}

// classify decides the status of one cell. At least one side is present.
func classify(inv decimal.Decimal, hasInv bool, ts decimal.Decimal, hasTs bool) Row {
	switch {
	case !hasInv:
		return Row{Timesheet: roundedHours(ts), Status: StatusOnlyInTimesheet}
	case !hasTs:
		return Row{Invoice: roundedHours(inv), Status: StatusOnlyInInvoice}
	}

	diff := inv.Sub(ts).Round(HoursPrecision)
	status := StatusMismatch
	if diff.IsZero() {
		status = StatusOK
	}
	return Row{
		Invoice:    roundedHours(inv),
		Timesheet:  roundedHours(ts),
		Difference: decimal.NewNullDecimal(diff),
		Status:     status,
	}
}
