package hours

import (
	"github.com/warp/hours-validator/generic"
)

// kloklijstFold is the state carried through the timesheet rows.
// The export writes an employee's name only on the first row of their block.
type kloklijstFold struct {
	current string
	totals  *generic.Totals
	stats   LoadStats
}

// LoadKloklijst sums timesheet hours per (name, hour column) at
// GranularityWeek or per (name, date, hour column) at GranularityDay.
//
// Rows are scanned in file order. A non-blank name starts a new employee
// block and is carried to following rows. Rows before the first name and
// rows without a date are skipped; the dateless rows are the per-employee
// summary totals and would double count the daily rows they summarize.
//
// Zero and unparseable cells are never stored, so an hour column that is
// zero for the whole week is absent from that employee's totals. The invoice
// loader stores zero sums; the two loaders differ on purpose here.
func LoadKloklijst(records []Record, g generic.Granularity, cols KloklijstColumns) (*generic.Totals, LoadStats) {
	st := kloklijstFold{totals: generic.NewTotals(), stats: LoadStats{Rows: len(records)}}
	for _, rec := range records {
		st = st.step(rec, g, cols)
	}
	return st.totals, st.stats
}

func (st kloklijstFold) step(rec Record, g generic.Granularity, cols KloklijstColumns) kloklijstFold {
	if name := rec.Get(cols.Name); name != "" {
		st.current = name
	}
	if st.current == "" {
		st.stats.Skipped++
		return st
	}
	date := rec.Get(cols.Date)
	if date == "" {
		st.stats.Skipped++
		return st
	}
	if g == generic.GranularityWeek {
		date = ""
	} else {
		date = generic.DateKey(date)
	}

	key := NormalizeName(st.current)
	used := false
	for _, col := range cols.Hours {
		h, ok := ParseHours(rec.Get(col))
		if !ok || h.IsZero() {
			continue
		}
		st.totals.Add(key, date, cols.category(col), h)
		used = true
	}
	if used {
		st.stats.Used++
	}
	return st
}
