package hours

import (
	"github.com/warp/hours-validator/generic"
)

// LoadStats counts what a loader did with its rows.
type LoadStats struct {
	Rows    int // data rows read
	Used    int // rows that contributed hours
	Skipped int // rows ignored (blank fields, malformed hours, summary rows)
}

// LoadFactuur sums invoice hours per (name, category) at GranularityWeek or
// per (name, date, category) at GranularityDay.
//
// A row is skipped when a required field is blank or the hours do not parse.
// Zero sums are stored as present keys.
func LoadFactuur(records []Record, g generic.Granularity, cols FactuurColumns) (*generic.Totals, LoadStats) {
	totals := generic.NewTotals()
	stats := LoadStats{Rows: len(records)}

	for _, rec := range records {
		name := rec.Get(cols.Name)
		code := rec.Get(cols.Category)
		raw := rec.Get(cols.Hours)
		date := ""
		if g == generic.GranularityDay {
			date = rec.Get(cols.Date)
			if date == "" {
				stats.Skipped++
				continue
			}
			date = generic.DateKey(date)
		}
		if name == "" || code == "" || raw == "" {
			stats.Skipped++
			continue
		}
		h, ok := ParseHours(raw)
		if !ok {
			stats.Skipped++
			continue
		}

		totals.Add(NormalizeName(name), date, code, h)
		stats.Used++
	}

	return totals, stats
}
