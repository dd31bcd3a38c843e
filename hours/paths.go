package hours

import (
	"strings"

	"github.com/warp/hours-validator/generic"
)

// WeekPlaceholder is replaced by the week id in every path template.
const WeekPlaceholder = "{week}"

// PathTemplates locate the inputs and outputs of a week.
type PathTemplates struct {
	Factuur    string
	Kloklijst  string
	OutputWeek string
	OutputDay  string
}

// DefaultPathTemplates match the layout produced by the workbook converter.
var DefaultPathTemplates = PathTemplates{
	Factuur:    "formatted_input/{week} Padifood specificatie - Export Factuur.csv",
	Kloklijst:  "formatted_input/{week} Kloklijst Padifood Otto Workforce.csv",
	OutputWeek: "output/{week} validation_hours.csv",
	OutputDay:  "output/{week} validation_hours_daily.csv",
}

// Paths are the resolved files of one week.
type Paths struct {
	Factuur    string
	Kloklijst  string
	OutputWeek string
	OutputDay  string
}

// For resolves the templates for week.
func (t PathTemplates) For(week generic.WeekID) Paths {
	sub := func(tmpl string) string {
		return strings.ReplaceAll(tmpl, WeekPlaceholder, string(week))
	}
	return Paths{
		Factuur:    sub(t.Factuur),
		Kloklijst:  sub(t.Kloklijst),
		OutputWeek: sub(t.OutputWeek),
		OutputDay:  sub(t.OutputDay),
	}
}

// Report returns the output file for granularity g.
func (p Paths) Report(g generic.Granularity) string {
	if g == generic.GranularityDay {
		return p.OutputDay
	}
	return p.OutputWeek
}
