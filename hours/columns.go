package hours

// FactuurColumns names the invoice export headers.
type FactuurColumns struct {
	Name     string
	Category string
	Date     string
	Hours    string
}

// DefaultFactuurColumns matches "Padifood specificatie - Export Factuur".
var DefaultFactuurColumns = FactuurColumns{
	Name:     "Naam",
	Category: "Code toeslag",
	Date:     "Datum",
	Hours:    "Totaal uren",
}

// KloklijstColumns names the timesheet export headers.
type KloklijstColumns struct {
	Name  string
	Date  string
	Hours []string

	// Aliases optionally renames an hour column to the category key used on
	// the invoice, e.g. "T135 Dag" -> "T135". Columns without an alias keep
	// their header as category.
	Aliases map[string]string
}

// DefaultKloklijstHourColumns are the seven hour-type columns of the
// timesheet export, in export order.
var DefaultKloklijstHourColumns = []string{
	"Norm uren Dag",
	"T133 Dag",
	"T135 Dag",
	"T200 Dag",
	"OW140 Week",
	"OW180 Dag",
	"OW200 Dag",
}

// DefaultKloklijstColumns matches "Kloklijst Padifood Otto Workforce".
// No aliases: categories are compared by exact key.
var DefaultKloklijstColumns = KloklijstColumns{
	Name:  "Naam",
	Date:  "Datum",
	Hours: DefaultKloklijstHourColumns,
}

func (c KloklijstColumns) category(column string) string {
	if alias, ok := c.Aliases[column]; ok && alias != "" {
		return alias
	}
	return column
}
