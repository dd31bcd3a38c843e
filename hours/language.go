package hours

import (
	"fmt"
	"strings"

	"github.com/warp/hours-validator/generic"
)

// Language selects the fixed texts of reports and summaries.
type Language string

const (
	LanguageDutch   Language = "nl"
	LanguageEnglish Language = "en"
)

// ParseLanguage accepts "nl" and "en" (case-insensitive). Empty means Dutch.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", LanguageDutch:
		return LanguageDutch, nil
	case LanguageEnglish:
		return LanguageEnglish, nil
	}
	return "", fmt.Errorf("unsupported language %q: must be nl or en", s)
}

// texts holds every fixed string of one language.
type texts struct {
	colName, colDate, colCategory, colInvoice, colTimesheet, colDifference, colStatus string

	status map[generic.Status]string

	greeting        string
	noDiscrepancy   string // %s = week
	header          string // %s = week
	mismatch        string // name, invoice, category, timesheet
	onlyInInvoice   string // name, invoice, category
	onlyInTimesheet string // name, timesheet, category
	fallback        string // name, category, status
	question        string
	thanks          string
}

var dutch = texts{
	colName:       "Naam",
	colDate:       "Datum",
	colCategory:   "Code toeslag",
	colInvoice:    "Factuur uren",
	colTimesheet:  "Kloklijst uren",
	colDifference: "Verschil",
	colStatus:     "Status",
	status: map[generic.Status]string{
		generic.StatusOK:              "OK",
		generic.StatusMismatch:        "VERSCHIL",
		generic.StatusOnlyInInvoice:   "ALLEEN IN FACTUUR",
		generic.StatusOnlyInTimesheet: "ALLEEN IN KLOKLIJST",
	},
	greeting:        "Goedemorgen,",
	noDiscrepancy:   "Voor week %s hebben we op bovenstaande factuur geen discrepanties gevonden met onze kloklijsten.",
	header:          "Op bovenstaande factuur hebben we voor week %s de volgende discrepanties gevonden met onze kloklijsten:",
	mismatch:        "- Bij %s staat %s uur voor %s, maar dit moet %s uur zijn.",
	onlyInInvoice:   "- Bij %s staat %s uur voor %s op de factuur, maar deze uren staan niet op onze kloklijsten.",
	onlyInTimesheet: "- Bij %s staat %s uur voor %s op onze kloklijsten, maar deze uren ontbreken op de factuur.",
	fallback:        "- Bij %s is een discrepantie gevonden voor %s (status: %s).",
	question:        "Kan hier een correctie van worden gemaakt?",
	thanks:          "Bedankt!",
}

var english = texts{
	colName:       "Name",
	colDate:       "Date",
	colCategory:   "Category",
	colInvoice:    "Invoice hours",
	colTimesheet:  "Timesheet hours",
	colDifference: "Difference",
	colStatus:     "Status",
	status: map[generic.Status]string{
		generic.StatusOK:              "OK",
		generic.StatusMismatch:        "MISMATCH",
		generic.StatusOnlyInInvoice:   "ONLY IN INVOICE",
		generic.StatusOnlyInTimesheet: "ONLY IN TIMESHEET",
	},
	greeting:        "Good morning,",
	noDiscrepancy:   "For week %s we found no discrepancies between the invoice above and our timesheets.",
	header:          "For week %s we found the following discrepancies between the invoice above and our timesheets:",
	mismatch:        "- For %s, %s hours are recorded for %s, but this should be %s hours.",
	onlyInInvoice:   "- For %s, %s hours for %s appear on the invoice, but these hours are not in our timesheets.",
	onlyInTimesheet: "- For %s, %s hours for %s appear in our timesheets, but these hours are missing from the invoice.",
	fallback:        "- For %s a discrepancy was found for %s (status: %s).",
	question:        "Could a correction be made for this?",
	thanks:          "Thank you!",
}

func (l Language) texts() texts {
	if l == LanguageEnglish {
		return english
	}
	return dutch
}

// StatusLabel is the report text for s. Unknown statuses render verbatim.
func (l Language) StatusLabel(s generic.Status) string {
	if label, ok := l.texts().status[s]; ok {
		return label
	}
	return string(s)
}
