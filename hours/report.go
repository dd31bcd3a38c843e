package hours

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-validator/generic"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReportHeader returns the column names for g in lang.
// Weekly: name, category, invoice, timesheet, difference, status.
// Daily inserts the date after the name.
func ReportHeader(g generic.Granularity, lang Language) []string {
	t := lang.texts()
	if g == generic.GranularityDay {
		return []string{t.colName, t.colDate, t.colCategory, t.colInvoice, t.colTimesheet, t.colDifference, t.colStatus}
	}
	return []string{t.colName, t.colCategory, t.colInvoice, t.colTimesheet, t.colDifference, t.colStatus}
}

// WriteReport writes rows as CSV with a UTF-8 byte-order mark so spreadsheet
// tools detect the encoding. Absent hours are empty cells. Values are written
// as the merge rounded them.
func WriteReport(w io.Writer, rows []generic.Row, g generic.Granularity, lang Language) error {
	enc := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(enc)
	cw.UseCRLF = true

	if err := cw.Write(ReportHeader(g, lang)); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, 0, 7)
		rec = append(rec, r.Name)
		if g == generic.GranularityDay {
			rec = append(rec, r.Date)
		}
		rec = append(rec,
			r.Category,
			cell(r.Invoice),
			cell(r.Timesheet),
			cell(r.Difference),
			lang.StatusLabel(r.Status),
		)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return enc.Close()
}

// WriteReportFile replaces path with a fresh report. The report is written to
// a temporary file in the same directory and renamed over path, so a reader
// sees either the previous report or the complete new one.
func WriteReportFile(path string, rows []generic.Row, g generic.Granularity, lang Language) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.csv")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = WriteReport(tmp, rows, g, lang); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

func cell(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String()
}
