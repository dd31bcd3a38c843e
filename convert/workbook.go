/*
Package convert turns uploaded .xlsx workbooks into the CSV exports the
hours package reads.

NAMING:
  Output files are named after the workbook:
    "Kloklijst Padifood, Otto Workforce.xlsx"
      -> "202551 Kloklijst Padifood Otto Workforce.csv"
  - ".xlsx" is dropped, commas become spaces, whitespace is collapsed
  - a "YYYYww " week prefix is added unless the name already has one; the
    week is the ISO week of the first date in a "Datum" column
  - each sheet becomes its own file; " - <sheet>" is appended when the
    workbook has several sheets with meaningful names, and always for the
    "Export Factuur" sheet of an invoice ("specificatie") workbook

CELLS:
  Values are written raw (no number formatting). Date serials in the date
  column are written as "YYYY-MM-DD HH:MM:SS", which the loaders truncate to
  the date.

SEE ALSO:
  - hours/paths.go: templates that expect these names
  - api/handlers.go: Upload runs the converter before validating
*/
package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/hours-validator/generic"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// DefaultDateColumn is the header whose values determine the week prefix.
	DefaultDateColumn = "Datum"

	dateTimeLayout = "2006-01-02 15:04:05"
)

var (
	xlsxSuffix = regexp.MustCompile(`(?i)\.xlsx$`)
	weekPrefix = regexp.MustCompile(`^\d{6} `)

	genericSheetNames = map[string]bool{
		"sheet":  true,
		"sheet1": true,
		"blad1":  true,
		"blad":   true,
	}
)

// Converter writes one CSV per worksheet into OutputDir.
type Converter struct {
	InputDir   string
	OutputDir  string
	DateColumn string
	Log        zerolog.Logger
}

func New(inputDir, outputDir string, log zerolog.Logger) *Converter {
	return &Converter{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		DateColumn: DefaultDateColumn,
		Log:        log,
	}
}

// ConvertInputs converts the timesheet and invoice workbooks. Relative names
// are resolved against InputDir. Office lock files ("~$...") are skipped.
func (c *Converter) ConvertInputs(kloklijst, factuur string) ([]string, error) {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var created []string
	for _, candidate := range []string{kloklijst, factuur} {
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.InputDir, candidate)
		}
		name := filepath.Base(path)

		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			return created, fmt.Errorf("%w: only .xlsx workbooks are supported: %s", generic.ErrUnsupportedFile, name)
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return created, &generic.MissingInputError{Role: "workbook", Path: path}
			}
			return created, err
		}

		files, err := c.ConvertWorkbook(path)
		created = append(created, files...)
		if err != nil {
			return created, err
		}
	}
	return created, nil
}

// ConvertWorkbook writes every sheet of the workbook at path as CSV and
// returns the created files.
func (c *Converter) ConvertWorkbook(path string) ([]string, error) {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	base := SafeBase(filepath.Base(path))
	prefix := ""
	if !weekPrefix.MatchString(base) {
		prefix = WeekPrefix(f, c.dateColumn())
	}
	outBase := strings.TrimSpace(prefix + base)
	isFactuur := IsFactuurName(outBase)

	sheets := f.GetSheetList()
	var created []string
	for _, sheet := range sheets {
		safeSheet := strings.TrimSpace(strings.NewReplacer("/", "-", `\`, "-").Replace(sheet))
		isGeneric := genericSheetNames[strings.ToLower(safeSheet)]
		appendSheet := (len(sheets) > 1 && !isGeneric) ||
			(isFactuur && strings.ToLower(safeSheet) == "export factuur")

		outName := outBase + ".csv"
		if appendSheet {
			outName = fmt.Sprintf("%s - %s.csv", outBase, safeSheet)
		}
		outPath := filepath.Join(c.OutputDir, outName)

		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return created, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if err := writeSheet(outPath, c.formatRows(rows)); err != nil {
			return created, err
		}
		created = append(created, outPath)
		c.Log.Info().Str("workbook", filepath.Base(path)).Str("sheet", sheet).Str("file", outName).Msg("sheet converted")
	}
	return created, nil
}

// formatRows pads rows to a common width and renders date serials in the
// date column.
func (c *Converter) formatRows(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	dateCol := -1
	if len(rows) > 0 {
		dateCol = columnIndex(rows[0], c.dateColumn())
	}

	out := make([][]string, len(rows))
	for i, r := range rows {
		rec := make([]string, width)
		copy(rec, r)
		if i > 0 && dateCol >= 0 && rec[dateCol] != "" {
			if t, ok := cellTime(rec[dateCol]); ok {
				rec[dateCol] = t.Format(dateTimeLayout)
			}
		}
		out[i] = rec
	}
	return out
}

func (c *Converter) dateColumn() string {
	if c.DateColumn == "" {
		return DefaultDateColumn
	}
	return c.DateColumn
}

// SafeBase strips ".xlsx", turns commas into spaces and collapses whitespace.
func SafeBase(name string) string {
	base := xlsxSuffix.ReplaceAllString(name, "")
	base = strings.ReplaceAll(base, ",", " ")
	return strings.Join(strings.Fields(base), " ")
}

// IsFactuurName reports whether a workbook or CSV name is an invoice export.
func IsFactuurName(name string) bool {
	return strings.Contains(strings.ToLower(name), "specificatie")
}

// WeekPrefix returns "YYYYww " for the first date found in a dateColumn of
// any sheet, or "" when no sheet has such a column with a usable date.
func WeekPrefix(f *excelize.File, dateColumn string) string {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil || len(rows) == 0 {
			continue
		}
		col := columnIndex(rows[0], dateColumn)
		if col < 0 {
			continue
		}
		for _, r := range rows[1:] {
			if col >= len(r) || strings.TrimSpace(r[col]) == "" {
				continue
			}
			t, ok := cellTime(r[col])
			if !ok {
				continue
			}
			return string(generic.WeekOf(t)) + " "
		}
	}
	return ""
}

// cellTime reads an Excel date serial or a "YYYY-MM-DD..." text.
func cellTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if len(v) >= 10 {
		if t, err := time.Parse("2006-01-02", v[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// writeSheet replaces path through a temporary file in the same directory,
// so a concurrent validation never reads a partly written sheet.
func writeSheet(path string, rows [][]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sheet-*.csv")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = writeCSV(tmp, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	enc := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(enc)
	cw.UseCRLF = true
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return enc.Close()
}
