package hours_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hours-validator/generic"
	"github.com/warp/hours-validator/hours"
)

func present(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

var sampleRows = []generic.Row{
	{Name: "jan jansen", Date: "2025-12-15", Category: "T133 Dag", Invoice: present("8"), Timesheet: present("7.5"), Difference: present("0.5"), Status: generic.StatusMismatch},
	{Name: "jan jansen", Date: "2025-12-16", Category: "T135 Dag", Invoice: present("2"), Status: generic.StatusOnlyInInvoice},
	{Name: "piet pieters", Date: "2025-12-15", Category: "Norm uren Dag", Timesheet: present("8"), Status: generic.StatusOnlyInTimesheet},
}

func reportLines(t *testing.T, data []byte) []string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("\xef\xbb\xbf")), "report must start with a UTF-8 BOM")
	body := strings.TrimSuffix(string(data[3:]), "\r\n")
	return strings.Split(body, "\r\n")
}

func TestWriteReport_Weekly_Dutch(t *testing.T) {
	var buf bytes.Buffer

	err := hours.WriteReport(&buf, sampleRows, generic.GranularityWeek, hours.LanguageDutch)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Naam,Code toeslag,Factuur uren,Kloklijst uren,Verschil,Status",
		"jan jansen,T133 Dag,8,7.5,0.5,VERSCHIL",
		"jan jansen,T135 Dag,2,,,ALLEEN IN FACTUUR",
		"piet pieters,Norm uren Dag,,8,,ALLEEN IN KLOKLIJST",
	}, reportLines(t, buf.Bytes()))
}

func TestWriteReport_Daily_English(t *testing.T) {
	var buf bytes.Buffer

	err := hours.WriteReport(&buf, sampleRows[:1], generic.GranularityDay, hours.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Name,Date,Category,Invoice hours,Timesheet hours,Difference,Status",
		"jan jansen,2025-12-15,T133 Dag,8,7.5,0.5,MISMATCH",
	}, reportLines(t, buf.Bytes()))
}

func TestWriteReport_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, hours.WriteReport(&buf, nil, generic.GranularityWeek, hours.LanguageDutch))

	assert.Len(t, reportLines(t, buf.Bytes()), 1)
}

func TestWriteReportFile_ReplacesExisting(t *testing.T) {
	// GIVEN: A stale report in place
	path := filepath.Join(t.TempDir(), "output", "202551 validation_hours.csv")
	writeFile(t, path, "stale")

	// WHEN: Writing a new report
	err := hours.WriteReportFile(path, sampleRows, generic.GranularityWeek, hours.LanguageDutch)

	// THEN: The file holds only the new report and no temp files remain
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, reportLines(t, data), 4)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
