package hours_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/warp/hours-validator/hours"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// factuurCSV is an invoice export for week 202551. Jan's hours are listed
// first name first; the undated and summary rows exercise the skip rules.
const factuurCSV = "\ufeffNaam,Code toeslag,Datum,Totaal uren\r\n" +
	"Jan Jansen,Norm uren Dag,2025-12-15 00:00:00,8\r\n" +
	"Jan Jansen,Norm uren Dag,2025-12-16 00:00:00,\"7,0\"\r\n" +
	"Jan Jansen,T133 Dag,2025-12-16 00:00:00,5\r\n" +
	"Piet Pieters,Norm uren Dag,,8\r\n" +
	",Totaal,,28\r\n" +
	"Piet Pieters,T135 Dag,2025-12-15,abc\r\n"

// kloklijstCSV is the matching timesheet export. Names are last name first
// and only written on the first row of each block; the dateless row is the
// block summary.
const kloklijstCSV = "\ufeffNaam,Datum,Norm uren Dag,T133 Dag,T135 Dag,T200 Dag,OW140 Week,OW180 Dag,OW200 Dag\r\n" +
	",2025-12-14 00:00:00,8,,,,,,\r\n" +
	"Jansen Jan,2025-12-15 00:00:00,8,0,,,,,\r\n" +
	",2025-12-16 00:00:00,7,5,0,,,,\r\n" +
	",,15,5,,,,,\r\n" +
	"Pieters Piet,2025-12-15 00:00:00,8,,,,,,\r\n"

func records(t *testing.T, csv string) []hours.Record {
	t.Helper()
	recs, err := hours.ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	return recs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// templatesIn points every path template into dir.
func templatesIn(dir string) hours.PathTemplates {
	return hours.PathTemplates{
		Factuur:    filepath.Join(dir, "formatted_input", "{week} factuur.csv"),
		Kloklijst:  filepath.Join(dir, "formatted_input", "{week} kloklijst.csv"),
		OutputWeek: filepath.Join(dir, "output", "{week} validation_hours.csv"),
		OutputDay:  filepath.Join(dir, "output", "{week} validation_hours_daily.csv"),
	}
}
