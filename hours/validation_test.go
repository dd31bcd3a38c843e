package hours_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hours-validator/generic"
	"github.com/warp/hours-validator/generic/store"
	"github.com/warp/hours-validator/hours"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestValidator(t *testing.T, leases generic.LeaseStore) (*hours.Validator, hours.Paths) {
	t.Helper()
	templates := templatesIn(t.TempDir())
	paths := templates.For("202551")
	writeFile(t, paths.Factuur, factuurCSV)
	writeFile(t, paths.Kloklijst, kloklijstCSV)
	return hours.NewValidator(templates, leases, zerolog.Nop()), paths
}

// =============================================================================
// RUN
// =============================================================================

func TestValidator_Run_WritesBothReports(t *testing.T) {
	// GIVEN: Both exports for week 202551
	v, paths := newTestValidator(t, store.NewMemory())

	// WHEN: Validating the week
	res, err := v.Run(context.Background(), "202551")

	// THEN: Weekly all OK, daily reports Piet's undated invoice hours as missing
	require.NoError(t, err)
	assert.Equal(t, generic.WeekID("202551"), res.Week)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, paths.OutputWeek, res.OutputFileWeek)
	assert.Equal(t, paths.OutputDay, res.OutputFileDay)

	assert.Equal(t, generic.StatusCounts{OK: 3}, res.CountsWeek)
	assert.Len(t, res.RowsWeek, 3)
	assert.Equal(t, generic.StatusCounts{OK: 3, OnlyInTimesheet: 1}, res.CountsDay)
	assert.Len(t, res.RowsDay, 4)

	week, err := os.ReadFile(paths.OutputWeek)
	require.NoError(t, err)
	assert.Len(t, reportLines(t, week), 4)

	day, err := os.ReadFile(paths.OutputDay)
	require.NoError(t, err)
	lines := reportLines(t, day)
	assert.Equal(t, "Naam,Datum,Code toeslag,Factuur uren,Kloklijst uren,Verschil,Status", lines[0])
	assert.Contains(t, lines, "piet pieters,2025-12-15,Norm uren Dag,,8,,ALLEEN IN KLOKLIJST")

	assert.Contains(t, hours.ComposeSummary(res, hours.LanguageDutch), "geen discrepanties")
}

func TestValidator_Run_IsIdempotent(t *testing.T) {
	// GIVEN: One set of exports
	v, paths := newTestValidator(t, nil)

	run := func() (week, day []byte, summary string) {
		res, err := v.Run(context.Background(), "202551")
		require.NoError(t, err)
		week, err = os.ReadFile(paths.OutputWeek)
		require.NoError(t, err)
		day, err = os.ReadFile(paths.OutputDay)
		require.NoError(t, err)
		return week, day, hours.ComposeSummary(res, hours.LanguageDutch)
	}

	// WHEN: Validating the same week twice
	week1, day1, summary1 := run()
	week2, day2, summary2 := run()

	// THEN: Both reports and the mail are identical
	assert.Equal(t, week1, week2)
	assert.Equal(t, day1, day2)
	assert.Equal(t, summary1, summary2)
	assert.NotEmpty(t, week1)
}

func TestValidator_Run_MissingInputWritesNothing(t *testing.T) {
	// GIVEN: The timesheet export is missing
	v, paths := newTestValidator(t, nil)
	require.NoError(t, os.Remove(paths.Kloklijst))

	// WHEN: Validating
	_, err := v.Run(context.Background(), "202551")

	// THEN: A MissingInputError names the file and no report exists
	var missing *generic.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "kloklijst", missing.Role)
	assert.Equal(t, paths.Kloklijst, missing.Path)
	assert.True(t, generic.IsNotFound(err))

	_, statErr := os.Stat(paths.OutputWeek)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidator_Run_InvalidWeek(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	_, err := v.Run(context.Background(), "2025-51")

	assert.ErrorIs(t, err, generic.ErrInvalidWeek)
}

func TestValidator_Run_WeekLocked(t *testing.T) {
	// GIVEN: Another run holds the week
	leases := store.NewMemory()
	require.NoError(t, leases.Acquire(context.Background(), "202551", "other-run", time.Minute))
	v, paths := newTestValidator(t, leases)

	// WHEN: Validating the same week
	_, err := v.Run(context.Background(), "202551")

	// THEN: The run is rejected before touching the reports
	assert.ErrorIs(t, err, generic.ErrWeekLocked)
	_, statErr := os.Stat(paths.OutputWeek)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidator_Run_ReleasesLease(t *testing.T) {
	leases := store.NewMemory()
	v, _ := newTestValidator(t, leases)

	_, err := v.Run(context.Background(), "202551")
	require.NoError(t, err)

	_, held := leases.Held("202551")
	assert.False(t, held)
}

func TestValidator_Run_EnglishReports(t *testing.T) {
	v, paths := newTestValidator(t, nil)
	v.Language = hours.LanguageEnglish

	_, err := v.Run(context.Background(), "202551")
	require.NoError(t, err)

	data, err := os.ReadFile(paths.OutputWeek)
	require.NoError(t, err)
	assert.Equal(t, "Name,Category,Invoice hours,Timesheet hours,Difference,Status", reportLines(t, data)[0])
}
