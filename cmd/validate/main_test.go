package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "hours.db"))
	t.Setenv("FACTUUR_TEMPLATE", filepath.Join(dir, "in", "{week} factuur.csv"))
	t.Setenv("KLOKLIJST_TEMPLATE", filepath.Join(dir, "in", "{week} kloklijst.csv"))
	t.Setenv("OUTPUT_WEEK_TEMPLATE", filepath.Join(dir, "out", "{week} week.csv"))
	t.Setenv("OUTPUT_DAY_TEMPLATE", filepath.Join(dir, "out", "{week} day.csv"))
	t.Setenv("REPORT_LANGUAGE", "")
	t.Setenv("LOG_FORMAT", "json")
	return dir
}

func TestRun_PrintsCounts(t *testing.T) {
	// GIVEN: Exports for week 202551 with one invoice-only row
	dir := setupEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "in"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in", "202551 factuur.csv"),
		[]byte("Naam,Code toeslag,Datum,Totaal uren\nJan Jansen,T133 Dag,2025-12-15,8\nJan Jansen,T135 Dag,2025-12-15,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in", "202551 kloklijst.csv"),
		[]byte("Naam,Datum,T133 Dag\nJansen Jan,2025-12-15,8\n"), 0o644))

	// WHEN: Running the CLI with -email
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-week", "202551", "-email"}, &stdout, &stderr)

	// THEN: Both reports are listed with their counts and the mail follows
	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Resultaat geschreven naar: "+filepath.Join(dir, "out", "202551 week.csv"))
	assert.Contains(t, out, "  2 regels | OK: 1 | Verschil: 0 | Alleen factuur: 1 | Alleen kloklijst: 0")
	assert.Contains(t, out, "- Bij jan jansen staat 1 uur voor T135 Dag op de factuur")
}

func TestRun_MissingInput(t *testing.T) {
	dir := setupEnv(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-week", "202551"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "FOUT: Bestand niet gevonden: "+filepath.Join(dir, "in", "202551 factuur.csv")+"\n", stdout.String())
}

func TestRun_FlagErrors(t *testing.T) {
	setupEnv(t)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"-week", "202551", "-lang", "fr"}, &stdout, &stderr))
}
