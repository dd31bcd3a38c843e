/*
main.go - Command-line validation of one week

USAGE:
  validate -week 202551 [-lang nl|en] [-email] [-db hours.db]

  Reads the converted exports of the week, writes both reports and prints
  where they were written with per-status counts. With -email the summary
  email is printed as well.

EXIT CODES:
  0  reports written
  1  missing input, invalid week, week locked or any other failure
  2  invalid flags

The same lease database as the server is used, so a CLI run and an upload
for the same week never write the reports at the same time.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/warp/hours-validator/config"
	"github.com/warp/hours-validator/generic"
	"github.com/warp/hours-validator/hours"
	"github.com/warp/hours-validator/logger"
	"github.com/warp/hours-validator/store/sqlite"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "load .env: %v\n", err)
		return 1
	}
	cfg := config.Load()

	fset := flag.NewFlagSet("validate", flag.ContinueOnError)
	fset.SetOutput(stderr)
	week := fset.String("week", "", "Week number in YYYYww format, e.g. 202551")
	lang := fset.String("lang", cfg.Language, "Report and email language (nl, en)")
	email := fset.Bool("email", false, "Print the summary email")
	dbPath := fset.String("db", cfg.DBPath, "SQLite lease database path")
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if *week == "" {
		fmt.Fprintln(stderr, "-week is required")
		fset.Usage()
		return 2
	}
	language, err := hours.ParseLanguage(*lang)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: stderr})

	store, err := sqlite.New(*dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "FOUT: %v\n", err)
		return 1
	}
	defer store.Close()

	v := hours.NewValidator(cfg.Paths, store, logger.Named(log, "validator"))
	v.Language = language
	v.LeaseTTL = cfg.LeaseTTL

	res, err := v.Run(ctx, *week)
	if err != nil {
		printError(stdout, log, err)
		return 1
	}

	printCounts(stdout, res.OutputFileWeek, len(res.RowsWeek), res.CountsWeek)
	printCounts(stdout, res.OutputFileDay, len(res.RowsDay), res.CountsDay)

	if *email {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, hours.ComposeSummary(res, language))
	}
	return 0
}

func printCounts(w io.Writer, path string, rows int, c generic.StatusCounts) {
	fmt.Fprintf(w, "Resultaat geschreven naar: %s\n", path)
	fmt.Fprintf(w, "  %d regels | OK: %d | Verschil: %d | Alleen factuur: %d | Alleen kloklijst: %d\n",
		rows, c.OK, c.Mismatch, c.OnlyInInvoice, c.OnlyInTimesheet)
}

func printError(w io.Writer, log zerolog.Logger, err error) {
	var missing *generic.MissingInputError
	if errors.As(err, &missing) {
		fmt.Fprintf(w, "FOUT: Bestand niet gevonden: %s\n", missing.Path)
		return
	}
	log.Debug().Err(err).Msg("validation failed")
	fmt.Fprintf(w, "FOUT: %v\n", err)
}
