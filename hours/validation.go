/*
validation.go - One reconciliation run for one week

PURPOSE:
  Resolves the week's input and output files, loads both exports at both
  granularities, merges them, writes the two reports and returns everything
  the caller needs to build a summary.

RUN SEQUENCE:
  1. Validate the week id
  2. Acquire the week lease (if a LeaseStore is configured)
  3. Check both inputs exist (MissingInputError otherwise, nothing written)
  4. Read each export once; load it per granularity
  5. Merge weekly and daily totals independently
  6. Replace both report files
  7. Release the lease

The weekly and daily results are not cross-checked against each other.
Inconsistent source data can make them disagree.

SEE ALSO:
  - factuur.go, kloklijst.go: loaders
  - generic/merge.go: classification
  - email.go: ComposeSummary
*/
package hours

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/warp/hours-validator/generic"
)

// DefaultLeaseTTL bounds how long a crashed run can block its week.
const DefaultLeaseTTL = 5 * time.Minute

// Result is the outcome of one run.
type Result struct {
	RunID              string
	Week               generic.WeekID
	InputFactuurFile   string
	InputKloklijstFile string
	OutputFileWeek     string
	OutputFileDay      string
	RowsWeek           []generic.Row
	RowsDay            []generic.Row
	CountsWeek         generic.StatusCounts
	CountsDay          generic.StatusCounts
}

// Validator runs reconciliations. The zero value is not usable; use NewValidator.
type Validator struct {
	Paths     PathTemplates
	Factuur   FactuurColumns
	Kloklijst KloklijstColumns
	Language  Language

	// Leases serializes runs per week. Nil disables locking.
	Leases   generic.LeaseStore
	LeaseTTL time.Duration

	Log zerolog.Logger
}

// NewValidator returns a validator with the default export columns.
func NewValidator(paths PathTemplates, leases generic.LeaseStore, log zerolog.Logger) *Validator {
	return &Validator{
		Paths:     paths,
		Factuur:   DefaultFactuurColumns,
		Kloklijst: DefaultKloklijstColumns,
		Language:  LanguageDutch,
		Leases:    leases,
		LeaseTTL:  DefaultLeaseTTL,
		Log:       log,
	}
}

// Run reconciles the invoice and timesheet exports of week.
func (v *Validator) Run(ctx context.Context, week string) (*Result, error) {
	wk, err := generic.ParseWeekID(week)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := v.Log.With().Str("week", string(wk)).Str("run_id", runID).Logger()

	if v.Leases != nil {
		if err := v.Leases.Acquire(ctx, wk, runID, v.leaseTTL()); err != nil {
			return nil, err
		}
		defer func() {
			// Release must run even when ctx is done.
			if err := v.Leases.Release(context.WithoutCancel(ctx), wk, runID); err != nil {
				log.Warn().Err(err).Msg("release week lease")
			}
		}()
	}

	paths := v.Paths.For(wk)
	if err := requireFile("factuur", paths.Factuur); err != nil {
		return nil, err
	}
	if err := requireFile("kloklijst", paths.Kloklijst); err != nil {
		return nil, err
	}

	started := time.Now()
	log.Info().Str("factuur", paths.Factuur).Str("kloklijst", paths.Kloklijst).Msg("validation started")

	factuurRecords, err := ReadTableFile(paths.Factuur)
	if err != nil {
		return nil, fmt.Errorf("read factuur: %w", err)
	}
	kloklijstRecords, err := ReadTableFile(paths.Kloklijst)
	if err != nil {
		return nil, fmt.Errorf("read kloklijst: %w", err)
	}

	res := &Result{
		RunID:              runID,
		Week:               wk,
		InputFactuurFile:   paths.Factuur,
		InputKloklijstFile: paths.Kloklijst,
		OutputFileWeek:     paths.OutputWeek,
		OutputFileDay:      paths.OutputDay,
	}

	for _, g := range []generic.Granularity{generic.GranularityWeek, generic.GranularityDay} {
		factuur, fstats := LoadFactuur(factuurRecords, g, v.Factuur)
		kloklijst, kstats := LoadKloklijst(kloklijstRecords, g, v.Kloklijst)
		log.Debug().
			Stringer("granularity", g).
			Int("factuur_rows", fstats.Rows).Int("factuur_skipped", fstats.Skipped).
			Int("kloklijst_rows", kstats.Rows).Int("kloklijst_skipped", kstats.Skipped).
			Msg("exports loaded")

		rows, counts := generic.Merge(factuur, kloklijst, g)
		if err := WriteReportFile(paths.Report(g), rows, g, v.Language); err != nil {
			return nil, fmt.Errorf("write %s report: %w", g, err)
		}

		if g == generic.GranularityDay {
			res.RowsDay, res.CountsDay = rows, counts
		} else {
			res.RowsWeek, res.CountsWeek = rows, counts
		}
	}

	log.Info().
		Int("rows_week", len(res.RowsWeek)).
		Int("discrepancies_week", res.CountsWeek.Discrepancies()).
		Int("rows_day", len(res.RowsDay)).
		Int("discrepancies_day", res.CountsDay.Discrepancies()).
		Dur("duration", time.Since(started)).
		Msg("validation finished")

	return res, nil
}

func (v *Validator) leaseTTL() time.Duration {
	if v.LeaseTTL <= 0 {
		return DefaultLeaseTTL
	}
	return v.LeaseTTL
}

func requireFile(role, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return &generic.MissingInputError{Role: role, Path: path}
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", role, err)
	}
	return nil
}
