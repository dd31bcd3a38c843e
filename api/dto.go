/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The result keys follow
  the ones the upload frontend already reads (week, inputFactuurFile,
  countsWeek, ...), so the domain types can change without breaking it.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Params: Path/query parameters, validated with struct tags

TYPES:
  ValidationResultDTO, RowDTO, CountsDTO
  ValidateResponse, UploadResponse, ErrorResponse
  WeekParams, ReportParams

SEE ALSO:
  - handlers.go: Uses these types
  - hours/validation.go: Result
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/hours-validator/generic"
	"github.com/warp/hours-validator/hours"
)

// =============================================================================
// PARAMETERS
// =============================================================================

// WeekParams is the {week} path parameter.
type WeekParams struct {
	Week string `json:"week" validate:"required,len=6,numeric"`
}

// ReportParams selects one report file of a week.
type ReportParams struct {
	Week        string `json:"week" validate:"required,len=6,numeric"`
	Granularity string `json:"granularity" validate:"required,oneof=week day"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// CountsDTO holds per-status row counts.
type CountsDTO struct {
	OK            int `json:"ok"`
	Verschil      int `json:"verschil"`
	OnlyFactuur   int `json:"only_factuur"`
	OnlyKloklijst int `json:"only_kloklijst"`
}

// RowDTO is one comparison row. Hours are null when the side is absent.
type RowDTO struct {
	Name           string              `json:"name"`
	Date           string              `json:"date,omitempty"`
	Category       string              `json:"category"`
	InvoiceHours   decimal.NullDecimal `json:"invoiceHours"`
	TimesheetHours decimal.NullDecimal `json:"timesheetHours"`
	Difference     decimal.NullDecimal `json:"difference"`
	Status         string              `json:"status"`
	Label          string              `json:"label"`
}

// ValidationResultDTO is the outcome of one run.
type ValidationResultDTO struct {
	RunID              string    `json:"runId"`
	Week               string    `json:"week"`
	InputFactuurFile   string    `json:"inputFactuurFile"`
	InputKloklijstFile string    `json:"inputKloklijstFile"`
	OutputFileWeek     string    `json:"outputFileWeek"`
	OutputFileDay      string    `json:"outputFileDay"`
	RowsWeek           []RowDTO  `json:"rowsWeek"`
	RowsDay            []RowDTO  `json:"rowsDay"`
	CountsWeek         CountsDTO `json:"countsWeek"`
	CountsDay          CountsDTO `json:"countsDay"`
}

// ValidateResponse is returned by POST /api/weeks/{week}/validate.
type ValidateResponse struct {
	EmailBody string              `json:"emailBody"`
	Result    ValidationResultDTO `json:"result"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	EmailBody      string              `json:"emailBody"`
	ConvertedFiles []string            `json:"convertedFiles"`
	Result         ValidationResultDTO `json:"result"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toResultDTO(res *hours.Result, lang hours.Language) ValidationResultDTO {
	return ValidationResultDTO{
		RunID:              res.RunID,
		Week:               string(res.Week),
		InputFactuurFile:   res.InputFactuurFile,
		InputKloklijstFile: res.InputKloklijstFile,
		OutputFileWeek:     res.OutputFileWeek,
		OutputFileDay:      res.OutputFileDay,
		RowsWeek:           toRowDTOs(res.RowsWeek, lang),
		RowsDay:            toRowDTOs(res.RowsDay, lang),
		CountsWeek:         toCountsDTO(res.CountsWeek),
		CountsDay:          toCountsDTO(res.CountsDay),
	}
}

func toRowDTOs(rows []generic.Row, lang hours.Language) []RowDTO {
	dtos := make([]RowDTO, len(rows))
	for i, r := range rows {
		dtos[i] = RowDTO{
			Name:           r.Name,
			Date:           r.Date,
			Category:       r.Category,
			InvoiceHours:   r.Invoice,
			TimesheetHours: r.Timesheet,
			Difference:     r.Difference,
			Status:         string(r.Status),
			Label:          lang.StatusLabel(r.Status),
		}
	}
	return dtos
}

func toCountsDTO(c generic.StatusCounts) CountsDTO {
	return CountsDTO{
		OK:            c.OK,
		Verschil:      c.Mismatch,
		OnlyFactuur:   c.OnlyInInvoice,
		OnlyKloklijst: c.OnlyInTimesheet,
	}
}
