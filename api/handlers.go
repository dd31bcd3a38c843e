/*
handlers.go - HTTP API handlers for the hours validator

PURPOSE:
  Exposes week validation over HTTP. Handles request/response, JSON
  serialization, and delegates to the converter and the validator.

ENDPOINTS:
  GET    /health                                  Liveness
  POST   /upload                                  Upload both workbooks, convert, validate
  POST   /api/weeks/{week}/validate               Validate already converted exports
  GET    /api/weeks/{week}/reports/{granularity}  Download a report (week|day)

REQUEST FLOW:
  1. Parse and validate path parameters
  2. Convert uploaded workbooks (upload only)
  3. Run the validator for the week
  4. Serialize result and email body

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid week, unsupported file, incomplete upload
  - 404: Input export or report not found
  - 409: Week is being validated by another run
  - 500: Internal errors

SECURITY NOTE:
  No authentication. Meant to run behind the intranet proxy.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/warp/hours-validator/convert"
	"github.com/warp/hours-validator/generic"
	"github.com/warp/hours-validator/hours"
)

// DefaultMaxUploadBytes caps the multipart body of POST /upload.
const DefaultMaxUploadBytes = 32 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Validator      *hours.Validator
	Converter      *convert.Converter
	Log            zerolog.Logger
	MaxUploadBytes int64

	validate *validator.Validate
}

// NewHandler creates a new handler.
func NewHandler(v *hours.Validator, c *convert.Converter, log zerolog.Logger) *Handler {
	return &Handler{
		Validator:      v,
		Converter:      c,
		Log:            log,
		MaxUploadBytes: DefaultMaxUploadBytes,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateWeek runs a validation for already converted exports.
// POST /api/weeks/{week}/validate?lang=nl|en
func (h *Handler) ValidateWeek(w http.ResponseWriter, r *http.Request) {
	params := WeekParams{Week: chi.URLParam(r, "week")}
	if err := h.validate.Struct(params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week, expected YYYYww", err)
		return
	}
	lang, err := h.language(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid language", err)
		return
	}

	res, err := h.Validator.Run(r.Context(), params.Week)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		EmailBody: hours.ComposeSummary(res, lang),
		Result:    toResultDTO(res, lang),
	})
}

// DownloadReport streams the weekly or daily report of a week.
// GET /api/weeks/{week}/reports/{granularity}
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	params := ReportParams{
		Week:        chi.URLParam(r, "week"),
		Granularity: chi.URLParam(r, "granularity"),
	}
	if err := h.validate.Struct(params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report request", err)
		return
	}
	week, err := generic.ParseWeekID(params.Week)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week, expected YYYYww", err)
		return
	}
	g, _ := generic.ParseGranularity(params.Granularity)

	path := h.Validator.Paths.For(week).Report(g)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		writeError(w, http.StatusNotFound, "Report not found, validate the week first", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to open report", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to open report", err)
		return
	}

	name := filepath.Base(path)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// =============================================================================
// UPLOAD
// =============================================================================

// Upload stores both workbooks, converts them and validates their week.
// The invoice workbook is recognised by "specificatie" in its file name.
// POST /upload (multipart, field "files")
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Converter == nil {
		writeError(w, http.StatusServiceUnavailable, "Upload is not configured", nil)
		return
	}
	lang, err := h.language(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid language", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes())
	if err := r.ParseMultipartForm(h.maxUploadBytes()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	var factuur, kloklijst string
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "." || name == string(filepath.Separator) {
			writeError(w, http.StatusBadRequest, "Invalid file name", nil)
			return
		}
		if err := h.saveUpload(fh, name); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store upload", err)
			return
		}
		if convert.IsFactuurName(name) {
			factuur = name
		} else {
			kloklijst = name
		}
	}
	if factuur == "" || kloklijst == "" {
		writeError(w, http.StatusBadRequest, "Upload both the factuur and the kloklijst workbook", nil)
		return
	}

	created, err := h.Converter.ConvertInputs(kloklijst, factuur)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	week, ok := weekOf(created)
	if !ok {
		writeError(w, http.StatusBadRequest, "Could not determine the week from the uploaded workbooks", nil)
		return
	}

	res, err := h.Validator.Run(r.Context(), string(week))
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		EmailBody:      hours.ComposeSummary(res, lang),
		ConvertedFiles: created,
		Result:         toResultDTO(res, lang),
	})
}

// saveUpload stores an uploaded workbook in the input directory. The copy
// lands under a temporary name and is renamed into place when complete.
func (h *Handler) saveUpload(fh *multipart.FileHeader, name string) (err error) {
	if err := os.MkdirAll(h.Converter.InputDir, 0o755); err != nil {
		return err
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.CreateTemp(h.Converter.InputDir, ".upload-*.xlsx")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			dst.Close()
			os.Remove(dst.Name())
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return err
	}
	if err = dst.Close(); err != nil {
		return err
	}
	if err = os.Chmod(dst.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(dst.Name(), filepath.Join(h.Converter.InputDir, name))
}

// weekOf returns the week prefix of the first converted file that has one.
func weekOf(files []string) (generic.WeekID, bool) {
	for _, f := range files {
		if week, ok := generic.WeekFromPrefix(filepath.Base(f)); ok {
			return week, true
		}
	}
	return "", false
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) language(r *http.Request) (hours.Language, error) {
	if q := r.URL.Query().Get("lang"); q != "" {
		return hours.ParseLanguage(q)
	}
	return h.Validator.Language, nil
}

func (h *Handler) maxUploadBytes() int64 {
	if h.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return h.MaxUploadBytes
}

// writeRunError maps converter and validator errors to HTTP statuses.
func (h *Handler) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Input file not found", err)
	case generic.IsRetryable(err):
		writeError(w, http.StatusConflict, "Week is already being validated", err)
	default:
		h.Log.Error().Err(err).Msg("validation failed")
		writeError(w, http.StatusInternalServerError, "Validation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
