/*
handlers.go - HTTP API handlers for the budget tracker

PURPOSE:
  Exposes the reconciliation controller via REST. Handles HTTP
  request/response and JSON serialization, and delegates every state
  change to the tracker - handlers never own entry state.

ENDPOINTS:
  Period:
    GET    /api/period                     Select period (date+type query)
    GET    /api/period/state               Current state
    PUT    /api/period/budget              Set budget
    PUT    /api/period/currency            Set currency
    PUT    /api/period/note                Set note

  Entries:
    POST   /api/period/entries             Append entry
    PUT    /api/period/entries/{index}     Update in place
    DELETE /api/period/entries/{index}     Remove by position
    DELETE /api/period/entries             Clear period

  Transfer:
    GET    /api/period/export              Download CSV
    POST   /api/period/import              Replace entries from CSV body

  Scenarios:
    GET    /api/scenarios                  List demo scenarios
    POST   /api/scenarios/load             Seed a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid request body or parameters
  - 404: positional entry reference out of range
  - 409: mutation before a period was selected
  A failed persistence write is NOT an error status: the operation
  succeeds with save_failed=true in the returned state.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - tracker/tracker.go: The controller behind every handler
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/alanrss/budget"
	"github.com/alanrss/budget/period"
	"github.com/alanrss/budget/tracker"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tracker *tracker.Tracker
	Log     zerolog.Logger
}

// NewHandler creates a handler around the given tracker.
func NewHandler(t *tracker.Tracker, log zerolog.Logger) *Handler {
	return &Handler{Tracker: t, Log: log}
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// SelectPeriod activates the period containing ?date for ?type and returns
// its full state. Missing date defaults to today; missing type to week.
func (h *Handler) SelectPeriod(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		date = parsed
	}
	typ := period.ParseType(r.URL.Query().Get("type"))

	st, err := h.Tracker.SelectPeriod(r.Context(), date, typ)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to select period", err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// GetState returns the current state without mutating anything.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	st, err := h.Tracker.State()
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// SetBudget updates the active period's budget.
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	st, err := h.Tracker.SetBudget(r.Context(), budget.ParseAmount(req.Budget))
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// SetCurrency updates the active period's currency.
func (h *Handler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req SetCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	st, err := h.Tracker.SetCurrency(r.Context(), req.Currency)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// SetNote updates the active period's note.
func (h *Handler) SetNote(w http.ResponseWriter, r *http.Request) {
	var req SetNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	st, err := h.Tracker.SetNote(r.Context(), req.Note)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// AppendEntry adds a row to the active ledger.
func (h *Handler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	st, err := h.Tracker.AppendEntry(r.Context(), req.toEntry())
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStateDTO(st))
}

// UpdateEntry applies a partial update to the row at {index}.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry index", err)
		return
	}
	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	st, err := h.Tracker.UpdateEntry(r.Context(), index, req.toPatch())
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// RemoveEntry deletes the row at {index}.
func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry index", err)
		return
	}
	st, err := h.Tracker.RemoveEntry(r.Context(), index)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// ClearPeriod removes every row and persists a zero-entry record.
func (h *Handler) ClearPeriod(w http.ResponseWriter, r *http.Request) {
	st, err := h.Tracker.ClearPeriod(r.Context())
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// =============================================================================
// TRANSFER HANDLERS
// =============================================================================

// ExportCSV streams the active entries as a CSV attachment named after the
// period key.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filename, text, err := h.Tracker.ExportCSV()
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

// ImportCSV replaces the active entries from a CSV request body.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}
	st, err := h.Tracker.ImportCSV(r.Context(), string(body))
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

// =============================================================================
// HELPERS
// =============================================================================

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

// writeTrackerError maps tracker/domain errors onto HTTP statuses.
func writeTrackerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrNoActivePeriod):
		writeError(w, http.StatusConflict, "No active period selected", err)
	case errors.Is(err, budget.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, "Entry index out of range", err)
	default:
		writeError(w, http.StatusInternalServerError, "Operation failed", err)
	}
}
