package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"timebook/internal/entries"
)

// handleEntries serves the collection routes: list with optional filters,
// and create.
func (s *HTTPServer) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := entries.Filter{
			Date:      strings.TrimSpace(r.URL.Query().Get("date")),
			WorkOrder: strings.TrimSpace(r.URL.Query().Get("workOrder")),
		}
		writeJSON(w, http.StatusOK, s.entries.List(r.Context(), filter))

	case http.MethodPost:
		var input entries.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		entry, err := s.entries.Create(r.Context(), input)
		if err != nil {
			s.entryError(w, r, err, "Failed to create time entry")
			return
		}
		writeJSON(w, http.StatusCreated, entry)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleEntryByID serves /api/time-entries/{id}.
func (s *HTTPServer) handleEntryByID(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimPrefix(r.URL.Path, "/api/time-entries/")
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time entry id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := s.entries.Get(r.Context(), id)
		if err != nil {
			s.entryError(w, r, err, "Failed to fetch time entry")
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case http.MethodPut:
		var input entries.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		entry, err := s.entries.Update(r.Context(), id, input)
		if err != nil {
			s.entryError(w, r, err, "Failed to update time entry")
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case http.MethodDelete:
		entry, err := s.entries.Delete(r.Context(), id)
		if err != nil {
			s.entryError(w, r, err, "Failed to delete time entry")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"deletedEntry": entry,
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleScan resolves a scanned barcode to a work order number. There is no
// lookup registry yet, so the barcode passes through unchanged.
func (s *HTTPServer) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Barcode string `json:"barcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Barcode) == "" {
		writeError(w, http.StatusBadRequest, "Barcode is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"workOrderNumber": body.Barcode,
		"success":         true,
	})
}

// handleExport writes the filtered entries to an XLSX workbook and serves
// it as a download.
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter := entries.Filter{
		Date:      strings.TrimSpace(r.URL.Query().Get("date")),
		WorkOrder: strings.TrimSpace(r.URL.Query().Get("workOrder")),
	}

	path, err := s.exporter.WriteEntries(s.entries.List(r.Context(), filter))
	if err != nil {
		s.internalError(w, r, err, "Failed to export time entries")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

// entryError maps store errors onto the HTTP taxonomy: unknown id -> 404,
// missing or malformed fields -> 400, anything else -> 500.
func (s *HTTPServer) entryError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, entries.ErrNotFound):
		writeError(w, http.StatusNotFound, "Time entry not found")
	case errors.Is(err, entries.ErrMissingField), errors.Is(err, entries.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.internalError(w, r, err, message)
	}
}
