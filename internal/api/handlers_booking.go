package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"timebook/internal/booking"
	"timebook/internal/metrics"
	"timebook/internal/models"
)

// handleBooking validates a booking request, renders the transferBooking
// XML and stores it as a flat file.
func (s *HTTPServer) handleBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.BookingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := booking.Validate(req); err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Validation failed",
				"details": verr.Details,
			})
		case errors.Is(err, booking.ErrInvalidDatetime):
			writeError(w, http.StatusBadRequest, "Invalid datetime format")
		case errors.Is(err, booking.ErrEntryOrder):
			writeError(w, http.StatusBadRequest, "entryEnd must be after entryStart")
		default:
			s.internalError(w, r, err, "Failed to process booking")
		}
		return
	}

	xmlContent := booking.RenderXML(req.UserSign, req.Barcode, req.EntryStart, req.EntryEnd)

	info, err := s.bookings.Save(r.Context(), xmlContent)
	if err != nil {
		s.internalError(w, r, err, "Failed to process booking")
		return
	}
	metrics.IncBookingSaved()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Booking XML generated successfully",
		"filename":  info.Filename,
		"filepath":  info.Path,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleFiles lists stored booking documents, newest first.
func (s *HTTPServer) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	files, err := s.bookings.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to list files",
		})
		s.logger.Error().Err(err).Msg("list booking files")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// internalError hides the failure detail from the client; the cause only
// goes to the log.
func (s *HTTPServer) internalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Internal server error",
		"message": message,
	})
}
