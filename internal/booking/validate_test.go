package booking

import (
	"errors"
	"testing"

	"timebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		UserSign:   "jdoe",
		Barcode:    "4711-0815",
		EntryStart: "2024-12-05T04:00:00",
		EntryEnd:   "2024-12-05T05:30:00",
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, Validate(validRequest()))
}

func TestValidateMissingFields(t *testing.T) {
	err := Validate(models.BookingRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Details, 4)
	assert.Contains(t, verr.Details, "userSign is required")
	assert.Contains(t, verr.Details, "barcode is required")
	assert.Contains(t, verr.Details, "entryStart is required")
	assert.Contains(t, verr.Details, "entryEnd is required")
}

func TestValidateTimestampPattern(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"space separator", "2024-12-05 04:00:00"},
		{"missing seconds", "2024-12-05T04:00"},
		{"fractional seconds", "2024-12-05T04:00:00.000"},
		{"timezone suffix", "2024-12-05T04:00:00Z"},
		{"garbage", "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.EntryStart = tt.value
			err := Validate(req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Details, "entryStart must match YYYY-MM-DDTHH:mm:ss")
		})
	}
}

func TestValidateImpossibleDate(t *testing.T) {
	req := validRequest()
	req.EntryStart = "2024-13-05T04:00:00"

	err := Validate(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDatetime))
}

func TestValidateOrdering(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		req := validRequest()
		req.EntryStart = "2024-12-05T05:00:00"
		req.EntryEnd = "2024-12-05T04:00:00"
		assert.ErrorIs(t, Validate(req), ErrEntryOrder)
	})

	t.Run("equal timestamps rejected", func(t *testing.T) {
		req := validRequest()
		req.EntryEnd = req.EntryStart
		assert.ErrorIs(t, Validate(req), ErrEntryOrder)
	})
}
