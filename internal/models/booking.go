package models

import "time"

// BookingRequest is a single work-order time transfer destined for the
// external time-booking system. Timestamps are kept as strings because the
// target XML schema requires the exact `YYYY-MM-DDTHH:mm:ss` form, without
// timezone or fractional seconds.
type BookingRequest struct {
	UserSign   string `json:"userSign"`
	Barcode    string `json:"barcode"`
	EntryStart string `json:"entryStart"`
	EntryEnd   string `json:"entryEnd"`
}

// FileInfo describes one stored booking document.
type FileInfo struct {
	Filename string    `json:"filename"`
	Path     string    `json:"filepath,omitempty"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}
