package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timebook/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Time Entries"

var columns = []string{"ID", "Work Order", "Date", "Start", "End", "Duration (h)", "Status"}

// Exporter writes time entries into XLSX workbooks under a fixed directory.
type Exporter struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time
}

func New(dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		dir:    dir,
		logger: logger.With().Str("component", "export").Logger(),
		now:    time.Now,
	}
}

// WriteEntries creates a workbook with one row per entry and returns the
// file path.
func (e *Exporter) WriteEntries(entries []models.TimeEntry) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, title := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, title)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for row, entry := range entries {
		values := []any{
			entry.ID,
			entry.WorkOrderNumber,
			entry.Date,
			entry.StartTime,
			entry.EndTime,
			entry.Duration,
			entry.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "G", 18)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("time_entries_%s.xlsx", e.now().Format("20060102_150405"))
	filePath := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("entries", len(entries)).Msg("export written")
	return filePath, nil
}
