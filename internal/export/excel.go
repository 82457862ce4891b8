// Package export renders bookings into xlsx reports.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

// BookingSource is the slice of the store the exporter needs.
type BookingSource interface {
	ListBookingsBetween(ctx context.Context, start, end time.Time) ([]*models.BookingDetail, error)
}

type Exporter struct {
	source BookingSource
	path   string
}

func NewExporter(source BookingSource, path string) *Exporter {
	return &Exporter{source: source, path: path}
}

// Write renders the report for the period into w.
func (e *Exporter) Write(ctx context.Context, w io.Writer, start, end time.Time) error {
	f, err := e.build(ctx, start, end)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// WriteFile saves the report under the export directory and returns the
// file path.
func (e *Exporter) WriteFile(ctx context.Context, start, end time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f, err := e.build(ctx, start, end)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving workbook: %w", err)
	}
	return filePath, nil
}

func (e *Exporter) build(ctx context.Context, start, end time.Time) (*excelize.File, error) {
	bookings, err := e.source.ListBookingsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("error getting bookings: %w", err)
	}

	f := excelize.NewFile()
	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		start.Format("02.01.2006"), end.Format("02.01.2006")))
	_ = f.MergeCell(sheetName, "A1", "G1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheetName, "A2", "G2", headerStyle)

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.ItemName,
			b.BookerName,
			b.Start.Format("2006-01-02 15:04"),
			b.End.Format("2006-01-02 15:04"),
			b.Status,
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "G", 20)
	_ = f.DeleteSheet("Sheet1")

	return f, nil
}
