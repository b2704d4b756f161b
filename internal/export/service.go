// Package export renders a merged lease record to reviewable artifacts:
// a JSON dump for machines and an XLSX worksheet for the operator.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/reflectall/leasegen/internal/lease"
)

// Service produces export bytes from a merged record.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RecordJSON marshals the record and its diagnostics together, indented
// for human diffing.
func (s *Service) RecordJSON(rec *lease.Record, diags *lease.Diagnostics) ([]byte, error) {
	payload := struct {
		Record      *lease.Record      `json:"record"`
		Diagnostics *lease.Diagnostics `json:"diagnostics"`
	}{rec, diags}
	return json.MarshalIndent(payload, "", "  ")
}

// RecordXLSX returns an XLSX workbook with one row per declared field in
// schema order, plus a second sheet listing the diagnostics. Unset slots
// appear with an empty value so the operator sees what is missing.
func (s *Service) RecordXLSX(rec *lease.Record, diags *lease.Diagnostics) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Lease Data"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, h := range []string{"Field", "Value", "Source"} {
		write(sheet, i+1, 1, h)
	}
	row := 2
	for _, key := range lease.Keys() {
		slot := rec.Slot(key)
		if slot == nil {
			continue
		}
		write(sheet, 1, row, key)
		if slot.Set {
			write(sheet, 2, row, slot.Value)
			write(sheet, 3, row, slot.Source)
		}
		row++
	}
	_ = f.SetColWidth(sheet, "A", "A", 36)
	_ = f.SetColWidth(sheet, "B", "B", 44)
	_ = f.SetColWidth(sheet, "C", "C", 28)

	if diags != nil && len(diags.Items) > 0 {
		const dsheet = "Diagnostics"
		if _, err := f.NewSheet(dsheet); err != nil {
			return nil, err
		}
		for i, h := range []string{"Kind", "Field", "Source", "Message"} {
			write(dsheet, i+1, 1, h)
		}
		for i, d := range diags.Items {
			write(dsheet, 1, i+2, string(d.Kind))
			write(dsheet, 2, i+2, d.Field)
			write(dsheet, 3, i+2, d.Source)
			write(dsheet, 4, i+2, d.Message)
		}
		_ = f.SetColWidth(dsheet, "A", "A", 14)
		_ = f.SetColWidth(dsheet, "B", "B", 36)
		_ = f.SetColWidth(dsheet, "C", "C", 28)
		_ = f.SetColWidth(dsheet, "D", "D", 72)
	}

	// excelize creates "Sheet1" by default; drop it if we didn't use it
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"session_id", sessionOf(diags),
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func sessionOf(diags *lease.Diagnostics) string {
	if diags == nil {
		return ""
	}
	return diags.SessionID
}
