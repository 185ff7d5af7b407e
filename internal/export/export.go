// Package export serialises entries to CSV and XLSX.
//
// Both formats share one record shape: id, kind, amount, category, note,
// created_at. Kind is written as "expense" or "income", amount in minor units
// and an absent note as an empty string.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ledger/internal/core"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet entries are written to in XLSX output.
const SheetName = "Entries"

// Header is the column order of every export.
var Header = []string{"id", "kind", "amount", "category", "note", "created_at"}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use csv or xlsx)", s)
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName builds a download name such as "ledger_2024-01.csv".
func (f Format) FileName(label string) string {
	if label == "" {
		label = "all"
	}
	return fmt.Sprintf("ledger_%s.%s", label, f)
}

// Record returns the textual columns of e in Header order.
func Record(e core.Entry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Kind.String(),
		strconv.FormatInt(e.Amount, 10),
		e.Category,
		e.NoteText(),
		e.CreatedAt,
	}
}

// Write dispatches to the writer for format.
func Write(w io.Writer, format Format, entries []core.Entry) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatXLSX:
		return WriteXLSX(w, entries)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func WriteCSV(w io.Writer, entries []core.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(Record(e)); err != nil {
			return fmt.Errorf("write csv entry %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook. Id and amount are numeric cells
// so spreadsheet formulas work on them directly.
func WriteXLSX(w io.Writer, entries []core.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.ID, e.Kind.String(), e.Amount, e.Category, e.NoteText(), e.CreatedAt}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx entry %d: %w", e.ID, err)
		}
	}

	f.SetColWidth(SheetName, "A", "A", 8)
	f.SetColWidth(SheetName, "B", "B", 10)
	f.SetColWidth(SheetName, "C", "C", 12)
	f.SetColWidth(SheetName, "D", "D", 18)
	f.SetColWidth(SheetName, "E", "E", 30)
	f.SetColWidth(SheetName, "F", "F", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
