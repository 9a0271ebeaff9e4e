package sink

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet used when none is given.
const DefaultSheet = "Results"

// XLSX mirrors the table into the first worksheet of a workbook. The column
// labels occupy row 1 and data rows follow from row 2.
type XLSX struct {
	f     *excelize.File
	sheet string
	next  int
}

// NewXLSX creates an empty workbook with a single sheet.
func NewXLSX(sheet string) (*XLSX, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	return &XLSX{f: f, sheet: sheet, next: 2}, nil
}

// Sheet returns the worksheet name.
func (x *XLSX) Sheet() string { return x.sheet }

func (x *XLSX) SetColumns(labels []string) error {
	return x.setRow(1, labels)
}

func (x *XLSX) ClearRows() error {
	for row := x.next - 1; row >= 2; row-- {
		if err := x.f.RemoveRow(x.sheet, row); err != nil {
			return fmt.Errorf("failed to remove row %d: %w", row, err)
		}
	}
	x.next = 2
	return nil
}

func (x *XLSX) AddRow(values []string) error {
	if err := x.setRow(x.next, values); err != nil {
		return err
	}
	x.next++
	return nil
}

func (x *XLSX) setRow(row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := x.f.SetSheetRow(x.sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// Rows reads the worksheet back.
func (x *XLSX) Rows() ([][]string, error) {
	return x.f.GetRows(x.sheet)
}

// SaveAs writes the workbook to path.
func (x *XLSX) SaveAs(path string) error {
	if err := x.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Write streams the workbook to w.
func (x *XLSX) Write(w io.Writer) error {
	return x.f.Write(w)
}

// Close releases the workbook.
func (x *XLSX) Close() error {
	return x.f.Close()
}
