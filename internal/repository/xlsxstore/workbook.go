package xlsxstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Every store keeps its data on the first sheet of its workbook.
const sheetName = "Sheet1"

// saveWorkbook writes the workbook next to path and renames it into
// place, so a failed save leaves the previous file readable.
func saveWorkbook(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".invman-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp workbook: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing workbook: %w", err)
	}
	return nil
}

// autoFitColumns sizes every column to its longest cell value plus
// padding, matching how the persisted sheets have always looked.
func autoFitColumns(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}

	widths := map[int]int{}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}

// openWorkbook opens path, returning (nil, nil) when the file does not
// exist so stores can start empty.
func openWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}
