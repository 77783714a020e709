package pairs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of a workbook as a grid for ImportGrid.
func ReadXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ReadGrid reads a plain CSV grid, or the first sheet of a workbook for any
// other extension.
func ReadGrid(path string) ([][]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Import converts the grid at path into group files under dir. It returns
// the number of pairs read and the files written.
func Import(path, dir, learnLast string) (int, []string, error) {
	rows, err := ReadGrid(path)
	if err != nil {
		return 0, nil, err
	}
	pairs, err := ImportGrid(rows)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", path, err)
	}
	written, err := WriteGroups(dir, SplitGroups(pairs, learnLast))
	if err != nil {
		return 0, nil, err
	}
	return len(pairs), written, nil
}
