// Package workbook gives the sync engine cell-addressed access to a
// price-list workbook. The file is treated as a small database: it is
// opened lazily, mutated in place, and saved after every write so a
// crash always leaves the most recent write-back on disk.
package workbook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

const (
	SheetGeneral = "General"
	SheetItems   = "Price Items"
)

// WriteBackError marks a failed spreadsheet write-back. It is
// non-fatal: the remote mutation already happened and the run goes on.
type WriteBackError struct {
	Path  string
	RowID string
	Cause string
}

func (e *WriteBackError) Error() string {
	return fmt.Sprintf("write-back failed for %s (row %q): %s", e.Path, e.RowID, e.Cause)
}

// PriceListFile is a two-sheet price-list workbook on disk.
type PriceListFile struct {
	path   string
	f      *excelize.File
	logger *log.Logger
}

func New(path string, logger *log.Logger) *PriceListFile {
	return &PriceListFile{path: path, logger: logger}
}

func (w *PriceListFile) Path() string { return w.path }

func (w *PriceListFile) open() (*excelize.File, error) {
	if w.f != nil {
		return w.f, nil
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}
	w.f = f
	return f, nil
}

// Close releases the underlying file handle. Writes are already
// flushed by the time Close runs.
func (w *PriceListFile) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// ReadData reads the vertical General sheet into field/cell pairs.
// Column A holds the label, column B the value.
func (w *PriceListFile) ReadData() (models.RowData, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(SheetGeneral)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", SheetGeneral, err)
	}

	data := models.RowData{}
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		coord, _ := excelize.CoordinatesToCellName(2, i+1)
		data[strings.TrimSpace(row[0])] = models.Cell{Value: value, Coordinate: coord}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("sheet %s of %s is empty", SheetGeneral, w.path)
	}
	return data, nil
}

// ReadItems reads the horizontal Price Items sheet, one field/cell map
// per data row. The header row is row 1; iteration is in sheet order.
func (w *PriceListFile) ReadItems() ([]models.RowData, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(SheetItems)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", SheetItems, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %s of %s has no header row", SheetItems, w.path)
	}

	headers := rows[0]
	var items []models.RowData
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isEmptyRow(row) {
			continue
		}
		data := models.RowData{}
		for col, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" {
				continue
			}
			value := ""
			if col < len(row) {
				value = row[col]
			}
			coord, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			data[header] = models.Cell{Value: value, Coordinate: coord}
		}
		items = append(items, data)
	}
	return items, nil
}

// WriteID overwrites the single cell holding a record's id and flushes
// the workbook so a crash preserves the assignment.
func (w *PriceListFile) WriteID(sheet, coordinate, id string) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, coordinate, id); err != nil {
		return &WriteBackError{Path: w.path, Cause: err.Error()}
	}
	return w.save()
}

// WriteError places a message in the Error column of the item row
// whose ID cell matches rowID. The column is created at the next free
// column letter on first use.
func (w *PriceListFile) WriteError(message, rowID string) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	rows, err := f.GetRows(SheetItems)
	if err != nil || len(rows) == 0 {
		return &WriteBackError{Path: w.path, RowID: rowID, Cause: "missing header row"}
	}

	errCol, err := w.errorColumn(rows[0])
	if err != nil {
		return err
	}

	idCol := headerIndex(rows[0], models.ColumnID)
	if idCol < 0 {
		return &WriteBackError{Path: w.path, RowID: rowID, Cause: "no ID column"}
	}
	for i, row := range rows[1:] {
		if idCol < len(row) && strings.TrimSpace(row[idCol]) == rowID && rowID != "" {
			coord, _ := excelize.CoordinatesToCellName(errCol, i+2)
			if err := f.SetCellValue(SheetItems, coord, message); err != nil {
				return &WriteBackError{Path: w.path, RowID: rowID, Cause: err.Error()}
			}
			return w.save()
		}
	}
	return &WriteBackError{Path: w.path, RowID: rowID, Cause: "row not found"}
}

// WriteErrorAt places a message in the Error column on the row of the
// given ID cell coordinate. Used for rows that have no remote id yet.
func (w *PriceListFile) WriteErrorAt(message, coordinate string) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	rows, err := f.GetRows(SheetItems)
	if err != nil || len(rows) == 0 {
		return &WriteBackError{Path: w.path, Cause: "missing header row"}
	}
	errCol, err := w.errorColumn(rows[0])
	if err != nil {
		return err
	}
	_, rowNum, err := excelize.CellNameToCoordinates(coordinate)
	if err != nil {
		return &WriteBackError{Path: w.path, Cause: "bad coordinate " + coordinate}
	}
	coord, _ := excelize.CoordinatesToCellName(errCol, rowNum)
	if err := f.SetCellValue(SheetItems, coord, message); err != nil {
		return &WriteBackError{Path: w.path, Cause: err.Error()}
	}
	return w.save()
}

// WriteGeneralError records a parent-level failure next to the value
// column of the Price List ID row in the General sheet.
func (w *PriceListFile) WriteGeneralError(message string) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	rows, err := f.GetRows(SheetGeneral)
	if err != nil {
		return &WriteBackError{Path: w.path, Cause: err.Error()}
	}
	for i, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == models.FieldPriceListID {
			coord, _ := excelize.CoordinatesToCellName(3, i+1)
			if err := f.SetCellValue(SheetGeneral, coord, message); err != nil {
				return &WriteBackError{Path: w.path, Cause: err.Error()}
			}
			return w.save()
		}
	}
	return &WriteBackError{Path: w.path, Cause: "no " + models.FieldPriceListID + " row"}
}

// errorColumn returns the 1-based column of the Error header, creating
// the header at the next free column when it does not exist yet.
func (w *PriceListFile) errorColumn(headers []string) (int, error) {
	if col := headerIndex(headers, models.ColumnError); col >= 0 {
		return col + 1, nil
	}
	col := nextFreeColumn(headers)
	coord, _ := excelize.CoordinatesToCellName(col, 1)
	if err := w.f.SetCellValue(SheetItems, coord, models.ColumnError); err != nil {
		return 0, &WriteBackError{Path: w.path, Cause: err.Error()}
	}
	return col, nil
}

func (w *PriceListFile) save() error {
	if err := w.f.Save(); err != nil {
		return &WriteBackError{Path: w.path, Cause: err.Error()}
	}
	return nil
}

func headerIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// nextFreeColumn returns the 1-based column immediately to the right
// of the last populated header cell.
func nextFreeColumn(headers []string) int {
	last := 0
	for i, h := range headers {
		if strings.TrimSpace(h) != "" {
			last = i + 1
		}
	}
	return last + 1
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
