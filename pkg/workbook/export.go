package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

// ExportFile materializes a fresh two-sheet price-list workbook from
// remote state.
type ExportFile struct {
	path    string
	f       *excelize.File
	itemRow int
}

func NewExport(path string) *ExportFile {
	return &ExportFile{path: path, f: excelize.NewFile()}
}

// CreateTab adds a named sheet. The first tab created replaces the
// default sheet excelize opens with.
func (e *ExportFile) CreateTab(name string) error {
	sheets := e.f.GetSheetList()
	if len(sheets) == 1 && sheets[0] == "Sheet1" {
		return e.f.SetSheetName("Sheet1", name)
	}
	_, err := e.f.NewSheet(name)
	return err
}

// AddGeneral writes the vertical General sheet for the price list.
func (e *ExportFile) AddGeneral(p *models.PriceList) error {
	if err := e.CreateTab(SheetGeneral); err != nil {
		return err
	}
	row := p.ToRow()
	for i, field := range models.GeneralFields {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := e.f.SetCellValue(SheetGeneral, label, field); err != nil {
			return err
		}
		if err := e.f.SetCellValue(SheetGeneral, value, row[field]); err != nil {
			return err
		}
	}
	return nil
}

// StartItems creates the Price Items sheet and writes its header row.
// It is idempotent so Add can call it lazily.
func (e *ExportFile) StartItems() error {
	if e.itemRow != 0 {
		return nil
	}
	if err := e.CreateTab(SheetItems); err != nil {
		return err
	}
	for col, header := range models.ItemColumns {
		coord, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := e.f.SetCellValue(SheetItems, coord, header); err != nil {
			return err
		}
	}
	e.itemRow = 1
	return nil
}

// Add appends one item row to the Price Items sheet.
func (e *ExportFile) Add(it *models.PriceListItem) error {
	if err := e.StartItems(); err != nil {
		return err
	}
	e.itemRow++
	row := it.ToRow()
	for col, header := range models.ItemColumns {
		coord, _ := excelize.CoordinatesToCellName(col+1, e.itemRow)
		if err := e.f.SetCellValue(SheetItems, coord, row[header]); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to disk and closes it.
func (e *ExportFile) Save() error {
	defer e.f.Close()
	if err := e.f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save export %s: %w", e.path, err)
	}
	return nil
}
