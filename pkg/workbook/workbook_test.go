package workbook

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

// fixture writes a minimal two-sheet price-list workbook.
func fixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetGeneral); err != nil {
		t.Fatal(err)
	}
	general := [][]string{
		{models.FieldPriceListID, ""},
		{models.FieldCurrency, "USD"},
		{models.FieldPrecision, "2"},
		{models.FieldProductID, "PRD-1"},
		{models.FieldType, "operations"},
		{models.FieldDefaultMarkup, "10"},
	}
	for i, row := range general {
		f.SetCellValue(SheetGeneral, cell(1, i+1), row[0])
		f.SetCellValue(SheetGeneral, cell(2, i+1), row[1])
	}

	if _, err := f.NewSheet(SheetItems); err != nil {
		t.Fatal(err)
	}
	headers := []string{
		models.ColumnID, models.ColumnItemID, models.ColumnAction,
		models.ColumnUnitLP, models.ColumnUnitPP, models.ColumnMarkup,
	}
	for col, header := range headers {
		f.SetCellValue(SheetItems, cell(col+1, 1), header)
	}
	rows := [][]string{
		{"", "ITM-1", "update", "100", "80", "25"},
		{"PRI-2", "ITM-2", "-", "50", "40", "10"},
	}
	for i, row := range rows {
		for col, value := range row {
			f.SetCellValue(SheetItems, cell(col+1, i+2), value)
		}
	}

	path := filepath.Join(t.TempDir(), "pricelist.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture: %v", err)
	}
	return path
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func TestReadData(t *testing.T) {
	w := New(fixture(t), log.Default())
	defer w.Close()

	data, err := w.ReadData()
	if err != nil {
		t.Fatalf("ReadData failed: %v", err)
	}

	if data[models.FieldCurrency].Value != "USD" {
		t.Errorf("expected currency USD, got %q", data[models.FieldCurrency].Value)
	}
	if data[models.FieldPriceListID].Coordinate != "B1" {
		t.Errorf("expected id coordinate B1, got %q", data[models.FieldPriceListID].Coordinate)
	}
}

func TestReadItems(t *testing.T) {
	w := New(fixture(t), log.Default())
	defer w.Close()

	items, err := w.ReadItems()
	if err != nil {
		t.Fatalf("ReadItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 item rows, got %d", len(items))
	}

	first := items[0]
	if first[models.ColumnItemID].Value != "ITM-1" {
		t.Errorf("expected ITM-1, got %q", first[models.ColumnItemID].Value)
	}
	if first[models.ColumnID].Coordinate != "A2" {
		t.Errorf("expected id coordinate A2, got %q", first[models.ColumnID].Coordinate)
	}
	if items[1][models.ColumnAction].Value != "-" {
		t.Errorf("expected skip action, got %q", items[1][models.ColumnAction].Value)
	}
}

func TestWriteIDPersists(t *testing.T) {
	path := fixture(t)
	w := New(path, log.Default())

	if err := w.WriteID(SheetGeneral, "B1", "PRC-1"); err != nil {
		t.Fatalf("WriteID failed: %v", err)
	}
	w.Close()

	reopened := New(path, log.Default())
	defer reopened.Close()
	data, err := reopened.ReadData()
	if err != nil {
		t.Fatal(err)
	}
	if data[models.FieldPriceListID].Value != "PRC-1" {
		t.Errorf("expected PRC-1 after reopen, got %q", data[models.FieldPriceListID].Value)
	}
}

func TestWriteErrorCreatesColumn(t *testing.T) {
	path := fixture(t)
	w := New(path, log.Default())

	if err := w.WriteError("unit PP missing", "PRI-2"); err != nil {
		t.Fatalf("WriteError failed: %v", err)
	}
	w.Close()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// Error header lands one column right of the last populated header.
	header, _ := f.GetCellValue(SheetItems, "G1")
	if header != models.ColumnError {
		t.Errorf("expected Error header in G1, got %q", header)
	}
	value, _ := f.GetCellValue(SheetItems, "G3")
	if value != "unit PP missing" {
		t.Errorf("expected message on PRI-2's row, got %q", value)
	}
}

func TestWriteErrorReusesColumn(t *testing.T) {
	path := fixture(t)
	w := New(path, log.Default())
	defer w.Close()

	if err := w.WriteError("first", "PRI-2"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteErrorAt("second", "A2"); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	value, _ := f.GetCellValue(SheetItems, "G2")
	if value != "second" {
		t.Errorf("expected second message in existing Error column, got %q", value)
	}
}

func TestWriteErrorUnknownRow(t *testing.T) {
	w := New(fixture(t), log.Default())
	defer w.Close()

	err := w.WriteError("boom", "PRI-404")
	var wbErr *WriteBackError
	if !errors.As(err, &wbErr) {
		t.Fatalf("expected WriteBackError, got %v", err)
	}
	if wbErr.RowID != "PRI-404" {
		t.Errorf("expected row id in error, got %q", wbErr.RowID)
	}
}

func TestExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")

	priceList := &models.PriceList{
		ID:        "PRC-7",
		Currency:  "USD",
		Precision: 2,
		ProductID: "PRD-7",
		Type:      models.RoleOperations,
	}
	out := NewExport(path)
	if err := out.AddGeneral(priceList); err != nil {
		t.Fatal(err)
	}
	item := &models.PriceListItem{ID: "PRI-7", ItemID: "ITM-7"}
	if err := out.Add(item); err != nil {
		t.Fatal(err)
	}
	if err := out.Save(); err != nil {
		t.Fatal(err)
	}

	w := New(path, log.Default())
	defer w.Close()
	data, err := w.ReadData()
	if err != nil {
		t.Fatal(err)
	}
	if data[models.FieldPriceListID].Value != "PRC-7" {
		t.Errorf("expected PRC-7 in export, got %q", data[models.FieldPriceListID].Value)
	}
	items, err := w.ReadItems()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0][models.ColumnItemID].Value != "ITM-7" {
		t.Errorf("unexpected exported items: %v", items)
	}
}
