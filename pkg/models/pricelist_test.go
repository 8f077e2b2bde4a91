package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func generalRow(overrides map[string]string) RowData {
	values := map[string]string{
		FieldPriceListID:   "",
		FieldCurrency:      "USD",
		FieldPrecision:     "2",
		FieldProductID:     "PRD-1",
		FieldProductName:   "Acme Suite",
		FieldVendorID:      "VEN-1",
		FieldVendorName:    "Acme Inc",
		FieldDefaultMarkup: "10",
		FieldType:          "operations",
	}
	for k, v := range overrides {
		values[k] = v
	}
	row := RowData{}
	i := 1
	for field, value := range values {
		row[field] = Cell{Value: value, Coordinate: "B" + string(rune('0'+i%10))}
		i++
	}
	row[FieldPriceListID] = Cell{Value: values[FieldPriceListID], Coordinate: "B1"}
	return row
}

func TestPriceListFromRow(t *testing.T) {
	p, err := PriceListFromRow(generalRow(nil))
	if err != nil {
		t.Fatalf("PriceListFromRow failed: %v", err)
	}

	if p.Currency != "USD" {
		t.Errorf("expected currency USD, got %q", p.Currency)
	}
	if p.Precision != 2 {
		t.Errorf("expected precision 2, got %d", p.Precision)
	}
	if p.ProductID != "PRD-1" {
		t.Errorf("expected product PRD-1, got %q", p.ProductID)
	}
	if p.Coordinate != "B1" {
		t.Errorf("expected id coordinate B1, got %q", p.Coordinate)
	}
	if p.DefaultMarkup == nil || !p.DefaultMarkup.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected default markup 10, got %v", p.DefaultMarkup)
	}
	if !p.IsOperations() {
		t.Errorf("expected operations role, got %q", p.Type)
	}
}

func TestPriceListFromRowRejectsNegativePrecision(t *testing.T) {
	_, err := PriceListFromRow(generalRow(map[string]string{FieldPrecision: "-1"}))
	if err == nil {
		t.Fatal("expected error for negative precision")
	}
	var invalid *InvalidRowError
	if !errors.As(err, &invalid) || invalid.Field != FieldPrecision {
		t.Errorf("expected InvalidRowError on %s, got %v", FieldPrecision, err)
	}
}

func TestPriceListFromRowRejectsUnknownType(t *testing.T) {
	_, err := PriceListFromRow(generalRow(map[string]string{FieldType: "reseller"}))
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestPriceListToJSONOperations(t *testing.T) {
	markup := decimal.NewFromInt(10)
	p := &PriceList{
		Currency:      "USD",
		Precision:     2,
		ProductID:     "PRD-1",
		DefaultMarkup: &markup,
		ExternalID:    "ignored-for-operations",
		Type:          RoleOperations,
	}

	payload := p.ToJSON()
	if _, ok := payload["defaultMarkup"]; !ok {
		t.Error("expected defaultMarkup in operations payload")
	}
	if _, ok := payload["externalIds"]; ok {
		t.Error("externalIds must not be emitted for operations")
	}
	product, ok := payload["product"].(map[string]any)
	if !ok || product["id"] != "PRD-1" {
		t.Errorf("expected product.id PRD-1, got %v", payload["product"])
	}
}

func TestPriceListToJSONVendor(t *testing.T) {
	markup := decimal.NewFromInt(10)
	p := &PriceList{
		Currency:      "EUR",
		ProductID:     "PRD-2",
		DefaultMarkup: &markup,
		ExternalID:    "ACME-42",
		Type:          RoleVendor,
	}

	payload := p.ToJSON()
	if _, ok := payload["defaultMarkup"]; ok {
		t.Error("defaultMarkup must not be emitted for vendor")
	}
	external, ok := payload["externalIds"].(map[string]any)
	if !ok || external["vendor"] != "ACME-42" {
		t.Errorf("expected externalIds.vendor ACME-42, got %v", payload["externalIds"])
	}
}

func TestPriceListJSONRoundTrip(t *testing.T) {
	j := &PriceListJSON{
		ID:        "PRC-1",
		Currency:  "USD",
		Precision: 2,
		Notes:     "spring pricing",
		Product:   ReferenceJSON{ID: "PRD-1", Name: "Acme Suite"},
		Vendor:    ReferenceJSON{ID: "VEN-1", Name: "Acme Inc"},
	}
	markup := decimal.NewFromInt(10)
	j.DefaultMarkup = &markup

	p := PriceListFromJSON(j)
	row := p.ToRow()
	back, err := PriceListFromRow(rowDataFrom(row))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	if back.ID != p.ID || back.Currency != p.Currency || back.Precision != p.Precision {
		t.Errorf("round trip mismatch: %+v vs %+v", back, p)
	}
	if back.ProductID != "PRD-1" || back.VendorID != "VEN-1" {
		t.Errorf("round trip lost references: %+v", back)
	}
}

func rowDataFrom(values map[string]string) RowData {
	row := RowData{}
	for field, value := range values {
		row[field] = Cell{Value: value}
	}
	return row
}
