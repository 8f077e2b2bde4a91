package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cell is a single spreadsheet value together with the A1-notation
// coordinate it was read from. Keeping the coordinate around lets the
// engine write an assigned id back to the exact cell later.
type Cell struct {
	Value      string
	Coordinate string
}

// RowData maps field names (sheet labels or column headers) to cells.
type RowData map[string]Cell

func (r RowData) value(field string) string {
	return strings.TrimSpace(r[field].Value)
}

func (r RowData) coordinate(field string) string {
	return r[field].Coordinate
}

// dateLayouts are the formats accepted for date cells, tried in order.
// Excel renders dates differently depending on the locale of the
// machine that exported the file.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06",
	"02/01/2006",
}

func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidRowError{Field: field, Reason: "unrecognized date " + raw}
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, &InvalidRowError{Field: field, Reason: "missing required value"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &InvalidRowError{Field: field, Reason: "not a number: " + raw}
	}
	return d, nil
}

func parseOptionalDecimal(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := parseDecimal(field, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
