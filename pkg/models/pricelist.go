package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the tenant classification of the account that owns a price
// list. Operations accounts carry markups, vendor accounts carry their
// own external id.
type Role string

const (
	RoleOperations Role = "operations"
	RoleVendor     Role = "vendor"
)

// General sheet labels. The sheet is a vertical label/value table with
// one price list per file.
const (
	FieldPriceListID   = "Price List ID"
	FieldCurrency      = "Currency"
	FieldPrecision     = "Precision"
	FieldNotes         = "Notes"
	FieldProductID     = "Product ID"
	FieldProductName   = "Product Name"
	FieldVendorID      = "Vendor ID"
	FieldVendorName    = "Vendor Name"
	FieldExportDate    = "Export Date"
	FieldDefaultMarkup = "Default Markup"
	FieldExternalID    = "External ID"
	FieldType          = "Type"
	FieldCreated       = "Created"
	FieldModified      = "Modified"
)

// GeneralFields is the label order used when materializing a fresh
// General sheet on export.
var GeneralFields = []string{
	FieldPriceListID,
	FieldCurrency,
	FieldProductID,
	FieldProductName,
	FieldVendorID,
	FieldVendorName,
	FieldExportDate,
	FieldPrecision,
	FieldDefaultMarkup,
	FieldExternalID,
	FieldNotes,
	FieldType,
	FieldCreated,
	FieldModified,
}

// PriceList is the parent record scoping a set of priced items for one
// product in one currency.
type PriceList struct {
	ID            string
	Currency      string
	Precision     int
	Notes         string
	ProductID     string
	ProductName   string
	VendorID      string
	VendorName    string
	ExportDate    time.Time
	DefaultMarkup *decimal.Decimal // operations only
	ExternalID    string           // vendor only
	Type          Role
	Coordinate    string // cell holding the id in the General sheet
	CreatedDate   time.Time
	UpdatedDate   time.Time
}

// PriceListJSON is the remote wire representation of a price list.
type PriceListJSON struct {
	ID            string           `json:"id,omitempty"`
	Currency      string           `json:"currency"`
	Precision     int              `json:"precision"`
	Notes         string           `json:"notes,omitempty"`
	Product       ReferenceJSON    `json:"product"`
	Vendor        ReferenceJSON    `json:"vendor"`
	DefaultMarkup *decimal.Decimal `json:"defaultMarkup,omitempty"`
	ExternalIDs   ExternalIDsJSON  `json:"externalIds,omitempty"`
	Audit         AuditJSON        `json:"audit"`
}

// ReferenceJSON is a nested id/name reference to another record.
type ReferenceJSON struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ExternalIDsJSON carries the per-tenant external identifiers.
type ExternalIDsJSON struct {
	Vendor     string `json:"vendor,omitempty"`
	Operations string `json:"operations,omitempty"`
}

// AuditJSON records creation and last update events on a remote record.
type AuditJSON struct {
	Created AuditEventJSON `json:"created"`
	Updated AuditEventJSON `json:"updated"`
}

type AuditEventJSON struct {
	At time.Time `json:"at"`
	By string    `json:"by,omitempty"`
}

// IsOperations reports whether the price list belongs to an operations
// account.
func (p *PriceList) IsOperations() bool { return p.Type == RoleOperations }

// IsVendor reports whether the price list belongs to a vendor account.
func (p *PriceList) IsVendor() bool { return p.Type == RoleVendor }

// PriceListFromRow builds a PriceList from the General sheet cells.
func PriceListFromRow(row RowData) (*PriceList, error) {
	p := &PriceList{
		ID:          row.value(FieldPriceListID),
		Currency:    row.value(FieldCurrency),
		Notes:       row.value(FieldNotes),
		ProductID:   row.value(FieldProductID),
		ProductName: row.value(FieldProductName),
		VendorID:    row.value(FieldVendorID),
		VendorName:  row.value(FieldVendorName),
		ExternalID:  row.value(FieldExternalID),
		Type:        Role(row.value(FieldType)),
		Coordinate:  row.coordinate(FieldPriceListID),
	}

	if raw := row.value(FieldPrecision); raw != "" {
		d, err := parseDecimal(FieldPrecision, raw)
		if err != nil {
			return nil, err
		}
		if !d.IsInteger() || d.IsNegative() {
			return nil, &InvalidRowError{Field: FieldPrecision, Reason: "must be a non-negative integer"}
		}
		p.Precision = int(d.IntPart())
	}

	markup, err := parseOptionalDecimal(FieldDefaultMarkup, row.value(FieldDefaultMarkup))
	if err != nil {
		return nil, err
	}
	p.DefaultMarkup = markup

	if p.ExportDate, err = parseDate(FieldExportDate, row.value(FieldExportDate)); err != nil {
		return nil, err
	}
	if p.CreatedDate, err = parseDate(FieldCreated, row.value(FieldCreated)); err != nil {
		return nil, err
	}
	if p.UpdatedDate, err = parseDate(FieldModified, row.value(FieldModified)); err != nil {
		return nil, err
	}

	switch p.Type {
	case RoleOperations, RoleVendor, "":
	default:
		return nil, &InvalidRowError{Field: FieldType, Reason: "must be operations or vendor"}
	}

	return p, nil
}

// PriceListFromJSON builds a PriceList from the remote wire format.
func PriceListFromJSON(j *PriceListJSON) *PriceList {
	p := &PriceList{
		ID:            j.ID,
		Currency:      j.Currency,
		Precision:     j.Precision,
		Notes:         j.Notes,
		ProductID:     j.Product.ID,
		ProductName:   j.Product.Name,
		VendorID:      j.Vendor.ID,
		VendorName:    j.Vendor.Name,
		DefaultMarkup: j.DefaultMarkup,
		ExternalID:    j.ExternalIDs.Vendor,
		CreatedDate:   j.Audit.Created.At,
		UpdatedDate:   j.Audit.Updated.At,
	}
	if j.ExternalIDs.Vendor != "" {
		p.Type = RoleVendor
	} else {
		p.Type = RoleOperations
	}
	return p
}

// ToJSON emits the fields the remote accepts for create and update.
// Operations emits defaultMarkup, vendor emits its external id.
func (p *PriceList) ToJSON() map[string]any {
	payload := map[string]any{
		"currency":  p.Currency,
		"precision": p.Precision,
		"product":   map[string]any{"id": p.ProductID},
	}
	if p.Notes != "" {
		payload["notes"] = p.Notes
	}
	if p.IsVendor() {
		if p.ExternalID != "" {
			payload["externalIds"] = map[string]any{"vendor": p.ExternalID}
		}
	} else if p.DefaultMarkup != nil {
		payload["defaultMarkup"] = p.DefaultMarkup
	}
	return payload
}

// ToRow projects the price list back into General sheet label/value
// pairs for a full export.
func (p *PriceList) ToRow() map[string]string {
	row := map[string]string{
		FieldPriceListID: p.ID,
		FieldCurrency:    p.Currency,
		FieldPrecision:   decimal.NewFromInt(int64(p.Precision)).String(),
		FieldNotes:       p.Notes,
		FieldProductID:   p.ProductID,
		FieldProductName: p.ProductName,
		FieldVendorID:    p.VendorID,
		FieldVendorName:  p.VendorName,
		FieldExternalID:  p.ExternalID,
		FieldType:        string(p.Type),
		FieldExportDate:  formatDate(p.ExportDate),
		FieldCreated:     formatDate(p.CreatedDate),
		FieldModified:    formatDate(p.UpdatedDate),
	}
	if p.DefaultMarkup != nil {
		row[FieldDefaultMarkup] = p.DefaultMarkup.String()
	}
	return row
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
