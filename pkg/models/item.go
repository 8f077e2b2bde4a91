package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the sale state of a price list item.
type ItemStatus string

const (
	StatusDraft   ItemStatus = "Draft"
	StatusForSale ItemStatus = "ForSale"
	StatusPrivate ItemStatus = "Private"
)

// Action is the per-row intent declared in the spreadsheet. A blank or
// "-" action leaves the row untouched; only "update" drives a write.
type Action string

const (
	ActionEmpty  Action = ""
	ActionSkip   Action = "-"
	ActionUpdate Action = "update"
)

// Skips reports whether the declared action excludes the row from the
// sync run.
func (a Action) Skips() bool { return a == ActionEmpty || a == ActionSkip }

// Price Items sheet column headers, in sheet order. The Error column
// is not listed; it is created on demand on first write-back.
const (
	ColumnID               = "ID"
	ColumnItemID           = "Item ID"
	ColumnItemName         = "Item Name"
	ColumnVendorItemID     = "Vendor Item ID"
	ColumnERPID            = "ERP ID"
	ColumnBillingFrequency = "Billing Frequency"
	ColumnCommitment       = "Commitment"
	ColumnAction           = "Action"
	ColumnUnitLP           = "Unit LP"
	ColumnUnitPP           = "Unit PP"
	ColumnMarkup           = "Markup"
	ColumnUnitSP           = "Unit SP"
	ColumnStatus           = "Status"
	ColumnModified         = "Modified"
	ColumnError            = "Error"
)

// ItemColumns is the header row written on export, including the
// derived cross-period price columns.
var ItemColumns = []string{
	ColumnID,
	ColumnItemID,
	ColumnItemName,
	ColumnVendorItemID,
	ColumnERPID,
	ColumnBillingFrequency,
	ColumnCommitment,
	ColumnAction,
	ColumnUnitLP,
	ColumnUnitPP,
	ColumnMarkup,
	"PPx1", "PPxM", "PPxY",
	ColumnUnitSP,
	"SPx1", "SPxM", "SPxY",
	"LPx1", "LPxM", "LPxY",
	ColumnStatus,
	ColumnModified,
}

// PriceListItem is a child record carrying prices for one catalog item
// under a price list. Items are never created by this tool; they exist
// remotely as a consequence of the parent's product template.
type PriceListItem struct {
	ID               string
	ItemID           string
	ItemName         string
	VendorItemID     string
	ERPID            string
	BillingFrequency string
	Commitment       string
	Status           ItemStatus
	UnitLP           decimal.Decimal
	UnitPP           decimal.Decimal
	UnitSP           *decimal.Decimal // operations only
	Markup           *decimal.Decimal // operations only
	Derived          map[string]decimal.Decimal
	Action           Action
	ModifiedDate     time.Time
	Coordinate       string // cell holding the id in the Price Items sheet
}

// derivedColumns are read-only cross-period values computed remotely.
var derivedColumns = []string{
	"PPx1", "PPxM", "PPxY",
	"SPx1", "SPxM", "SPxY",
	"LPx1", "LPxM", "LPxY",
}

// PriceListItemJSON is the remote wire representation of an item.
type PriceListItemJSON struct {
	ID   string `json:"id,omitempty"`
	Item struct {
		ID          string          `json:"id"`
		Name        string          `json:"name,omitempty"`
		ExternalIDs ExternalIDsJSON `json:"externalIds,omitempty"`
	} `json:"item"`
	Terms struct {
		Period     string `json:"period,omitempty"`
		Commitment string `json:"commitment,omitempty"`
	} `json:"terms"`
	Status ItemStatus       `json:"status,omitempty"`
	UnitLP *decimal.Decimal `json:"unitLP,omitempty"`
	UnitPP *decimal.Decimal `json:"unitPP,omitempty"`
	UnitSP *decimal.Decimal `json:"unitSP,omitempty"`
	Markup *decimal.Decimal `json:"markup,omitempty"`
	LPx1   *decimal.Decimal `json:"LPx1,omitempty"`
	LPxM   *decimal.Decimal `json:"LPxM,omitempty"`
	LPxY   *decimal.Decimal `json:"LPxY,omitempty"`
	PPx1   *decimal.Decimal `json:"PPx1,omitempty"`
	PPxM   *decimal.Decimal `json:"PPxM,omitempty"`
	PPxY   *decimal.Decimal `json:"PPxY,omitempty"`
	SPx1   *decimal.Decimal `json:"SPx1,omitempty"`
	SPxM   *decimal.Decimal `json:"SPxM,omitempty"`
	SPxY   *decimal.Decimal `json:"SPxY,omitempty"`
	Audit  AuditJSON        `json:"audit"`
}

// ItemFromRow builds a PriceListItem from one Price Items sheet row.
// Price cells are only required on rows whose action drives a write.
func ItemFromRow(row RowData) (*PriceListItem, error) {
	it := &PriceListItem{
		ID:               row.value(ColumnID),
		ItemID:           row.value(ColumnItemID),
		ItemName:         row.value(ColumnItemName),
		VendorItemID:     row.value(ColumnVendorItemID),
		ERPID:            row.value(ColumnERPID),
		BillingFrequency: row.value(ColumnBillingFrequency),
		Commitment:       row.value(ColumnCommitment),
		Status:           ItemStatus(row.value(ColumnStatus)),
		Action:           Action(row.value(ColumnAction)),
		Coordinate:       row.coordinate(ColumnID),
	}

	var err error
	if it.ModifiedDate, err = parseDate(ColumnModified, row.value(ColumnModified)); err != nil {
		return it, err
	}

	if it.Action.Skips() {
		return it, nil
	}
	if it.Action != ActionUpdate {
		return it, &InvalidRowError{Field: ColumnAction, Reason: "unknown action " + string(it.Action)}
	}

	if it.ItemID == "" {
		return it, &InvalidRowError{Field: ColumnItemID, Reason: "missing required value"}
	}
	if it.UnitLP, err = parseDecimal(ColumnUnitLP, row.value(ColumnUnitLP)); err != nil {
		return it, err
	}
	if it.UnitPP, err = parseDecimal(ColumnUnitPP, row.value(ColumnUnitPP)); err != nil {
		return it, err
	}
	if it.UnitSP, err = parseOptionalDecimal(ColumnUnitSP, row.value(ColumnUnitSP)); err != nil {
		return it, err
	}
	if it.Markup, err = parseOptionalDecimal(ColumnMarkup, row.value(ColumnMarkup)); err != nil {
		return it, err
	}

	switch it.Status {
	case StatusDraft, StatusForSale, StatusPrivate, "":
	default:
		return it, &InvalidRowError{Field: ColumnStatus, Reason: "unknown status " + string(it.Status)}
	}

	return it, nil
}

// ItemFromJSON builds a PriceListItem from the remote wire format.
func ItemFromJSON(j *PriceListItemJSON) *PriceListItem {
	it := &PriceListItem{
		ID:               j.ID,
		ItemID:           j.Item.ID,
		ItemName:         j.Item.Name,
		VendorItemID:     j.Item.ExternalIDs.Vendor,
		ERPID:            j.Item.ExternalIDs.Operations,
		BillingFrequency: j.Terms.Period,
		Commitment:       j.Terms.Commitment,
		Status:           j.Status,
		UnitSP:           j.UnitSP,
		Markup:           j.Markup,
		Action:           ActionSkip,
		ModifiedDate:     j.Audit.Updated.At,
		Derived:          map[string]decimal.Decimal{},
	}
	if j.UnitLP != nil {
		it.UnitLP = *j.UnitLP
	}
	if j.UnitPP != nil {
		it.UnitPP = *j.UnitPP
	}
	for col, v := range map[string]*decimal.Decimal{
		"LPx1": j.LPx1, "LPxM": j.LPxM, "LPxY": j.LPxY,
		"PPx1": j.PPx1, "PPxM": j.PPxM, "PPxY": j.PPxY,
		"SPx1": j.SPx1, "SPxM": j.SPxM, "SPxY": j.SPxY,
	} {
		if v != nil {
			it.Derived[col] = *v
		}
	}
	return it
}

// ToJSON emits the update payload for the given role. Status is only
// emitted for vendors, or for operations when the item left Draft.
// UnitSP and markup are operations-only fields.
func (it *PriceListItem) ToJSON(role Role) map[string]any {
	payload := map[string]any{
		"unitLP": it.UnitLP,
		"unitPP": it.UnitPP,
	}
	if role == RoleVendor {
		if it.Status != "" {
			payload["status"] = it.Status
		}
		return payload
	}
	if it.Markup != nil {
		payload["markup"] = it.Markup
	}
	if it.UnitSP != nil {
		payload["unitSP"] = it.UnitSP
	}
	if it.Status != "" && it.Status != StatusDraft {
		payload["status"] = it.Status
	}
	return payload
}

// ToRow projects the item into header/value pairs for a full export.
func (it *PriceListItem) ToRow() map[string]string {
	row := map[string]string{
		ColumnID:               it.ID,
		ColumnItemID:           it.ItemID,
		ColumnItemName:         it.ItemName,
		ColumnVendorItemID:     it.VendorItemID,
		ColumnERPID:            it.ERPID,
		ColumnBillingFrequency: it.BillingFrequency,
		ColumnCommitment:       it.Commitment,
		ColumnAction:           string(ActionSkip),
		ColumnUnitLP:           it.UnitLP.String(),
		ColumnUnitPP:           it.UnitPP.String(),
		ColumnStatus:           string(it.Status),
		ColumnModified:         formatDate(it.ModifiedDate),
	}
	if it.Markup != nil {
		row[ColumnMarkup] = it.Markup.String()
	}
	if it.UnitSP != nil {
		row[ColumnUnitSP] = it.UnitSP.String()
	}
	for _, col := range derivedColumns {
		if v, ok := it.Derived[col]; ok {
			row[col] = v.String()
		}
	}
	return row
}
