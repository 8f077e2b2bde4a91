package mpt

import (
	"context"
	"time"
)

// AuditRecord is one historical snapshot of an object, as stored by
// the platform's audit trail.
type AuditRecord struct {
	ID        string         `json:"id"`
	ObjectID  string         `json:"objectId"`
	Actor     string         `json:"actor"`
	Timestamp time.Time      `json:"at"`
	State     map[string]any `json:"state"`
}

// AuditAPI is the resource scope for audit trail records.
type AuditAPI struct {
	c *Client
}

// Record fetches one audit snapshot of an object.
func (a *AuditAPI) Record(ctx context.Context, objectID, recordID string) (*AuditRecord, error) {
	var record AuditRecord
	path := "/v1/audit/" + objectID + "/records/" + recordID
	if err := a.c.get(ctx, path, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
