package mpt

import (
	"context"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

// RemoteAccount is the platform's view of the account a token belongs
// to. Used when registering a token in the local registry.
type RemoteAccount struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Type models.Role `json:"type"`
}

// AccountAPI is the resource scope for the authenticated account.
type AccountAPI struct {
	c *Client
}

// Me resolves the account the configured token authenticates as.
func (a *AccountAPI) Me(ctx context.Context) (*RemoteAccount, error) {
	var account RemoteAccount
	if err := a.c.get(ctx, "/v1/accounts/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
