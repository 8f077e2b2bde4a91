package mpt

import (
	"context"
	"net/url"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

// PriceListItemAPI is the resource scope for the items under one
// price list. Items are never created through this API; they exist
// remotely as a consequence of the parent's product template.
type PriceListItemAPI struct {
	c           *Client
	priceListID string
}

func (a *PriceListItemAPI) path() string {
	return priceListsPath + "/" + a.priceListID + "/items"
}

func (a *PriceListItemAPI) List(ctx context.Context, filter url.Values) ([]*models.PriceListItem, error) {
	raw, err := listAll[models.PriceListItemJSON](ctx, a.c, a.path(), filter)
	if err != nil {
		return nil, err
	}
	items := make([]*models.PriceListItem, 0, len(raw))
	for i := range raw {
		items = append(items, models.ItemFromJSON(&raw[i]))
	}
	return items, nil
}

// ListByItemID filters the parent's items down to those referencing
// one catalog item.
func (a *PriceListItemAPI) ListByItemID(ctx context.Context, itemID string) ([]*models.PriceListItem, error) {
	filter := url.Values{}
	filter.Set("item.id", itemID)
	return a.List(ctx, filter)
}

func (a *PriceListItemAPI) Update(ctx context.Context, itemID string, payload map[string]any) (*models.PriceListItem, error) {
	var j models.PriceListItemJSON
	if err := a.c.put(ctx, a.path()+"/"+itemID, payload, &j); err != nil {
		return nil, err
	}
	return models.ItemFromJSON(&j), nil
}
