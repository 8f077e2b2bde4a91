package mpt

import (
	"context"
	"net/url"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

const priceListsPath = "/v1/price-lists"

// PriceListAPI is the resource scope for price-list parents.
type PriceListAPI struct {
	c *Client
}

func (a *PriceListAPI) Retrieve(ctx context.Context, id string) (*models.PriceList, error) {
	var j models.PriceListJSON
	if err := a.c.get(ctx, priceListsPath+"/"+id, nil, &j); err != nil {
		return nil, err
	}
	return models.PriceListFromJSON(&j), nil
}

func (a *PriceListAPI) Create(ctx context.Context, payload map[string]any) (*models.PriceList, error) {
	var j models.PriceListJSON
	if err := a.c.post(ctx, priceListsPath, payload, &j); err != nil {
		return nil, err
	}
	return models.PriceListFromJSON(&j), nil
}

func (a *PriceListAPI) Update(ctx context.Context, id string, payload map[string]any) (*models.PriceList, error) {
	var j models.PriceListJSON
	if err := a.c.put(ctx, priceListsPath+"/"+id, payload, &j); err != nil {
		return nil, err
	}
	return models.PriceListFromJSON(&j), nil
}

func (a *PriceListAPI) List(ctx context.Context, filter url.Values) ([]*models.PriceList, error) {
	raw, err := listAll[models.PriceListJSON](ctx, a.c, priceListsPath, filter)
	if err != nil {
		return nil, err
	}
	lists := make([]*models.PriceList, 0, len(raw))
	for i := range raw {
		lists = append(lists, models.PriceListFromJSON(&raw[i]))
	}
	return lists, nil
}
