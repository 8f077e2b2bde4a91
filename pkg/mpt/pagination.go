package mpt

import (
	"context"
	"net/url"
	"strconv"
)

const pageLimit = 100

// listResponse is the platform's list envelope: a data page plus the
// server-supplied pagination meta.
type listResponse[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Pagination struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	} `json:"$meta"`
}

// listAll walks offset/limit pages until the server-reported total is
// reached and returns the concatenated records.
func listAll[T any](ctx context.Context, c *Client, path string, filter url.Values) ([]T, error) {
	query := url.Values{}
	for key, values := range filter {
		query[key] = values
	}
	query.Set("limit", strconv.Itoa(pageLimit))

	var all []T
	offset := 0
	for {
		query.Set("offset", strconv.Itoa(offset))
		var page listResponse[T]
		if err := c.get(ctx, path, query, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		offset += len(page.Data)
		if len(page.Data) == 0 || offset >= page.Meta.Pagination.Total {
			return all, nil
		}
	}
}
