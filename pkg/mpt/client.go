// Package mpt is the typed client for the marketplace platform API.
// It wraps a resty client the same way the rest of the tool wraps its
// collaborators: resource scopes expose typed calls, every failure is
// normalized into a RemoteError.
package mpt

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client is the shared HTTP layer underneath the resource scopes.
type Client struct {
	rc     *resty.Client
	logger *log.Logger
}

func NewClient(baseURL, token string, logger *log.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(defaultTimeout).
		SetHeader("User-Agent", "swo-marketplace-cli")
	return &Client{rc: rc, logger: logger}
}

// SetTimeout overrides the per-call timeout. The sync engine itself
// imposes no deadlines; timeouts live here.
func (c *Client) SetTimeout(d time.Duration) *Client {
	c.rc.SetTimeout(d)
	return c
}

func (c *Client) PriceLists() *PriceListAPI { return &PriceListAPI{c: c} }

func (c *Client) Items(priceListID string) *PriceListItemAPI {
	return &PriceListItemAPI{c: c, priceListID: priceListID}
}

func (c *Client) Accounts() *AccountAPI { return &AccountAPI{c: c} }

func (c *Client) Audit() *AuditAPI { return &AuditAPI{c: c} }

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req := c.rc.R().SetContext(ctx).SetResult(out)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	c.logger.Debug("api get", "path", path, "query", query.Encode())
	resp, err := req.Get(path)
	return c.finish(resp, err, path)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	c.logger.Debug("api post", "path", path)
	resp, err := c.rc.R().SetContext(ctx).SetBody(body).SetResult(out).Post(path)
	return c.finish(resp, err, path)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	c.logger.Debug("api put", "path", path)
	resp, err := c.rc.R().SetContext(ctx).SetBody(body).SetResult(out).Put(path)
	return c.finish(resp, err, path)
}

func (c *Client) finish(resp *resty.Response, err error, path string) error {
	if err != nil {
		return errors.Wrapf(&RemoteError{Kind: KindTransient, Message: err.Error()}, "request to %s failed", path)
	}
	if resp.IsError() {
		remote := remoteErrorFrom(resp)
		c.logger.Debug("api error", "path", path, "status", remote.Status, "kind", remote.Kind)
		return remote
	}
	return nil
}
