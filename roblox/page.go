package roblox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Limit is the page size accepted by Roblox's cursor-paginated list
// endpoints. Only the listed values are valid; anything else is rejected
// before a request is made.
type Limit int

// Page sizes accepted by the platform.
const (
	Limit10  Limit = 10
	Limit25  Limit = 25
	Limit50  Limit = 50
	Limit100 Limit = 100
)

func (l Limit) validate() error {
	switch l {
	case Limit10, Limit25, Limit50, Limit100:
		return nil
	default:
		return &ConfigError{Field: "limit", Reason: fmt.Sprintf("%d is not one of 10, 25, 50, 100", int(l))}
	}
}

// pageEnvelope is the platform's standard shape for cursor-paginated
// list responses.
type pageEnvelope struct {
	PreviousPageCursor *string         `json:"previousPageCursor"`
	NextPageCursor     *string         `json:"nextPageCursor"`
	Data               json.RawMessage `json:"data"`
}

// FetchPage executes a cursor-paginated list request and decodes one page
// of items. An empty cursor requests the first page; the returned cursor
// is fed back verbatim to request the next one, and an empty returned
// cursor means the data set is exhausted. The cursor and limit are added
// to the request URL's query string; the rest of the request descriptor
// is passed through to Execute unchanged, so CSRF handling and proxy
// routing apply as usual.
func FetchPage[T any](ctx context.Context, c *Client, req Request, cursor string, limit Limit) ([]T, string, error) {
	if err := limit.validate(); err != nil {
		return nil, "", err
	}

	pagedURL, err := withPageParams(req.URL, cursor, limit)
	if err != nil {
		return nil, "", err
	}
	req.URL = pagedURL

	resp, err := c.Execute(ctx, req)
	if err != nil {
		return nil, "", err
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var items []T
	if envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, &items); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	next := ""
	if envelope.NextPageCursor != nil {
		next = *envelope.NextPageCursor
	}

	return items, next, nil
}

func withPageParams(rawURL, cursor string, limit Limit) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &ConfigError{Field: "url", Reason: "unparseable URL", Err: err}
	}

	q := u.Query()
	q.Set("limit", fmt.Sprintf("%d", int(limit)))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
