package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultOrderPageSize is the size sent when callers pass size <= 0.
const DefaultOrderPageSize = 10

// OrderAPI covers /orders.
type OrderAPI struct {
	c *Client
}

// GetAll sends page and size as query parameters. The API currently returns a
// plain array, so no page count comes back.
func (a *OrderAPI) GetAll(ctx context.Context, page, size int) ([]Order, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultOrderPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out []Order
	if err := a.c.doRequest(ctx, http.MethodGet, "/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *OrderAPI) GetByID(ctx context.Context, id int) (*Order, error) {
	var out Order
	if err := a.c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *OrderAPI) Create(ctx context.Context, in OrderInput) (*Order, error) {
	var out Order
	if err := a.c.doRequest(ctx, http.MethodPost, "/orders", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus sets any status from the enumeration; the client enforces no
// transition rules.
func (a *OrderAPI) UpdateStatus(ctx context.Context, id int, status OrderStatus) (*Order, error) {
	var out Order
	path := fmt.Sprintf("/orders/%d/status", id)
	if err := a.c.doRequest(ctx, http.MethodPatch, path, nil, StatusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *OrderAPI) Delete(ctx context.Context, id int) error {
	return a.c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil, nil)
}
