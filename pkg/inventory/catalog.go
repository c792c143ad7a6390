package inventory

import (
	"context"
	"fmt"
	"net/http"
)

// ProductAPI covers /products.
type ProductAPI struct {
	c *Client
}

// GetAll returns every product. The endpoint is not paged.
func (a *ProductAPI) GetAll(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := a.c.doRequest(ctx, http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ProductAPI) GetByID(ctx context.Context, id int) (*Product, error) {
	var out Product
	if err := a.c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductAPI) Create(ctx context.Context, in ProductInput) (*Product, error) {
	var out Product
	if err := a.c.doRequest(ctx, http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductAPI) Update(ctx context.Context, id int, in ProductInput) (*Product, error) {
	var out Product
	if err := a.c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductAPI) Delete(ctx context.Context, id int) error {
	return a.c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

// CategoryAPI covers /category. The API uses the singular path.
type CategoryAPI struct {
	c *Client
}

func (a *CategoryAPI) GetAll(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := a.c.doRequest(ctx, http.MethodGet, "/category", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllWithoutPagination hits the same endpoint as GetAll. It exists for the
// product form's option lists.
func (a *CategoryAPI) GetAllWithoutPagination(ctx context.Context) ([]Category, error) {
	return a.GetAll(ctx)
}

func (a *CategoryAPI) GetByID(ctx context.Context, id int) (*Category, error) {
	var out Category
	if err := a.c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/category/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CategoryAPI) Create(ctx context.Context, in CategoryInput) (*Category, error) {
	var out Category
	if err := a.c.doRequest(ctx, http.MethodPost, "/category", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CategoryAPI) Update(ctx context.Context, id int, in CategoryInput) (*Category, error) {
	var out Category
	if err := a.c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/category/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CategoryAPI) Delete(ctx context.Context, id int) error {
	return a.c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/category/%d", id), nil, nil, nil)
}

// SupplierAPI covers /suppliers.
type SupplierAPI struct {
	c *Client
}

func (a *SupplierAPI) GetAll(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	if err := a.c.doRequest(ctx, http.MethodGet, "/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllWithoutPagination is identical to GetAll.
func (a *SupplierAPI) GetAllWithoutPagination(ctx context.Context) ([]Supplier, error) {
	return a.GetAll(ctx)
}

func (a *SupplierAPI) GetByID(ctx context.Context, id int) (*Supplier, error) {
	var out Supplier
	if err := a.c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/suppliers/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *SupplierAPI) Create(ctx context.Context, in SupplierInput) (*Supplier, error) {
	var out Supplier
	if err := a.c.doRequest(ctx, http.MethodPost, "/suppliers", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *SupplierAPI) Update(ctx context.Context, id int, in SupplierInput) (*Supplier, error) {
	var out Supplier
	if err := a.c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/suppliers/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *SupplierAPI) Delete(ctx context.Context, id int) error {
	return a.c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/suppliers/%d", id), nil, nil, nil)
}
