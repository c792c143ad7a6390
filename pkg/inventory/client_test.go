package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
		}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &rec.body))
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func withToken(token string) context.Context {
	return WithTokenSource(context.Background(), TokenFunc(func(context.Context) (string, error) {
		return token, nil
	}))
}

func TestClientAttachesBearerToken(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Products.GetAll(withToken("abc"))
	require.NoError(t, err)
	_, err = c.Products.GetAll(context.Background())
	require.NoError(t, err)
	_, err = c.Products.GetAll(withToken(""))
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	assert.Equal(t, "Bearer abc", (*calls)[0].auth)
	assert.Empty(t, (*calls)[1].auth)
	assert.Empty(t, (*calls)[2].auth)
}

func TestClientClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		kind    Kind
		message string
	}{
		{http.StatusUnauthorized, `{}`, KindUnauthorized, ""},
		{http.StatusForbidden, `{}`, KindForbidden, ""},
		{http.StatusNotFound, `{}`, KindNotFound, ""},
		{http.StatusInternalServerError, `{"message":"boom"}`, KindServer, "boom"},
		{http.StatusBadGateway, `oops`, KindServer, ""},
		{http.StatusConflict, `{"message":"name already exists"}`, KindBadRequest, "name already exists"},
		{http.StatusBadRequest, `not json`, KindBadRequest, ""},
	}
	for _, tc := range cases {
		srv, _ := newTestServer(t, tc.status, tc.body)
		var hooked []*Error
		c := NewClient(Config{BaseURL: srv.URL, OnError: func(_ context.Context, err *Error) {
			hooked = append(hooked, err)
		}})

		_, err := c.Categories.GetByID(context.Background(), 7)
		require.Error(t, err)

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, tc.kind, apiErr.Kind, "status %d", tc.status)
		assert.Equal(t, tc.status, apiErr.Status)
		assert.Equal(t, tc.message, apiErr.Message)
		assert.Equal(t, "/category/7", apiErr.Path)
		require.Len(t, hooked, 1, "hook runs once before the error is returned")
		assert.Same(t, apiErr, hooked[0])
		assert.Equal(t, tc.status == http.StatusUnauthorized, errors.Is(err, ErrSessionInvalid))
	}
}

func TestClientNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url})
	err := c.Auth.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, IsNoResponse(err))
	assert.False(t, errors.Is(err, ErrSessionInvalid))
}

func TestClientTokenSourceFailureIsSetupError(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient(Config{BaseURL: srv.URL})
	ctx := WithTokenSource(context.Background(), TokenFunc(func(context.Context) (string, error) {
		return "", errors.New("storage down")
	}))

	_, err := c.Suppliers.GetAll(ctx)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindSetup, kind)
	assert.Empty(t, *calls)
}

func TestCategoryCreateSendsName(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusCreated, `{"id":3,"name":"Electronics"}`)
	c := NewClient(Config{BaseURL: srv.URL})

	cat, err := c.Categories.Create(context.Background(), CategoryInput{Name: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, 3, cat.ID)

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPost, (*calls)[0].method)
	assert.Equal(t, "/category", (*calls)[0].path)
	assert.Equal(t, map[string]any{"name": "Electronics"}, (*calls)[0].body)
}

func TestWithoutPaginationUsesSameEndpoint(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `[{"id":1,"name":"Acme"}]`)
	c := NewClient(Config{BaseURL: srv.URL})

	a, err := c.Suppliers.GetAll(context.Background())
	require.NoError(t, err)
	b, err := c.Suppliers.GetAllWithoutPagination(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = c.Categories.GetAllWithoutPagination(context.Background())
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	assert.Equal(t, "/suppliers", (*calls)[0].path)
	assert.Equal(t, "/suppliers", (*calls)[1].path)
	assert.Equal(t, "/category", (*calls)[2].path)
}

func TestOrdersGetAllSendsPageParams(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `[{"id":1,"orderNumber":"ORD-1","orderDate":"2024-05-01T10:00:00","status":"PENDING","totalAmount":12.5,"orderItems":[]}]`)
	c := NewClient(Config{BaseURL: srv.URL})

	orders, err := c.Orders.GetAll(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, OrderStatusPending, orders[0].Status)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 2024, orders[0].OrderDate.Year())
	assert.Equal(t, "page=2&size=10", (*calls)[0].query)
}

func TestOrderUpdateStatusPatches(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{"id":9,"status":"SHIPPED","orderDate":"2024-05-01T10:00:00Z","totalAmount":0,"orderItems":[]}`)
	c := NewClient(Config{BaseURL: srv.URL})

	order, err := c.Orders.UpdateStatus(context.Background(), 9, OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, order.Status)

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPatch, (*calls)[0].method)
	assert.Equal(t, "/orders/9/status", (*calls)[0].path)
	assert.Equal(t, map[string]any{"status": "SHIPPED"}, (*calls)[0].body)
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusNoContent, ``)
	c := NewClient(Config{BaseURL: srv.URL})

	require.NoError(t, c.Products.Delete(context.Background(), 4))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/products/4", (*calls)[0].path)
}

func TestProductInputMarshalsPriceAsNumber(t *testing.T) {
	raw, err := json.Marshal(ProductInput{Name: "Pen", Price: decimal.RequireFromString("1.50"), Quantity: 3})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":1.5`)
	assert.Contains(t, string(raw), `"name":"Pen"`)

	raw, err = json.Marshal(OrderInput{
		Status:      OrderStatusPending,
		TotalAmount: decimal.RequireFromString("6.00"),
		Items:       []OrderLine{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalAmount":6`)
	assert.NotContains(t, string(raw), `"totalAmount":"`)
	assert.Contains(t, string(raw), `"items":[{"productId":1,"quantity":3}]`)

	// Other decimal users keep the library default.
	raw, err = json.Marshal(decimal.RequireFromString("1.50"))
	require.NoError(t, err)
	assert.Equal(t, `"1.5"`, string(raw))
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses() {
		got, err := ParseOrderStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseOrderStatus("LOST")
	assert.Error(t, err)
}

func TestSanitizeForLogMasksCredentials(t *testing.T) {
	out := sanitizeForLog([]byte(`{"username":"ann","password":"pw","nested":{"token":"t"},"list":[{"secretKey":"s"}]}`))
	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "ann", got["username"])
	assert.Equal(t, "***MASKED***", got["password"])
	assert.Equal(t, "***MASKED***", got["nested"].(map[string]any)["token"])
	assert.Equal(t, "***MASKED***", got["list"].([]any)[0].(map[string]any)["secretKey"])
}
