package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// User is the account record returned by the auth endpoints.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Product mirrors the API product shape. CategoryName and SupplierName are
// denormalized for list display; Category and Supplier are only populated by
// the detail endpoint.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Description  string          `json:"description"`
	CategoryName string          `json:"categoryName"`
	SupplierName string          `json:"supplierName"`
	Category     *Category       `json:"category,omitempty"`
	Supplier     *Supplier       `json:"supplier,omitempty"`
}

// Category groups products. Products is only set in detail contexts.
type Category struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products,omitempty"`
}

// Supplier provides products. Products is only set in detail contexts.
type Supplier struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phoneNumber"`
	Email         string    `json:"email"`
	Products      []Product `json:"products,omitempty"`
}

// OrderStatus is the fixed set of order states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses returns every status in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// ParseOrderStatus validates raw against the enumeration. No transition rules
// are applied: any status may follow any other.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	for _, s := range OrderStatuses() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// Timestamp decodes both RFC 3339 values and the zone-less
// "2006-01-02T15:04:05" form some API builds emit. Zone-less values are UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// Order is a customer order with its line items.
type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	User            *User           `json:"user,omitempty"`
	OrderDate       Timestamp       `json:"orderDate"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrderItems      []OrderItem     `json:"orderItems"`
}

// OrderItem is one order line. SubTotal is UnitPrice × Quantity.
type OrderItem struct {
	ID        int             `json:"id"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	SubTotal  decimal.Decimal `json:"subTotal"`
}

// LoginCredentials is the POST /auth/login body.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterData is the POST /auth/register body.
type RegisterData struct {
	FirstName string `json:"firstName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is returned by login and register. Register may also carry a
// nested user object.
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    int    `json:"userId"`
	FirstName string `json:"firstName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	User      *User  `json:"user,omitempty"`
}

// ProductInput is the create/update body for products.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	Category    *Category       `json:"category,omitempty"`
	Supplier    *Supplier       `json:"supplier,omitempty"`
}

// MarshalJSON sends Price as a JSON number, which the API requires.
func (p ProductInput) MarshalJSON() ([]byte, error) {
	type plain ProductInput
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain(p), json.Number(p.Price.String())})
}

// CategoryInput is the create/update body for categories.
type CategoryInput struct {
	Name string `json:"name"`
}

// SupplierInput is the create/update body for suppliers.
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
}

// OrderLine is a product reference inside OrderInput.
type OrderLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderInput is the POST /orders body.
type OrderInput struct {
	OrderDate       time.Time       `json:"orderDate"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Items           []OrderLine     `json:"items"`
}

// MarshalJSON sends TotalAmount as a JSON number.
func (o OrderInput) MarshalJSON() ([]byte, error) {
	type plain OrderInput
	return json.Marshal(struct {
		plain
		TotalAmount json.Number `json:"totalAmount"`
	}{plain(o), json.Number(o.TotalAmount.String())})
}

// StatusUpdate is the PATCH /orders/{id}/status body.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}
