// Package order builds new orders line by line before they are submitted.
package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// Line is one product in the draft.
type Line struct {
	Product  inventory.Product
	Quantity int
}

// UnitPrice is the product's current price.
func (l Line) UnitPrice() decimal.Decimal { return l.Product.Price }

// SubTotal is unit price times quantity.
func (l Line) SubTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Draft is an order under construction. Only products with stock can be
// added, and no line may exceed the product's stock. A rejected change leaves
// the draft untouched.
type Draft struct {
	Lines           []Line
	ShippingAddress string

	available []inventory.Product
	byID      map[int]inventory.Product
}

// NewDraft starts an empty draft over the given catalog. Products without
// stock are not offered.
func NewDraft(products []inventory.Product) *Draft {
	d := &Draft{byID: make(map[int]inventory.Product)}
	for _, p := range products {
		if p.Quantity > 0 {
			d.available = append(d.available, p)
			d.byID[p.ID] = p
		}
	}
	return d
}

// Available returns the products that may be added.
func (d *Draft) Available() []inventory.Product {
	return d.available
}

// Restore rebuilds lines from parallel product id and quantity slices, as
// carried between form posts. Lines whose product is no longer available, or
// whose quantity is out of range, are dropped and counted.
func (d *Draft) Restore(productIDs, quantities []int) (dropped int) {
	d.Lines = d.Lines[:0]
	for i, id := range productIDs {
		if i >= len(quantities) {
			dropped++
			continue
		}
		p, ok := d.byID[id]
		q := quantities[i]
		if !ok || q <= 0 || q > p.Quantity || d.indexOf(id) >= 0 {
			dropped++
			continue
		}
		d.Lines = append(d.Lines, Line{Product: p, Quantity: q})
	}
	return dropped
}

// Add puts quantity units of productID into the draft. Adding a product that
// is already present sums the quantities.
func (d *Draft) Add(productID, quantity int) error {
	if productID == 0 {
		return ErrNoProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p, ok := d.byID[productID]
	if !ok {
		return ErrProductNotFound
	}
	if quantity > p.Quantity {
		return stockError(codeInsufficientStock, p.Quantity)
	}

	if i := d.indexOf(productID); i >= 0 {
		combined := d.Lines[i].Quantity + quantity
		if combined > p.Quantity {
			return stockError(codeStockExceeded, p.Quantity)
		}
		d.Lines[i].Quantity = combined
		return nil
	}

	d.Lines = append(d.Lines, Line{Product: p, Quantity: quantity})
	return nil
}

// SetQuantity replaces the quantity of line i.
func (d *Draft) SetQuantity(i, quantity int) error {
	if i < 0 || i >= len(d.Lines) {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	stock := d.Lines[i].Product.Quantity
	if quantity > stock {
		return stockError(codeInsufficientStock, stock)
	}
	d.Lines[i].Quantity = quantity
	return nil
}

// Remove deletes line i.
func (d *Draft) Remove(i int) error {
	if i < 0 || i >= len(d.Lines) {
		return ErrLineNotFound
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	return nil
}

// Total is the sum of line subtotals.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.SubTotal())
	}
	return total
}

// Validate checks the draft can be submitted.
func (d *Draft) Validate() error {
	if len(d.Lines) == 0 {
		return ErrNoItems
	}
	if strings.TrimSpace(d.ShippingAddress) == "" {
		return ErrNoShippingAddress
	}
	return nil
}

// Input converts a valid draft into the create-order request. New orders
// always start as PENDING.
func (d *Draft) Input(now time.Time) (inventory.OrderInput, error) {
	if err := d.Validate(); err != nil {
		return inventory.OrderInput{}, err
	}
	items := make([]inventory.OrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		items = append(items, inventory.OrderLine{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return inventory.OrderInput{
		OrderDate:       now.UTC(),
		Status:          inventory.OrderStatusPending,
		ShippingAddress: d.ShippingAddress,
		TotalAmount:     d.Total(),
		Items:           items,
	}, nil
}

// IsRejection reports whether err is a draft rejection meant for the user.
func IsRejection(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

func (d *Draft) indexOf(productID int) int {
	for i, l := range d.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
