package order

import "fmt"

type code int

const (
	codeNoProduct code = iota + 1
	codeInvalidQuantity
	codeProductNotFound
	codeInsufficientStock
	codeStockExceeded
	codeNoItems
	codeNoShippingAddress
	codeNoLine
)

// Error is a rejected draft change. Its text is shown to the user as is.
type Error struct {
	code      code
	available int
}

// Draft rejections. Compare with errors.Is; stock errors carry the available
// quantity in their message.
var (
	ErrNoProduct         = &Error{code: codeNoProduct}
	ErrInvalidQuantity   = &Error{code: codeInvalidQuantity}
	ErrProductNotFound   = &Error{code: codeProductNotFound}
	ErrInsufficientStock = &Error{code: codeInsufficientStock}
	ErrStockExceeded     = &Error{code: codeStockExceeded}
	ErrNoItems           = &Error{code: codeNoItems}
	ErrNoShippingAddress = &Error{code: codeNoShippingAddress}
	ErrLineNotFound      = &Error{code: codeNoLine}
)

func (e *Error) Error() string {
	switch e.code {
	case codeNoProduct:
		return "Please select a product"
	case codeInvalidQuantity:
		return "Quantity must be greater than zero"
	case codeProductNotFound:
		return "Selected product not found"
	case codeInsufficientStock:
		return fmt.Sprintf("Only %d units available in stock", e.available)
	case codeStockExceeded:
		return fmt.Sprintf("Cannot add more. Only %d units available in stock", e.available)
	case codeNoItems:
		return "Please add at least one product to the order"
	case codeNoShippingAddress:
		return "Please enter a shipping address"
	case codeNoLine:
		return "Order line not found"
	default:
		return "invalid order"
	}
}

// Is matches rejections of the same kind regardless of the stock figure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

func stockError(c code, available int) error {
	return &Error{code: c, available: available}
}
