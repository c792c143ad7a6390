package view

import (
	"fmt"

	"github.com/GTDGit/inventory_console/internal/form"
	"github.com/GTDGit/inventory_console/internal/order"
	"github.com/GTDGit/inventory_console/internal/pagination"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// List is the data of a list screen.
type List[T any] struct {
	Items      []T
	Pagination pagination.Plan

	Entity    string
	Path      string
	CSRFToken string
}

// DeleteForm is the row delete button of a list screen.
type DeleteForm struct {
	Action    string
	Entity    string
	CSRFToken string
}

// DeleteForm builds the delete button for row id.
func (l List[T]) DeleteForm(id int) DeleteForm {
	return DeleteForm{
		Action:    fmt.Sprintf("%s/delete/%d", l.Path, id),
		Entity:    l.Entity,
		CSRFToken: l.CSRFToken,
	}
}

// Form is the data of a create or edit screen.
type Form struct {
	Mode   form.Mode
	Schema form.Schema
	Values form.Values
	Action string
}

// Login refills the username after a failed sign-in.
type Login struct {
	Username string
}

// Dashboard holds the entity counts and the recent products table.
type Dashboard struct {
	Products   int
	Categories int
	Suppliers  int
	Orders     int
	Recent     []inventory.Product
}

// OrderCreate is the order builder screen.
type OrderCreate struct {
	Draft *order.Draft
}

// OrderDetail is the order detail screen.
type OrderDetail struct {
	Order *inventory.Order
}
