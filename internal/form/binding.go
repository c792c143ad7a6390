package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_console/pkg/inventory"
)

var validate = validator.New()

// ValidationError is a failed form check. Message is shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrInvalidReference is returned when a product form names a category or
// supplier that does not exist.
var ErrInvalidReference = &ValidationError{Field: "categoryId", Message: "Invalid category or supplier"}

// Values is a form's submitted values keyed by field name, used to refill the
// form after a rejected submit.
type Values map[string]string

// Get returns the value for name.
func (v Values) Get(name string) string { return v[name] }

// CategoryForm is the posted category form.
type CategoryForm struct {
	Name string `form:"name" validate:"required"`
}

// SupplierForm is the posted supplier form.
type SupplierForm struct {
	Name          string `form:"name" validate:"required"`
	ContactPerson string `form:"contactPerson" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	PhoneNumber   string `form:"phoneNumber" validate:"required"`
	Address       string `form:"address"`
}

// ProductForm is the posted product form. Numbers stay strings until
// validated so a bad value can be shown back to the user.
type ProductForm struct {
	Name        string `form:"name" validate:"required"`
	Price       string `form:"price" validate:"required,numeric"`
	Quantity    string `form:"quantity" validate:"required,number"`
	CategoryID  int    `form:"categoryId" validate:"required"`
	SupplierID  int    `form:"supplierId" validate:"required"`
	Description string `form:"description"`
}

// LoginForm is the posted login form.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is the posted registration form.
type RegisterForm struct {
	FirstName       string `form:"firstName" validate:"required"`
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

// Bind decodes the posted form into dst, trims string fields and validates
// it. Failures come back as *ValidationError carrying requiredMessage for
// missing values.
func Bind(c *gin.Context, dst any, requiredMessage string) error {
	if err := c.ShouldBind(dst); err != nil {
		return &ValidationError{Message: requiredMessage}
	}
	trimStrings(dst)
	return Validate(dst, requiredMessage)
}

// Validate checks v's validate tags.
func Validate(v any, requiredMessage string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("form validation failed: %w", err)
	}

	first := verrs[0]
	msg := requiredMessage
	switch first.Tag() {
	case "email":
		msg = "Please enter a valid email address"
	case "numeric", "number":
		msg = fmt.Sprintf("Please enter a valid %s", strings.ToLower(first.Field()))
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", first.Field(), first.Param())
	case "eqfield":
		msg = "Passwords do not match"
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}

// Message returns the user-facing text of a validation failure, or "" when
// err is not one.
func Message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return ""
}

// Input converts the category form.
func (f CategoryForm) Input() inventory.CategoryInput {
	return inventory.CategoryInput{Name: f.Name}
}

// Values returns the posted values for re-rendering.
func (f CategoryForm) Values() Values {
	return Values{"name": f.Name}
}

// Input converts the supplier form.
func (f SupplierForm) Input() inventory.SupplierInput {
	return inventory.SupplierInput{
		Name:          f.Name,
		ContactPerson: f.ContactPerson,
		Email:         f.Email,
		PhoneNumber:   f.PhoneNumber,
		Address:       f.Address,
	}
}

// Values returns the posted values for re-rendering.
func (f SupplierForm) Values() Values {
	return Values{
		"name":          f.Name,
		"contactPerson": f.ContactPerson,
		"email":         f.Email,
		"phoneNumber":   f.PhoneNumber,
		"address":       f.Address,
	}
}

// Values returns the posted values for re-rendering.
func (f ProductForm) Values() Values {
	v := Values{
		"name":        f.Name,
		"price":       f.Price,
		"quantity":    f.Quantity,
		"description": f.Description,
	}
	if f.CategoryID != 0 {
		v["categoryId"] = strconv.Itoa(f.CategoryID)
	}
	if f.SupplierID != 0 {
		v["supplierId"] = strconv.Itoa(f.SupplierID)
	}
	return v
}

// Input converts a validated product form. The category and supplier must
// be present in the given lists; the API expects the full objects.
func (f ProductForm) Input(categories []inventory.Category, suppliers []inventory.Supplier) (inventory.ProductInput, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil || price.IsNegative() {
		return inventory.ProductInput{}, &ValidationError{Field: "Price", Message: "Please enter a valid price"}
	}
	quantity, err := strconv.Atoi(f.Quantity)
	if err != nil || quantity < 0 {
		return inventory.ProductInput{}, &ValidationError{Field: "Quantity", Message: "Please enter a valid quantity"}
	}

	var category *inventory.Category
	for i := range categories {
		if categories[i].ID == f.CategoryID {
			category = &inventory.Category{ID: categories[i].ID, Name: categories[i].Name}
			break
		}
	}
	var supplier *inventory.Supplier
	for i := range suppliers {
		if suppliers[i].ID == f.SupplierID {
			s := suppliers[i]
			s.Products = nil
			supplier = &s
			break
		}
	}
	if category == nil || supplier == nil {
		return inventory.ProductInput{}, ErrInvalidReference
	}

	return inventory.ProductInput{
		Name:        f.Name,
		Price:       price,
		Quantity:    quantity,
		Description: f.Description,
		Category:    category,
		Supplier:    supplier,
	}, nil
}

// ProductValues fills the edit form from an existing product.
func ProductValues(p *inventory.Product) Values {
	v := Values{
		"name":        p.Name,
		"price":       p.Price.String(),
		"quantity":    strconv.Itoa(p.Quantity),
		"description": p.Description,
	}
	if p.Category != nil {
		v["categoryId"] = strconv.Itoa(p.Category.ID)
	}
	if p.Supplier != nil {
		v["supplierId"] = strconv.Itoa(p.Supplier.ID)
	}
	return v
}

// SupplierValues fills the edit form from an existing supplier.
func SupplierValues(s *inventory.Supplier) Values {
	return SupplierForm{
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		PhoneNumber:   s.PhoneNumber,
		Address:       s.Address,
	}.Values()
}

// CategoryOptions lists categories as select options.
func CategoryOptions(categories []inventory.Category) []Option {
	opts := make([]Option, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, Option{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return opts
}

// SupplierOptions lists suppliers as select options.
func SupplierOptions(suppliers []inventory.Supplier) []Option {
	opts := make([]Option, 0, len(suppliers))
	for _, s := range suppliers {
		opts = append(opts, Option{Value: strconv.Itoa(s.ID), Label: s.Name})
	}
	return opts
}
