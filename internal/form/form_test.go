package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/inventory_console/pkg/inventory"
)

func postContext(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestModeLabels(t *testing.T) {
	assert.Equal(t, "Create Category", ModeCreate.Title("Category"))
	assert.Equal(t, "Edit Supplier", ModeEdit.Title("Supplier"))
	assert.Equal(t, "Update Product", ModeEdit.SubmitLabel("Product"))
	assert.True(t, ModeEdit.IsEdit())
	assert.False(t, ModeCreate.IsEdit())
}

func TestBindCategoryTrimsAndRequiresName(t *testing.T) {
	schema := CategorySchema()

	var f CategoryForm
	err := Bind(postContext(t, url.Values{"name": {"   "}}), &f, schema.RequiredMessage)
	require.Error(t, err)
	assert.Equal(t, "Please enter a category name", Message(err))

	f = CategoryForm{}
	require.NoError(t, Bind(postContext(t, url.Values{"name": {"  Electronics "}}), &f, schema.RequiredMessage))
	assert.Equal(t, inventory.CategoryInput{Name: "Electronics"}, f.Input())
}

func TestBindSupplier(t *testing.T) {
	schema := SupplierSchema()
	base := url.Values{
		"name":          {"Acme"},
		"contactPerson": {"Jo"},
		"email":         {"jo@acme.test"},
		"phoneNumber":   {"555-0100"},
	}

	var f SupplierForm
	require.NoError(t, Bind(postContext(t, base), &f, schema.RequiredMessage))
	assert.Empty(t, f.Address, "address is optional")

	missing := url.Values{"name": {"Acme"}, "email": {"jo@acme.test"}}
	f = SupplierForm{}
	err := Bind(postContext(t, missing), &f, schema.RequiredMessage)
	assert.Equal(t, "Please fill in all required fields", Message(err))

	bad := url.Values{}
	for k, v := range base {
		bad[k] = v
	}
	bad.Set("email", "not-an-email")
	f = SupplierForm{}
	err = Bind(postContext(t, bad), &f, schema.RequiredMessage)
	assert.Equal(t, "Please enter a valid email address", Message(err))
}

func TestProductFormInput(t *testing.T) {
	categories := []inventory.Category{{ID: 1, Name: "Office"}}
	suppliers := []inventory.Supplier{{ID: 2, Name: "Acme", Email: "a@acme.test"}}

	var f ProductForm
	values := url.Values{
		"name":       {"Pen"},
		"price":      {"1.50"},
		"quantity":   {"10"},
		"categoryId": {"1"},
		"supplierId": {"2"},
	}
	require.NoError(t, Bind(postContext(t, values), &f, ProductSchema().RequiredMessage))

	in, err := f.Input(categories, suppliers)
	require.NoError(t, err)
	assert.True(t, in.Price.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 10, in.Quantity)
	assert.Equal(t, &inventory.Category{ID: 1, Name: "Office"}, in.Category)
	assert.Equal(t, 2, in.Supplier.ID)

	f.SupplierID = 9
	_, err = f.Input(categories, suppliers)
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, "Invalid category or supplier", Message(err))
}

func TestProductFormRejectsBadNumbers(t *testing.T) {
	schema := ProductSchema()
	values := url.Values{
		"name":       {"Pen"},
		"price":      {"abc"},
		"quantity":   {"10"},
		"categoryId": {"1"},
		"supplierId": {"2"},
	}
	var f ProductForm
	err := Bind(postContext(t, values), &f, schema.RequiredMessage)
	assert.Equal(t, "Please enter a valid price", Message(err))

	values.Set("price", "2")
	values.Del("categoryId")
	f = ProductForm{}
	err = Bind(postContext(t, values), &f, schema.RequiredMessage)
	assert.Equal(t, "Please fill in all required fields", Message(err))
}

func TestRegisterFormPasswordRules(t *testing.T) {
	values := url.Values{
		"firstName":       {"Ann"},
		"username":        {"ann"},
		"email":           {"ann@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret2"},
	}
	var f RegisterForm
	err := Bind(postContext(t, values), &f, "Please fill in all required fields")
	assert.Equal(t, "Passwords do not match", Message(err))

	values.Set("confirmPassword", "secret1")
	f = RegisterForm{}
	assert.NoError(t, Bind(postContext(t, values), &f, "Please fill in all required fields"))
}

func TestSchemaWithOptionsCopies(t *testing.T) {
	base := ProductSchema()
	withOpts := base.WithOptions("categoryId", CategoryOptions([]inventory.Category{{ID: 4, Name: "Tools"}}))

	for _, f := range base.Fields {
		assert.Empty(t, f.Options, "original schema untouched")
	}
	for _, f := range withOpts.Fields {
		if f.Name == "categoryId" {
			assert.Equal(t, []Option{{Value: "4", Label: "Tools"}}, f.Options)
		}
	}
}

func TestProductValuesFromEntity(t *testing.T) {
	p := &inventory.Product{
		Name: "Pen", Price: decimal.RequireFromString("1.50"), Quantity: 3,
		Category: &inventory.Category{ID: 1}, Supplier: &inventory.Supplier{ID: 2},
	}
	v := ProductValues(p)
	assert.Equal(t, "1.5", v.Get("price"))
	assert.Equal(t, "1", v.Get("categoryId"))
	assert.Equal(t, "2", v.Get("supplierId"))
}
