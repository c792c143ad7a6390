// Package form describes the create/edit forms shared by the entity screens.
// A screen picks a Mode and a Schema; the template renders the fields and the
// handler binds and validates the posted values.
package form

// Mode selects between creating a new entity and editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// IsEdit reports whether the form edits an existing entity.
func (m Mode) IsEdit() bool { return m == ModeEdit }

// Title is the page heading for entity, e.g. "Edit Supplier".
func (m Mode) Title(entity string) string {
	if m == ModeEdit {
		return "Edit " + entity
	}
	return "Create " + entity
}

// SubmitLabel is the text of the submit button.
func (m Mode) SubmitLabel(entity string) string {
	if m == ModeEdit {
		return "Update " + entity
	}
	return "Create " + entity
}

// Kind is the input control used for a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindNumber   Kind = "number"
	KindPassword Kind = "password"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field is one input of a form.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	Step        string
	Options     []Option
}

// Schema is the ordered field list of one entity form.
type Schema struct {
	Entity string
	// Path is the list screen the form returns to.
	Path            string
	Fields          []Field
	RequiredMessage string
}

// WithOptions returns a copy of s with the options of the named select field
// replaced.
func (s Schema) WithOptions(name string, opts []Option) Schema {
	fields := make([]Field, len(s.Fields))
	copy(fields, s.Fields)
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Options = opts
		}
	}
	s.Fields = fields
	return s
}

// CategorySchema is the category form.
func CategorySchema() Schema {
	return Schema{
		Entity: "Category",
		Path:   "/categories",
		Fields: []Field{
			{Name: "name", Label: "Category Name", Kind: KindText, Required: true, Placeholder: "Enter category name"},
		},
		RequiredMessage: "Please enter a category name",
	}
}

// SupplierSchema is the supplier form. Address is optional.
func SupplierSchema() Schema {
	return Schema{
		Entity: "Supplier",
		Path:   "/suppliers",
		Fields: []Field{
			{Name: "name", Label: "Supplier Name", Kind: KindText, Required: true},
			{Name: "contactPerson", Label: "Contact Person", Kind: KindText, Required: true},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "phoneNumber", Label: "Phone Number", Kind: KindTel, Required: true},
			{Name: "address", Label: "Address", Kind: KindTextarea},
		},
		RequiredMessage: "Please fill in all required fields",
	}
}

// ProductSchema is the product form. Category and supplier options are
// filled in per request with WithOptions.
func ProductSchema() Schema {
	return Schema{
		Entity: "Product",
		Path:   "/products",
		Fields: []Field{
			{Name: "name", Label: "Product Name", Kind: KindText, Required: true},
			{Name: "price", Label: "Price", Kind: KindNumber, Required: true, Step: "0.01"},
			{Name: "quantity", Label: "Quantity", Kind: KindNumber, Required: true, Step: "1"},
			{Name: "categoryId", Label: "Category", Kind: KindSelect, Required: true},
			{Name: "supplierId", Label: "Supplier", Kind: KindSelect, Required: true},
			{Name: "description", Label: "Description", Kind: KindTextarea},
		},
		RequiredMessage: "Please fill in all required fields",
	}
}
