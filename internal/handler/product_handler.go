package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_console/internal/form"
	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/pagination"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// ProductHandler serves the product screens.
type ProductHandler struct {
	api *inventory.Client
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(api *inventory.Client) *ProductHandler {
	return &ProductHandler{api: api}
}

// MountRoutes registers the product screens on r.
func (h *ProductHandler) MountRoutes(r gin.IRoutes) {
	r.GET("/products", h.List)
	r.GET("/products/create", h.ShowCreate)
	r.POST("/products/create", h.Create)
	r.GET("/products/edit/:id", h.ShowEdit)
	r.POST("/products/edit/:id", h.Update)
	r.POST("/products/delete/:id", h.Delete)
}

// refs are the select options of the product form.
type refs struct {
	categories []inventory.Category
	suppliers  []inventory.Supplier
}

func (h *ProductHandler) loadRefs(ctx context.Context) (refs, error) {
	categories, err := h.api.Categories.GetAllWithoutPagination(ctx)
	if err != nil {
		return refs{}, err
	}
	suppliers, err := h.api.Suppliers.GetAllWithoutPagination(ctx)
	if err != nil {
		return refs{}, err
	}
	return refs{categories: categories, suppliers: suppliers}, nil
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	searchNotice(c)
	items, err := h.api.Products.GetAll(c.Request.Context())
	status := http.StatusOK
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		status = notify.StatusFor(err)
	}
	render(c, status, "products", pageFor(c, "Products", "products", view.List[inventory.Product]{
		Items:      items,
		Pagination: pagination.New(pageParam(c), 0),
		Entity:     "product",
		Path:       "/products",
		CSRFToken:  middleware.Web(c).CSRFToken(),
	}))
}

// ShowCreate handles GET /products/create.
func (h *ProductHandler) ShowCreate(c *gin.Context) {
	r, err := h.loadRefs(c.Request.Context())
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/products")
		}
		return
	}
	h.renderForm(c, http.StatusOK, form.ModeCreate, 0, r, form.Values{})
}

// Create handles POST /products/create.
func (h *ProductHandler) Create(c *gin.Context) {
	h.submit(c, form.ModeCreate, 0)
}

// ShowEdit handles GET /products/edit/:id.
func (h *ProductHandler) ShowEdit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	ctx := c.Request.Context()

	product, err := h.api.Products.GetByID(ctx, id)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/products")
		}
		return
	}
	r, err := h.loadRefs(ctx)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/products")
		}
		return
	}
	h.renderForm(c, http.StatusOK, form.ModeEdit, id, r, form.ProductValues(product))
}

// Update handles POST /products/edit/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	h.submit(c, form.ModeEdit, id)
}

// Delete handles POST /products/delete/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	if err := h.api.Products.Delete(c.Request.Context(), id); err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/products")
		}
		return
	}
	middleware.Web(c).Notes.Success("Product deleted successfully")
	redirect(c, "/products")
}

func (h *ProductHandler) submit(c *gin.Context, mode form.Mode, id int) {
	wc := middleware.Web(c)
	ctx := c.Request.Context()
	schema := form.ProductSchema()

	var req form.ProductForm
	bindErr := form.Bind(c, &req, schema.RequiredMessage)

	r, err := h.loadRefs(ctx)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, schema.Path)
		}
		return
	}
	if bindErr != nil {
		wc.Notes.Error(form.Message(bindErr))
		h.renderForm(c, http.StatusUnprocessableEntity, mode, id, r, req.Values())
		return
	}

	input, err := req.Input(r.categories, r.suppliers)
	if err != nil {
		wc.Notes.Error(form.Message(err))
		h.renderForm(c, http.StatusUnprocessableEntity, mode, id, r, req.Values())
		return
	}

	if mode.IsEdit() {
		_, err = h.api.Products.Update(ctx, id, input)
	} else {
		_, err = h.api.Products.Create(ctx, input)
	}
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		h.renderForm(c, submitStatus(err), mode, id, r, req.Values())
		return
	}

	if mode.IsEdit() {
		wc.Notes.Success("Product updated successfully")
	} else {
		wc.Notes.Success("Product created successfully")
	}
	redirect(c, schema.Path)
}

func (h *ProductHandler) renderForm(c *gin.Context, status int, mode form.Mode, id int, r refs, values form.Values) {
	schema := form.ProductSchema().
		WithOptions("categoryId", form.CategoryOptions(r.categories)).
		WithOptions("supplierId", form.SupplierOptions(r.suppliers))
	render(c, status, "form", pageFor(c, mode.Title(schema.Entity), "products", view.Form{
		Mode:   mode,
		Schema: schema,
		Values: values,
		Action: formAction(schema.Path, mode, id),
	}))
}
