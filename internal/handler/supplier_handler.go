package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_console/internal/form"
	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/pagination"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// SupplierHandler serves the supplier screens.
type SupplierHandler struct {
	api *inventory.Client
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(api *inventory.Client) *SupplierHandler {
	return &SupplierHandler{api: api}
}

// MountRoutes registers the supplier screens on r.
func (h *SupplierHandler) MountRoutes(r gin.IRoutes) {
	r.GET("/suppliers", h.List)
	r.GET("/suppliers/create", h.ShowCreate)
	r.POST("/suppliers/create", h.Create)
	r.GET("/suppliers/edit/:id", h.ShowEdit)
	r.POST("/suppliers/edit/:id", h.Update)
	r.POST("/suppliers/delete/:id", h.Delete)
}

// List handles GET /suppliers.
func (h *SupplierHandler) List(c *gin.Context) {
	searchNotice(c)
	items, err := h.api.Suppliers.GetAll(c.Request.Context())
	status := http.StatusOK
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		status = notify.StatusFor(err)
	}
	render(c, status, "suppliers", pageFor(c, "Suppliers", "suppliers", view.List[inventory.Supplier]{
		Items:      items,
		Pagination: pagination.New(pageParam(c), 0),
		Entity:     "supplier",
		Path:       "/suppliers",
		CSRFToken:  middleware.Web(c).CSRFToken(),
	}))
}

// ShowCreate handles GET /suppliers/create.
func (h *SupplierHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, form.ModeCreate, 0, form.Values{})
}

// Create handles POST /suppliers/create.
func (h *SupplierHandler) Create(c *gin.Context) {
	h.submit(c, form.ModeCreate, 0)
}

// ShowEdit handles GET /suppliers/edit/:id.
func (h *SupplierHandler) ShowEdit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	supplier, err := h.api.Suppliers.GetByID(c.Request.Context(), id)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/suppliers")
		}
		return
	}
	h.renderForm(c, http.StatusOK, form.ModeEdit, id, form.SupplierValues(supplier))
}

// Update handles POST /suppliers/edit/:id.
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	h.submit(c, form.ModeEdit, id)
}

// Delete handles POST /suppliers/delete/:id.
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	if err := h.api.Suppliers.Delete(c.Request.Context(), id); err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/suppliers")
		}
		return
	}
	middleware.Web(c).Notes.Success("Supplier deleted successfully")
	redirect(c, "/suppliers")
}

func (h *SupplierHandler) submit(c *gin.Context, mode form.Mode, id int) {
	wc := middleware.Web(c)
	schema := form.SupplierSchema()

	var req form.SupplierForm
	if err := form.Bind(c, &req, schema.RequiredMessage); err != nil {
		wc.Notes.Error(form.Message(err))
		h.renderForm(c, http.StatusUnprocessableEntity, mode, id, req.Values())
		return
	}

	var err error
	if mode.IsEdit() {
		_, err = h.api.Suppliers.Update(c.Request.Context(), id, req.Input())
	} else {
		_, err = h.api.Suppliers.Create(c.Request.Context(), req.Input())
	}
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		h.renderForm(c, submitStatus(err), mode, id, req.Values())
		return
	}

	if mode.IsEdit() {
		wc.Notes.Success("Supplier updated successfully")
	} else {
		wc.Notes.Success("Supplier created successfully")
	}
	redirect(c, schema.Path)
}

func (h *SupplierHandler) renderForm(c *gin.Context, status int, mode form.Mode, id int, values form.Values) {
	schema := form.SupplierSchema()
	render(c, status, "form", pageFor(c, mode.Title(schema.Entity), "suppliers", view.Form{
		Mode:   mode,
		Schema: schema,
		Values: values,
		Action: formAction(schema.Path, mode, id),
	}))
}
