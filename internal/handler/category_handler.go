package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_console/internal/form"
	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/pagination"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// CategoryHandler serves the category screens.
type CategoryHandler struct {
	api *inventory.Client
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(api *inventory.Client) *CategoryHandler {
	return &CategoryHandler{api: api}
}

// MountRoutes registers the category screens on r.
func (h *CategoryHandler) MountRoutes(r gin.IRoutes) {
	r.GET("/categories", h.List)
	r.GET("/categories/create", h.ShowCreate)
	r.POST("/categories/create", h.Create)
	r.GET("/categories/edit/:id", h.ShowEdit)
	r.POST("/categories/edit/:id", h.Update)
	r.POST("/categories/delete/:id", h.Delete)
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	searchNotice(c)
	items, err := h.api.Categories.GetAll(c.Request.Context())
	status := http.StatusOK
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		status = notify.StatusFor(err)
	}
	render(c, status, "categories", pageFor(c, "Categories", "categories", view.List[inventory.Category]{
		Items:      items,
		Pagination: pagination.New(pageParam(c), 0),
		Entity:     "category",
		Path:       "/categories",
		CSRFToken:  middleware.Web(c).CSRFToken(),
	}))
}

// ShowCreate handles GET /categories/create.
func (h *CategoryHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, form.ModeCreate, 0, form.Values{})
}

// Create handles POST /categories/create.
func (h *CategoryHandler) Create(c *gin.Context) {
	wc := middleware.Web(c)
	schema := form.CategorySchema()

	var req form.CategoryForm
	if err := form.Bind(c, &req, schema.RequiredMessage); err != nil {
		wc.Notes.Error(form.Message(err))
		h.renderForm(c, http.StatusUnprocessableEntity, form.ModeCreate, 0, req.Values())
		return
	}

	if _, err := h.api.Categories.Create(c.Request.Context(), req.Input()); err != nil {
		if sessionExpired(c, err) {
			return
		}
		h.renderForm(c, submitStatus(err), form.ModeCreate, 0, req.Values())
		return
	}

	wc.Notes.Success("Category created successfully")
	redirect(c, schema.Path)
}

// ShowEdit handles GET /categories/edit/:id.
func (h *CategoryHandler) ShowEdit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	category, err := h.api.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/categories")
		}
		return
	}
	h.renderForm(c, http.StatusOK, form.ModeEdit, id, form.CategoryForm{Name: category.Name}.Values())
}

// Update handles POST /categories/edit/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	wc := middleware.Web(c)

	var req form.CategoryForm
	if err := form.Bind(c, &req, form.CategorySchema().RequiredMessage); err != nil {
		wc.Notes.Error(form.Message(err))
		h.renderForm(c, http.StatusUnprocessableEntity, form.ModeEdit, id, req.Values())
		return
	}

	if _, err := h.api.Categories.Update(c.Request.Context(), id, req.Input()); err != nil {
		if sessionExpired(c, err) {
			return
		}
		h.renderForm(c, submitStatus(err), form.ModeEdit, id, req.Values())
		return
	}

	wc.Notes.Success("Category updated successfully")
	redirect(c, "/categories")
}

// Delete handles POST /categories/delete/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	if err := h.api.Categories.Delete(c.Request.Context(), id); err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/categories")
		}
		return
	}
	middleware.Web(c).Notes.Success("Category deleted successfully")
	redirect(c, "/categories")
}

func (h *CategoryHandler) renderForm(c *gin.Context, status int, mode form.Mode, id int, values form.Values) {
	schema := form.CategorySchema()
	render(c, status, "form", pageFor(c, mode.Title(schema.Entity), "categories", view.Form{
		Mode:   mode,
		Schema: schema,
		Values: values,
		Action: formAction(schema.Path, mode, id),
	}))
}

// formAction is where a create or edit form posts to.
func formAction(path string, mode form.Mode, id int) string {
	if mode.IsEdit() {
		return fmt.Sprintf("%s/edit/%d", path, id)
	}
	return path + "/create"
}

// submitStatus is the status of a form re-rendered after the API refused it.
func submitStatus(err error) int {
	if k, ok := inventory.KindOf(err); ok && k == inventory.KindBadRequest {
		return http.StatusUnprocessableEntity
	}
	return notify.StatusFor(err)
}
