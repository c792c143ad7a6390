package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// DashboardHandler serves the landing screen.
type DashboardHandler struct {
	api *inventory.Client
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(api *inventory.Client) *DashboardHandler {
	return &DashboardHandler{api: api}
}

// Show handles GET /. Counts stop at the first failed fetch; the failure is
// already reported by the client hook.
func (h *DashboardHandler) Show(c *gin.Context) {
	data, err := h.load(c)
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		log.Warn().Err(err).Msg("Dashboard data incomplete")
		render(c, notify.StatusFor(err), "dashboard", pageFor(c, "Dashboard", "dashboard", data))
		return
	}
	render(c, http.StatusOK, "dashboard", pageFor(c, "Dashboard", "dashboard", data))
}

func (h *DashboardHandler) load(c *gin.Context) (view.Dashboard, error) {
	ctx := c.Request.Context()
	var data view.Dashboard

	products, err := h.api.Products.GetAll(ctx)
	if err != nil {
		return data, err
	}
	categories, err := h.api.Categories.GetAll(ctx)
	if err != nil {
		return data, err
	}
	suppliers, err := h.api.Suppliers.GetAll(ctx)
	if err != nil {
		return data, err
	}
	orders, err := h.api.Orders.GetAll(ctx, 0, 0)
	if err != nil {
		return data, err
	}

	data.Products = len(products)
	data.Categories = len(categories)
	data.Suppliers = len(suppliers)
	data.Orders = len(orders)
	data.Recent = products
	return data, nil
}
