package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/order"
	"github.com/GTDGit/inventory_console/internal/pagination"
	"github.com/GTDGit/inventory_console/internal/sse"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

const (
	// ordersPageSize is the page size forwarded to the orders endpoint.
	ordersPageSize = 10

	actionAdd    = "add"
	actionUpdate = "update"
	actionSubmit = "submit"
	actionRemove = "remove:"
)

// OrderHandler serves the order screens.
type OrderHandler struct {
	api      *inventory.Client
	notifier sse.OrderNotifier
	now      func() time.Time
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(api *inventory.Client, notifier sse.OrderNotifier) *OrderHandler {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &OrderHandler{api: api, notifier: notifier, now: time.Now}
}

// MountRoutes registers the order screens on r.
func (h *OrderHandler) MountRoutes(r gin.IRoutes) {
	r.GET("/orders", h.List)
	r.GET("/orders/create", h.ShowCreate)
	r.POST("/orders/create", h.Create)
	r.GET("/orders/:id", h.Show)
	r.POST("/orders/:id/status", h.UpdateStatus)
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	searchNotice(c)
	page := pageParam(c)
	items, err := h.api.Orders.GetAll(c.Request.Context(), page, ordersPageSize)
	status := http.StatusOK
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		status = notify.StatusFor(err)
	}
	render(c, status, "orders", pageFor(c, "Orders", "orders", view.List[inventory.Order]{
		Items:      items,
		Pagination: pagination.New(page, 0),
		Entity:     "order",
		Path:       "/orders",
		CSRFToken:  middleware.Web(c).CSRFToken(),
	}))
}

// ShowCreate handles GET /orders/create.
func (h *OrderHandler) ShowCreate(c *gin.Context) {
	products, err := h.api.Products.GetAll(c.Request.Context())
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/orders")
		}
		return
	}
	h.renderDraft(c, http.StatusOK, order.NewDraft(products))
}

// Create handles POST /orders/create. The draft travels in hidden fields;
// the action button decides whether to edit it or submit it.
func (h *OrderHandler) Create(c *gin.Context) {
	wc := middleware.Web(c)
	ctx := c.Request.Context()

	products, err := h.api.Products.GetAll(ctx)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/orders")
		}
		return
	}

	draft := order.NewDraft(products)
	if dropped := draft.Restore(formInts(c, "item_product_id"), formInts(c, "item_quantity")); dropped > 0 {
		wc.Notes.Info(fmt.Sprintf("%d item(s) removed because stock changed", dropped))
	}
	draft.ShippingAddress = strings.TrimSpace(c.PostForm("shippingAddress"))

	action := c.PostForm("action")
	switch {
	case action == actionAdd:
		productID, _ := strconv.Atoi(c.PostForm("productId"))
		quantity, _ := strconv.Atoi(c.PostForm("quantity"))
		err = draft.Add(productID, quantity)
		if err == nil {
			wc.Notes.Success("Product added to order")
		}

	case action == actionUpdate:
		for i, q := range formInts(c, "item_new_quantity") {
			if i >= len(draft.Lines) {
				break
			}
			if q == draft.Lines[i].Quantity {
				continue
			}
			if err = draft.SetQuantity(i, q); err != nil {
				break
			}
		}

	case strings.HasPrefix(action, actionRemove):
		i, convErr := strconv.Atoi(strings.TrimPrefix(action, actionRemove))
		if convErr != nil {
			i = -1
		}
		err = draft.Remove(i)

	case action == actionSubmit:
		h.submit(c, draft)
		return
	}

	if err != nil {
		wc.Notes.Error(err.Error())
		h.renderDraft(c, http.StatusUnprocessableEntity, draft)
		return
	}
	h.renderDraft(c, http.StatusOK, draft)
}

func (h *OrderHandler) submit(c *gin.Context, draft *order.Draft) {
	wc := middleware.Web(c)

	input, err := draft.Input(h.now())
	if err != nil {
		wc.Notes.Error(err.Error())
		h.renderDraft(c, http.StatusUnprocessableEntity, draft)
		return
	}

	created, err := h.api.Orders.Create(c.Request.Context(), input)
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		h.renderDraft(c, submitStatus(err), draft)
		return
	}

	log.Info().
		Int("order_id", created.ID).
		Str("order_number", created.OrderNumber).
		Str("username", username(c)).
		Msg("Order created")
	h.notifier.NotifyOrderCreated(created, username(c))

	wc.Notes.Success("Order created successfully")
	redirect(c, fmt.Sprintf("/orders/%d", created.ID))
}

// Show handles GET /orders/:id.
func (h *OrderHandler) Show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	o, err := h.api.Orders.GetByID(c.Request.Context(), id)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, "/orders")
		}
		return
	}
	title := "Order"
	if o.OrderNumber != "" {
		title = "Order " + o.OrderNumber
	}
	render(c, http.StatusOK, "order_detail", pageFor(c, title, "orders", view.OrderDetail{Order: o}))
}

// UpdateStatus handles POST /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	wc := middleware.Web(c)
	detail := fmt.Sprintf("/orders/%d", id)

	status, err := inventory.ParseOrderStatus(c.PostForm("status"))
	if err != nil {
		wc.Notes.Error("Please select a valid status")
		redirect(c, detail)
		return
	}

	updated, err := h.api.Orders.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		if !sessionExpired(c, err) {
			redirect(c, detail)
		}
		return
	}

	log.Info().
		Int("order_id", id).
		Str("status", string(status)).
		Str("username", username(c)).
		Msg("Order status updated")
	if updated.ID == 0 {
		// Empty PATCH response.
		updated = &inventory.Order{ID: id, Status: status}
	}
	h.notifier.NotifyOrderStatusChanged(updated, username(c))

	wc.Notes.Success(fmt.Sprintf("Order status updated to %s", status))
	redirect(c, detail)
}

func (h *OrderHandler) renderDraft(c *gin.Context, status int, draft *order.Draft) {
	render(c, status, "order_create", pageFor(c, "Create Order", "orders", view.OrderCreate{Draft: draft}))
}

// formInts reads a repeated form field as ints. Unparsable entries become 0
// so positions stay aligned.
func formInts(c *gin.Context, key string) []int {
	raw := c.PostFormArray(key)
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i], _ = strconv.Atoi(strings.TrimSpace(v))
	}
	return out
}
