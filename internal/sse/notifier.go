package sse

import (
	"time"

	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// OrderNotifier is the interface handlers use to emit order events.
type OrderNotifier interface {
	NotifyOrderCreated(order *inventory.Order, actor string)
	NotifyOrderStatusChanged(order *inventory.Order, actor string)
}

// HubNotifier implements OrderNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
	now func() time.Time
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, now: time.Now}
}

func (n *HubNotifier) NotifyOrderCreated(order *inventory.Order, actor string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(n.orderToEvent(EventOrderCreated, order, actor))
}

func (n *HubNotifier) NotifyOrderStatusChanged(order *inventory.Order, actor string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(n.orderToEvent(EventOrderStatusChanged, order, actor))
}

func (n *HubNotifier) orderToEvent(eventType EventType, order *inventory.Order, actor string) *OrderEvent {
	return &OrderEvent{
		Event:       eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.StringFixed(2),
		Actor:       actor,
		Timestamp:   n.now().UTC(),
	}
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifyOrderCreated(*inventory.Order, string)       {}
func (NopNotifier) NotifyOrderStatusChanged(*inventory.Order, string) {}
