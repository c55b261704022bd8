package storefront

import (
	"context"
	"fmt"
)

// OrdersService handles order creation, payment, and history.
type OrdersService struct {
	client *Client
}

// CreateOrderRequest converts the current cart into an order.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// PayOrderRequest starts a payment session for an order. The URLs are where
// the payment provider redirects the buyer afterwards; the server applies
// defaults when omitted.
type PayOrderRequest struct {
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}

// PayOrderResponse is the payment session handle.
type PayOrderResponse struct {
	// CheckoutURL is where the buyer completes payment.
	CheckoutURL string `json:"checkout_url"`
	// SessionID identifies the payment session.
	SessionID string `json:"session_id"`
}

// Create converts the current cart into an order. The cart is consumed
// server-side, so both Cart and Orders caches are invalidated.
func (s *OrdersService) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := s.client.post(ctx, "/my/orders/create_order/", req, &order); err != nil {
		return nil, err
	}
	s.client.cache.invalidate(TagCart, TagOrders)
	return &order, nil
}

// Pay starts a payment session for a pending order and returns the
// checkout redirect. The order's status changes server-side, so cached
// order reads are invalidated.
func (s *OrdersService) Pay(ctx context.Context, orderID int, req PayOrderRequest) (*PayOrderResponse, error) {
	var resp PayOrderResponse
	if err := s.client.post(ctx, fmt.Sprintf("/my/orders/%d/pay/", orderID), req, &resp); err != nil {
		return nil, err
	}
	s.client.cache.invalidate(TagOrders)
	return &resp, nil
}

// List returns the authenticated user's orders.
func (s *OrdersService) List(ctx context.Context) ([]Order, error) {
	return cached(s.client, "orders.list", []Tag{TagOrders}, func() ([]Order, error) {
		var orders []Order
		if err := s.client.get(ctx, "/my/orders/", &orders); err != nil {
			return nil, err
		}
		return orders, nil
	})
}

// Get retrieves one of the user's orders by ID.
func (s *OrdersService) Get(ctx context.Context, id int) (*Order, error) {
	key := fmt.Sprintf("orders.get:%d", id)
	tags := []Tag{TagOrders, Tag(fmt.Sprintf("order:%d", id))}
	return cached(s.client, key, tags, func() (*Order, error) {
		var order Order
		if err := s.client.get(ctx, fmt.Sprintf("/my/orders/%d/", id), &order); err != nil {
			return nil, err
		}
		return &order, nil
	})
}
