package storefront

import (
	"context"
	"fmt"
)

// CartService handles the authenticated user's cart. The cart is a
// server-owned aggregate: every mutation is a command followed by a
// re-read, never a local edit. Successful mutations invalidate the Cart
// tag so the next Get refetches.
type CartService struct {
	client *Client
}

// AddToCartRequest is the request for adding a product to the cart.
type AddToCartRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Get returns the current cart.
func (s *CartService) Get(ctx context.Context) (*Cart, error) {
	return cached(s.client, "cart.get", []Tag{TagCart}, func() (*Cart, error) {
		var cart Cart
		if err := s.client.get(ctx, "/cart/", &cart); err != nil {
			return nil, err
		}
		return &cart, nil
	})
}

// Add puts a product in the cart.
func (s *CartService) Add(ctx context.Context, req AddToCartRequest) (*DetailResponse, error) {
	var resp DetailResponse
	if err := s.client.post(ctx, "/cart/add/", req, &resp); err != nil {
		return nil, err
	}
	s.client.cache.invalidate(TagCart)
	return &resp, nil
}

// UpdateItem changes the quantity of a cart item.
func (s *CartService) UpdateItem(ctx context.Context, itemID, quantity int) (*DetailResponse, error) {
	body := map[string]interface{}{"quantity": quantity}

	var resp DetailResponse
	if err := s.client.patch(ctx, fmt.Sprintf("/cart/%d/update/", itemID), body, &resp); err != nil {
		return nil, err
	}
	s.client.cache.invalidate(TagCart)
	return &resp, nil
}

// RemoveItem deletes a cart item.
func (s *CartService) RemoveItem(ctx context.Context, itemID int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/cart/%d/remove/", itemID), nil); err != nil {
		return err
	}
	s.client.cache.invalidate(TagCart)
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.client.delete(ctx, "/cart/clear/", nil); err != nil {
		return err
	}
	s.client.cache.invalidate(TagCart)
	return nil
}
