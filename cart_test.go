package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
)

// cartHandler serves a cart whose contents reflect the mutations applied
// so far, so tests can observe stale-vs-fresh reads.
func cartHandler(t *testing.T, items *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/cart/":
			cart := Cart{ID: 1, UserID: 7}
			for i := int32(0); i < items.Load(); i++ {
				cart.Items = append(cart.Items, CartItem{
					ID:       int(i) + 1,
					CartID:   1,
					Product:  Product{ID: 3, Name: "Teapot"},
					Quantity: 1,
				})
			}
			_ = json.NewEncoder(w).Encode(cart)
		case r.Method == http.MethodPost && r.URL.Path == "/cart/add/":
			items.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Added to cart"})
		case r.Method == http.MethodPatch && r.URL.Path == "/cart/1/update/":
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Quantity updated"})
		case r.Method == http.MethodDelete && r.URL.Path == "/cart/1/remove/":
			items.Add(-1)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete && r.URL.Path == "/cart/clear/":
			items.Store(0)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestCartService_AddInvalidatesCart(t *testing.T) {
	var items atomic.Int32
	_, client := newTestServer(t, cartHandler(t, &items))

	ctx := context.Background()

	cart, err := client.Cart.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}

	resp, err := client.Cart.Add(ctx, AddToCartRequest{ProductID: 3, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Detail != "Added to cart" {
		t.Errorf("unexpected detail: %q", resp.Detail)
	}

	// The mutation invalidated the Cart tag: this read must refetch and
	// see the new item, not the cached empty cart.
	cart, err = client.Cart.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected refetched cart with 1 item, got %d", len(cart.Items))
	}
}

func TestCartService_GetCached(t *testing.T) {
	calls := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(Cart{ID: 1, UserID: 7})
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.Cart.Get(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected one upstream call across repeated reads, got %d", calls)
	}
}

func TestCartService_FailedMutationKeepsCache(t *testing.T) {
	gets := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
			_ = json.NewEncoder(w).Encode(Cart{ID: 1, UserID: 7})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not enough stock"})
	})

	ctx := context.Background()
	if _, err := client.Cart.Get(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := client.Cart.Add(ctx, AddToCartRequest{ProductID: 3, Quantity: 999})
	if err == nil {
		t.Fatal("expected error")
	}

	// Failed mutations must not invalidate: the next read is still served
	// from cache.
	if _, err := client.Cart.Get(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gets != 1 {
		t.Errorf("expected cache to survive failed mutation, got %d fetches", gets)
	}
}

func TestCartService_UpdateRemoveClear(t *testing.T) {
	var items atomic.Int32
	items.Store(1)
	_, client := newTestServer(t, cartHandler(t, &items))

	ctx := context.Background()

	if _, err := client.Cart.UpdateItem(ctx, 1, 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := client.Cart.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := client.Cart.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	cart, err := client.Cart.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected cleared cart, got %d items", len(cart.Items))
	}
}
