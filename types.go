package storefront

// OrderStatus represents the server-side lifecycle state of an order.
// Transitions happen on the server; the client only reads them.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

// User represents an account on the storefront.
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Category represents a product category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product represents a storefront product. Products are read-only from the
// client's perspective.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    *Category `json:"category"`
	Image       string    `json:"image,omitempty"`
}

// ProductList is the normalized product listing. The API returns either a
// bare array or a {results, count} page envelope; both decode to this.
type ProductList struct {
	Products []Product
	// Count is the total number of matching products. For bare-array
	// responses it equals len(Products).
	Count int
}

// CartItem is a single line of the cart: a product and a quantity.
type CartItem struct {
	ID       int     `json:"id"`
	CartID   int     `json:"cart"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the server-owned cart aggregate. The client never constructs one;
// it issues add/update/remove/clear commands and re-reads the result.
type Cart struct {
	ID     int        `json:"id"`
	UserID int        `json:"user"`
	Items  []CartItem `json:"items"`
}

// OrderItem captures a product, quantity, and unit price at order time.
// UnitPrice is a historical snapshot, independent of the current Product
// price.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order represents a placed order.
type Order struct {
	ID     int         `json:"id"`
	UserID int         `json:"user"`
	Status OrderStatus `json:"status"`
	// TotalAmount is a decimal-as-string to avoid floating-point display
	// error.
	TotalAmount     string      `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       string      `json:"created_at"`
	PaidAt          *string     `json:"paid_at"`
	Items           []OrderItem `json:"items"`
	StripeSessionID string      `json:"stripe_session_id,omitempty"`
}
