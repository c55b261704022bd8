package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ProductsService handles product and category browsing. Both are
// read-only resources; results are cached under the Products tag.
type ProductsService struct {
	client *Client
}

// ListProductsOptions are the filter, search, and paging options for
// listing products.
type ListProductsOptions struct {
	// Search matches against product name and description.
	Search string
	// Category filters by category slug.
	Category string
	// MinPrice filters products with price >= the value.
	MinPrice *float64
	// MaxPrice filters products with price <= the value.
	MaxPrice *float64
	// MinStock filters products with stock >= the value.
	MinStock *int
	// Ordering is a sort field: name, price, or stock, with a "-" prefix
	// for descending.
	Ordering string
	// Page selects a result page when the server paginates.
	Page int
}

// values encodes the options as URL query parameters.
func (o *ListProductsOptions) values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.Category != "" {
		params.Set("category", o.Category)
	}
	if o.MinPrice != nil {
		params.Set("min_price", strconv.FormatFloat(*o.MinPrice, 'f', -1, 64))
	}
	if o.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*o.MaxPrice, 'f', -1, 64))
	}
	if o.MinStock != nil {
		params.Set("min_stock", strconv.Itoa(*o.MinStock))
	}
	if o.Ordering != "" {
		params.Set("ordering", o.Ordering)
	}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	return params
}

// pageEnvelope is the paginated listing wrapper some deployments return in
// place of a bare array.
type pageEnvelope struct {
	Results []Product `json:"results"`
	Count   int       `json:"count"`
}

// normalizeProductList decodes either listing shape into a ProductList.
// The ambiguity stops here: callers only ever see the normalized form.
func normalizeProductList(raw json.RawMessage) (*ProductList, error) {
	var bare []Product
	if err := json.Unmarshal(raw, &bare); err == nil {
		return &ProductList{Products: bare, Count: len(bare)}, nil
	}

	var page pageEnvelope
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &ProductList{Products: page.Results, Count: page.Count}, nil
}

// List returns products matching the options.
func (s *ProductsService) List(ctx context.Context, opts *ListProductsOptions) (*ProductList, error) {
	path := "/products/"
	if params := opts.values(); len(params) > 0 {
		path = fmt.Sprintf("%s?%s", path, params.Encode())
	}

	key := "products.list:" + path
	return cached(s.client, key, []Tag{TagProducts}, func() (*ProductList, error) {
		var raw json.RawMessage
		if err := s.client.get(ctx, path, &raw); err != nil {
			return nil, err
		}
		return normalizeProductList(raw)
	})
}

// Get retrieves a product by ID.
func (s *ProductsService) Get(ctx context.Context, id int) (*Product, error) {
	key := fmt.Sprintf("products.get:%d", id)
	tags := []Tag{TagProducts, Tag(fmt.Sprintf("product:%d", id))}
	return cached(s.client, key, tags, func() (*Product, error) {
		var product Product
		if err := s.client.get(ctx, fmt.Sprintf("/products/%d/", id), &product); err != nil {
			return nil, err
		}
		return &product, nil
	})
}

// Categories returns all product categories.
func (s *ProductsService) Categories(ctx context.Context) ([]Category, error) {
	return cached(s.client, "products.categories", []Tag{TagProducts}, func() ([]Category, error) {
		var categories []Category
		if err := s.client.get(ctx, "/categories/", &categories); err != nil {
			return nil, err
		}
		return categories, nil
	})
}
