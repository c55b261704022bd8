package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	storefront "github.com/shopkit/storefront-go"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	Long: `Product browsing commands.

Examples:
  storectl products list
  storectl products list --search mug --category kitchen --ordering -price
  storectl products get 3
  storectl products categories`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

var productsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE:  runProductsCategories,
}

func init() {
	productsListCmd.Flags().String("search", "", "match against name and description")
	productsListCmd.Flags().String("category", "", "filter by category slug")
	productsListCmd.Flags().Float64("min-price", 0, "minimum price")
	productsListCmd.Flags().Float64("max-price", 0, "maximum price")
	productsListCmd.Flags().Int("min-stock", 0, "minimum stock")
	productsListCmd.Flags().String("ordering", "", "sort field: name, price, or stock ('-' prefix for descending)")
	productsListCmd.Flags().Int("page", 0, "result page")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCategoriesCmd)

	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	opts := &storefront.ListProductsOptions{}
	opts.Search, _ = cmd.Flags().GetString("search")
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Ordering, _ = cmd.Flags().GetString("ordering")
	opts.Page, _ = cmd.Flags().GetInt("page")
	if cmd.Flags().Changed("min-price") {
		v, _ := cmd.Flags().GetFloat64("min-price")
		opts.MinPrice = &v
	}
	if cmd.Flags().Changed("max-price") {
		v, _ := cmd.Flags().GetFloat64("max-price")
		opts.MaxPrice = &v
	}
	if cmd.Flags().Changed("min-stock") {
		v, _ := cmd.Flags().GetInt("min-stock")
		opts.MinStock = &v
	}

	ctx := context.Background()

	list, err := client.Products.List(ctx, opts)
	if err != nil {
		return err
	}

	return printOut(list, func() error {
		if len(list.Products) == 0 {
			fmt.Println("No products found")
			return nil
		}

		w := newTable()
		printTableHeader(w, "ID", "NAME", "CATEGORY", "PRICE", "STOCK")
		for _, p := range list.Products {
			category := "-"
			if p.Category != nil {
				category = p.Category.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, truncate(p.Name, 40), category, p.Price, p.Stock)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d of %d products\n", len(list.Products), list.Count)
		return nil
	})
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	product, err := client.Products.Get(ctx, id)
	if err != nil {
		return err
	}

	return printOut(product, func() error {
		fmt.Printf("ID:          %d\n", product.ID)
		fmt.Printf("Name:        %s\n", product.Name)
		fmt.Printf("Slug:        %s\n", product.Slug)
		fmt.Printf("Price:       %.2f\n", product.Price)
		fmt.Printf("Stock:       %d\n", product.Stock)
		if product.Category != nil {
			fmt.Printf("Category:    %s\n", product.Category.Name)
		}
		if product.Description != "" {
			fmt.Printf("Description: %s\n", product.Description)
		}
		return nil
	})
}

func runProductsCategories(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	categories, err := client.Products.Categories(ctx)
	if err != nil {
		return err
	}

	return printOut(categories, func() error {
		w := newTable()
		printTableHeader(w, "ID", "NAME")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
		return w.Flush()
	})
}
