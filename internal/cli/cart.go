package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	storefront "github.com/shopkit/storefront-go"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	Long: `Cart commands. All of them require a logged-in session.

Examples:
  storectl cart show
  storectl cart add 3 --quantity 2
  storectl cart update 12 --quantity 1
  storectl cart remove 12
  storectl cart clear`,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Change the quantity of a cart item",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().IntP("quantity", "q", 1, "quantity to add")
	cartUpdateCmd.Flags().IntP("quantity", "q", 1, "new quantity")
	_ = cartUpdateCmd.MarkFlagRequired("quantity")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)

	rootCmd.AddCommand(cartCmd)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	cart, err := client.Cart.Get(ctx)
	if err != nil {
		return err
	}

	return printOut(cart, func() error {
		if len(cart.Items) == 0 {
			fmt.Println("Cart is empty")
			return nil
		}

		var total float64
		w := newTable()
		printTableHeader(w, "ITEM", "PRODUCT", "PRICE", "QTY", "SUBTOTAL")
		for _, item := range cart.Items {
			subtotal := item.Product.Price * float64(item.Quantity)
			total += subtotal
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%.2f\n",
				item.ID, truncate(item.Product.Name, 40), item.Product.Price, item.Quantity, subtotal)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %.2f\n", total)
		return nil
	})
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	quantity, _ := cmd.Flags().GetInt("quantity")

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	resp, err := client.Cart.Add(ctx, storefront.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Detail)
	return nil
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	quantity, _ := cmd.Flags().GetInt("quantity")

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	resp, err := client.Cart.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return err
	}

	fmt.Println(resp.Detail)
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := client.Cart.RemoveItem(ctx, itemID); err != nil {
		return err
	}

	fmt.Println("Item removed")
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := client.Cart.Clear(ctx); err != nil {
		return err
	}

	fmt.Println("Cart cleared")
	return nil
}
