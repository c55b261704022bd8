package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	storefront "github.com/shopkit/storefront-go"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Create, pay, and inspect orders",
	Long: `Order commands. All of them require a logged-in session.

Examples:
  storectl orders create --shipping-address "1 Main St"
  storectl orders pay 10
  storectl orders list
  storectl orders get 10`,
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Convert the current cart into an order",
	RunE:  runOrdersCreate,
}

var ordersPayCmd = &cobra.Command{
	Use:   "pay <order-id>",
	Short: "Start a payment session for a pending order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersPay,
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders",
	RunE:  runOrdersList,
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <order-id>",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersGet,
}

func init() {
	ordersCreateCmd.Flags().String("shipping-address", "", "where to ship the order (required)")
	_ = ordersCreateCmd.MarkFlagRequired("shipping-address")

	ordersPayCmd.Flags().String("success-url", "", "redirect after successful payment")
	ordersPayCmd.Flags().String("cancel-url", "", "redirect after cancelled payment")

	ordersCmd.AddCommand(ordersCreateCmd)
	ordersCmd.AddCommand(ordersPayCmd)
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersGetCmd)

	rootCmd.AddCommand(ordersCmd)
}

func runOrdersCreate(cmd *cobra.Command, args []string) error {
	shippingAddress, _ := cmd.Flags().GetString("shipping-address")

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	order, err := client.Orders.Create(ctx, storefront.CreateOrderRequest{
		ShippingAddress: shippingAddress,
	})
	if err != nil {
		return err
	}

	return printOut(order, func() error {
		fmt.Printf("Order #%d created (%s), total %s\n", order.ID, order.Status, order.TotalAmount)
		fmt.Printf("Run 'storectl orders pay %d' to pay.\n", order.ID)
		return nil
	})
}

func runOrdersPay(cmd *cobra.Command, args []string) error {
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	successURL, _ := cmd.Flags().GetString("success-url")
	cancelURL, _ := cmd.Flags().GetString("cancel-url")

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	resp, err := client.Orders.Pay(ctx, orderID, storefront.PayOrderRequest{
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		return err
	}

	return printOut(resp, func() error {
		fmt.Printf("Payment session %s\n", resp.SessionID)
		fmt.Printf("Complete the payment at:\n\n  %s\n", resp.CheckoutURL)
		return nil
	})
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	orders, err := client.Orders.List(ctx)
	if err != nil {
		return err
	}

	return printOut(orders, func() error {
		if len(orders) == 0 {
			fmt.Println("No orders found")
			return nil
		}

		w := newTable()
		printTableHeader(w, "ID", "STATUS", "TOTAL", "ITEMS", "CREATED")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", o.ID, o.Status, o.TotalAmount, len(o.Items), o.CreatedAt)
		}
		return w.Flush()
	})
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	order, err := client.Orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	return printOut(order, func() error {
		fmt.Printf("Order:    #%d\n", order.ID)
		fmt.Printf("Status:   %s\n", order.Status)
		fmt.Printf("Total:    %s\n", order.TotalAmount)
		fmt.Printf("Shipping: %s\n", order.ShippingAddress)
		fmt.Printf("Created:  %s\n", order.CreatedAt)
		if order.PaidAt != nil {
			fmt.Printf("Paid:     %s\n", *order.PaidAt)
		}
		if len(order.Items) > 0 {
			fmt.Println()
			w := newTable()
			printTableHeader(w, "PRODUCT", "QTY", "UNIT PRICE")
			for _, item := range order.Items {
				fmt.Fprintf(w, "%s\t%d\t%.2f\n", truncate(item.Product.Name, 40), item.Quantity, item.UnitPrice)
			}
			return w.Flush()
		}
		return nil
	})
}
