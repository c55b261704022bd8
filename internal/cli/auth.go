package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	storefront "github.com/shopkit/storefront-go"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and persist the session token",
	Long: `Log in to the storefront API. The password is taken from --password,
the STORECTL_PASSWORD environment variable, or an interactive prompt,
in that order.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session token",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Long: `Create a new account. Registration does not log you in: run
'storectl login' afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	RunE:  runMe,
}

func init() {
	loginCmd.Flags().StringP("password", "p", "", "password (prefer STORECTL_PASSWORD or the prompt)")

	registerCmd.Flags().StringP("password", "p", "", "password (prefer STORECTL_PASSWORD or the prompt)")
	registerCmd.Flags().String("email", "", "account email (required)")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	_ = registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(meCmd)
}

// resolvePassword reads the password from the flag, the environment, or a
// stdin prompt.
func resolvePassword(cmd *cobra.Command) (string, error) {
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		return password, nil
	}
	if password := os.Getenv("STORECTL_PASSWORD"); password != "" {
		return password, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if _, err := client.Auth.Login(ctx, storefront.LoginRequest{
		Username: args[0],
		Password: password,
	}); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", args[0])
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.Auth.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")

	ctx := context.Background()

	resp, err := client.Auth.Register(ctx, storefront.RegisterRequest{
		Username:  args[0],
		Password:  password,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Detail)
	fmt.Println("Run 'storectl login' to start a session.")
	return nil
}

func runMe(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	user, err := client.Auth.Me(ctx)
	if err != nil {
		return err
	}

	return printOut(user, func() error {
		fmt.Printf("ID:       %d\n", user.ID)
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Email:    %s\n", user.Email)
		if user.FirstName != "" || user.LastName != "" {
			fmt.Printf("Name:     %s %s\n", user.FirstName, user.LastName)
		}
		if user.Address != "" {
			fmt.Printf("Address:  %s, %s %s, %s\n", user.Address, user.City, user.PostalCode, user.Country)
		}
		return nil
	})
}
