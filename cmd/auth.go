package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dayour/Teams-MCP/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to a Google account",
		Long: `Authorize teams-mcp to access a Google account's calendar.

Prints the Google OAuth consent URL, waits for the authorization code, and
stores the resulting token on disk. Tokens are stored per account, so
multiple Google accounts can be authorized side by side with --account.

Requires TEAMS_MCP_GOOGLE_CLIENT_ID and TEAMS_MCP_GOOGLE_CLIENT_SECRET to
be set (a local .env file is loaded automatically).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			fmt.Println("Visit this URL in your browser and grant access:")
			fmt.Println()
			fmt.Println("  " + google.GetAuthURL())
			fmt.Println()
			fmt.Print("Paste the authorization code here: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Token saved for account %q. You're all set.\n", account)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&account, "account", "default", "Account name the token is stored under")

	cmd.AddCommand(newAuthURLCmd(&account))
	cmd.AddCommand(newAuthSaveCmd(&account))
	cmd.AddCommand(newAuthStatusCmd(&account))

	return cmd
}

func newAuthURLCmd(account *string) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the Google OAuth consent URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			fmt.Println(google.GetAuthURL())
			return nil
		},
	}
}

func newAuthSaveCmd(account *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save <authorization-code>",
		Short: "Exchange an authorization code and store the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if err := google.SaveTokenForAccount(cmd.Context(), *account, args[0]); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Printf("Token saved for account %q.\n", *account)
			return nil
		},
	}
}

func newAuthStatusCmd(account *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored for the account",
		Run: func(cmd *cobra.Command, args []string) {
			if google.HasTokenForAccount(*account) {
				fmt.Printf("Account %q is authorized.\n", *account)
			} else {
				fmt.Printf("Account %q has no stored token. Run 'teams-mcp auth --account %s' to authorize.\n", *account, *account)
			}
		},
	}
}
