package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/guard"
	"github.com/schoolctl/schoolctl/internal/identity"
	"github.com/schoolctl/schoolctl/internal/session"
	"github.com/schoolctl/schoolctl/internal/tui"
	"github.com/schoolctl/schoolctl/internal/ux"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the login session",
	Long: `Manage the persisted login session for the school-management backend.

Subcommands:
  login    Sign in and persist the session
  logout   Sign out and clear the session
  status   Show the current session state
  whoami   Show the authoritative current-user record

Examples:
  schoolctl auth login --email admin@example.com --password secret
  schoolctl auth status
  schoolctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd signs in and persists the session
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Sign in with email and password. On success the issued token and the
identity projection are persisted, so subsequent commands run
authenticated until logout or expiry.

Run without flags to get an interactive form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			creds, err := tui.PromptForLogin(email)
			if err != nil {
				return err
			}
			email, password = creds.Email, creds.Password
		}

		a.store.SetLoading(true)
		defer a.store.SetLoading(false)

		resp, err := a.client.Login(cmd.Context(), email, password)
		if err != nil {
			return ux.EnhanceError(err)
		}

		a.store.Login(identity.Project(&resp.User), resp.Token)
		a.query.Invalidate()

		fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Email)
		return nil
	},
}

// authLogoutCmd signs out and clears the session
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the session",
	Long: `Invalidate the token server-side and clear the local session.

The server call is best effort: the local session is cleared even when
the backend is unreachable or rejects the request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if a.store.Token() == "" {
			fmt.Println("Not logged in.")
			return nil
		}

		if user := a.store.User(); user != nil {
			fmt.Printf("Logging out: %s\n", user.Email)
		}

		if err := a.client.Logout(cmd.Context()); err != nil {
			a.logger.Debug("server-side logout failed", "error", err.Error())
		}

		a.store.Logout()
		a.query.Invalidate()

		fmt.Println("Logged out.")
		return nil
	},
}

// authStatusCmd shows the session state without requiring it to be valid
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if a.store.Token() == "" {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'schoolctl auth login' to authenticate.")
			return nil
		}

		if user := a.store.User(); user != nil {
			fmt.Printf("Cached identity: %s <%s>", user.Name, user.Email)
			if user.Role != "" {
				fmt.Printf(" [%s]", user.Role)
			}
			fmt.Println()
		}

		if claims, ok := session.PeekClaims(a.store.Token()); ok {
			if !claims.ExpiresAt.IsZero() {
				if claims.Expired(time.Now()) {
					fmt.Printf("Token expired at %s\n", claims.ExpiresAt.Format(time.RFC3339))
				} else {
					fmt.Printf("Token expires at %s\n", claims.ExpiresAt.Format(time.RFC3339))
				}
			}
		}

		result := a.query.Refresh(cmd.Context())
		switch guard.Evaluate(a.store, result) {
		case guard.Render:
			fmt.Printf("Session verified: %s (status %s)\n", result.Account.Email, result.Account.Status)
		default:
			fmt.Println("Session could not be verified.")
			fmt.Println("Use 'schoolctl auth login' to re-authenticate.")
		}
		return nil
	},
}

// authWhoamiCmd prints the authoritative current-user record
var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authoritative current-user record",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		result := a.query.Refresh(cmd.Context())
		if result.Status != identity.StatusFresh {
			return ux.EnhanceError(result.Err)
		}

		account := result.Account
		fmt.Printf("ID:      %d\n", account.ID)
		fmt.Printf("Name:    %s\n", account.Name)
		fmt.Printf("Email:   %s\n", account.Email)
		fmt.Printf("Type:    %s\n", account.AccountType)
		fmt.Printf("Status:  %s\n", account.Status)
		for _, role := range account.Roles {
			fmt.Printf("Role:    %s\n", role.Name)
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authWhoamiCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	rootCmd.AddCommand(authCmd)
}
