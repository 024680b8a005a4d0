package auth

import (
	"fmt"

	"github.com/campuslab/equiptrack/cmd/cli/client"
	"github.com/campuslab/equiptrack/cmd/cli/config"
	"github.com/campuslab/equiptrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

func init() {
	root.GetRoot().AddCommand(loginCmd(), logoutCmd())
}

// loginCmd logs in and stores the JWT token locally for later commands.
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the EquipTrack API",
		Long:  "Authenticate with the EquipTrack API and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}

			var resp struct {
				Data struct {
					Token string `json:"token"`
				} `json:"data"`
			}
			payload := map[string]string{"username": username, "password": password}
			if err := client.Do("POST", "/api/auth/login", payload, &resp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if resp.Data.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(resp.Data.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

// logoutCmd tells the API to record the logout and removes the local token.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort; the token may already be expired.
			_ = client.Do("POST", "/api/auth/logout", nil, nil)

			if err := config.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
