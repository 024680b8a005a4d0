package users

import (
	"fmt"

	"github.com/campuslab/equiptrack/cmd/cli/client"
	"github.com/campuslab/equiptrack/cmd/cli/output"
	"github.com/campuslab/equiptrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

type user struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	usersCmd.AddCommand(listCmd(), createCmd())
	root.GetRoot().AddCommand(usersCmd)
}

func listCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Data []user `json:"data"`
			}
			if err := client.Do("GET", fmt.Sprintf("/api/users?limit=%d", limit), nil, &resp); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(resp.Data))
			for _, u := range resp.Data {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Email, u.FirstName + " " + u.LastName, u.Role})
			}
			output.RenderTable([]string{"ID", "Username", "Email", "Name", "Role"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of users to list")
	return cmd
}

func createCmd() *cobra.Command {
	var username, email, firstName, lastName, password, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"username":  username,
				"email":     email,
				"firstName": firstName,
				"lastName":  lastName,
				"password":  password,
				"role":      role,
			}
			var resp struct {
				Data user `json:"data"`
			}
			if err := client.Do("POST", "/api/users", payload, &resp); err != nil {
				return err
			}
			fmt.Printf("Created user %s (id %d) with role %s\n", resp.Data.Username, resp.Data.ID, resp.Data.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&role, "role", "member", "Role (admin, manager, member, guest)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}
