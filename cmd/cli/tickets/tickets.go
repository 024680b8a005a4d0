package tickets

import (
	"fmt"

	"github.com/campuslab/equiptrack/cmd/cli/client"
	"github.com/campuslab/equiptrack/cmd/cli/output"
	"github.com/campuslab/equiptrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

type ticket struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Type     string `json:"type"`
}

func init() {
	ticketsCmd := &cobra.Command{
		Use:   "tickets",
		Short: "Inspect and update support tickets",
	}
	ticketsCmd.AddCommand(listCmd(), closeCmd())
	root.GetRoot().AddCommand(ticketsCmd)
}

func listCmd() *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/tickets?limit=%d", limit)
			if status != "" {
				path += "&status=" + status
			}
			var resp struct {
				Data []ticket `json:"data"`
			}
			if err := client.Do("GET", path, nil, &resp); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(resp.Data))
			for _, t := range resp.Data {
				rows = append(rows, []interface{}{t.ID, t.Title, t.Status, t.Priority, t.Type})
			}
			output.RenderTable([]string{"ID", "Title", "Status", "Priority", "Type"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (OPEN, IN_PROGRESS, RESOLVED, CLOSED, STALE)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of tickets to list")
	return cmd
}

func closeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Data ticket `json:"data"`
			}
			payload := map[string]string{"status": "CLOSED"}
			if err := client.Do("PATCH", "/api/tickets/"+args[0]+"/status", payload, &resp); err != nil {
				return err
			}
			fmt.Printf("Ticket %d is now %s\n", resp.Data.ID, resp.Data.Status)
			return nil
		},
	}
}
