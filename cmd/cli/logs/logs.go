package logs

import (
	"fmt"

	"github.com/campuslab/equiptrack/cmd/cli/client"
	"github.com/campuslab/equiptrack/cmd/cli/output"
	"github.com/campuslab/equiptrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

type entry struct {
	ID        int    `json:"id"`
	Level     string `json:"level"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Resource  string `json:"resource"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func init() {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Read the audit log",
	}
	logsCmd.AddCommand(tailCmd())
	root.GetRoot().AddCommand(logsCmd)
}

func tailCmd() *cobra.Command {
	var level, resource string
	var limit int

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the most recent audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/logs?limit=%d", limit)
			if level != "" {
				path += "&level=" + level
			}
			if resource != "" {
				path += "&resource=" + resource
			}
			var resp struct {
				Data []entry `json:"data"`
			}
			if err := client.Do("GET", path, nil, &resp); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(resp.Data))
			for _, e := range resp.Data {
				rows = append(rows, []interface{}{e.CreatedAt, e.Level, e.Actor, e.Action, e.Resource, e.Message})
			}
			output.RenderTable([]string{"Time", "Level", "Actor", "Action", "Resource", "Message"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Filter by level (debug, info, warn, error)")
	cmd.Flags().StringVar(&resource, "resource", "", "Filter by resource kind")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries to show")
	return cmd
}
