package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "equiptrack",
	Short: "EquipTrack CLI",
	Long:  "Command line interface for the EquipTrack equipment administration API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command so subcommand packages can register
// themselves in init.
func GetRoot() *cobra.Command {
	return RootCmd
}
