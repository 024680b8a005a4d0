package main

import (
	"fmt"
	"os"

	"github.com/campuslab/equiptrack/cmd/cli/root"

	_ "github.com/campuslab/equiptrack/cmd/cli/auth"
	_ "github.com/campuslab/equiptrack/cmd/cli/logs"
	_ "github.com/campuslab/equiptrack/cmd/cli/tickets"
	_ "github.com/campuslab/equiptrack/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
