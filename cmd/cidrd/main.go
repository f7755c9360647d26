package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:           "cidrd",
	Short:         "Build, query and serve an IPv4 CIDR prefix index",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
