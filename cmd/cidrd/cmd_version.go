package main

import (
	"fmt"

	"github.com/riverrun/cidrd/constant"

	"github.com/spf13/cobra"
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(constant.GetVersion())
	},
}

func init() {
	rootCommand.AddCommand(versionCommand)
}
