package main

import (
	"fmt"
	"os"

	"github.com/riverrun/cidrd/compiler"

	"github.com/spf13/cobra"
)

var (
	compileIn  string
	compileOut string
)

var compileCommand = &cobra.Command{
	Use:   "compile",
	Short: "Compile a text corpus of CIDR literals into a binary database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile()
	},
}

func init() {
	rootCommand.AddCommand(compileCommand)
	compileCommand.Flags().StringVar(&compileIn, "in", "", "source text corpus (required)")
	compileCommand.Flags().StringVar(&compileOut, "out", "", "binary database path (required)")
}

func runCompile() error {
	if compileIn == "" {
		return fmt.Errorf("--in is required")
	}
	if compileOut == "" {
		return fmt.Errorf("--out is required")
	}
	in, err := os.Open(compileIn)
	if err != nil {
		return fmt.Errorf("open %s: %w", compileIn, err)
	}
	defer in.Close()
	if err := compiler.Build(in, compileOut); err != nil {
		return fmt.Errorf("compile %s: %w", compileIn, err)
	}
	return nil
}
