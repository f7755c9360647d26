package main

import (
	"fmt"
	"os"

	"github.com/riverrun/cidrd/compiler"
	"github.com/riverrun/cidrd/ipv4"
	"github.com/riverrun/cidrd/store"

	"github.com/spf13/cobra"
)

var (
	lookupIn string
	lookupDB string
	lookupIP string
)

var lookupCommand = &cobra.Command{
	Use:   "lookup",
	Short: "Look up the CIDRs covering an IPv4 address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup()
	},
}

func init() {
	rootCommand.AddCommand(lookupCommand)
	lookupCommand.Flags().StringVar(&lookupIn, "in", "", "source text corpus (optional)")
	lookupCommand.Flags().StringVar(&lookupDB, "db", "", "binary database path (required)")
	lookupCommand.Flags().StringVar(&lookupIP, "ip", "", "IPv4 address to query (required)")
}

func runLookup() error {
	if lookupDB == "" {
		return fmt.Errorf("--db is required")
	}
	if lookupIP == "" {
		return fmt.Errorf("--ip is required")
	}
	if _, err := os.Stat(lookupDB); os.IsNotExist(err) && lookupIn != "" {
		in, err := os.Open(lookupIn)
		if err != nil {
			return fmt.Errorf("open %s: %w", lookupIn, err)
		}
		defer in.Close()
		if err := compiler.Build(in, lookupDB); err != nil {
			return fmt.Errorf("compile %s: %w", lookupIn, err)
		}
	}
	idx, err := store.Read(lookupDB)
	if err != nil {
		return fmt.Errorf("load %s: %w", lookupDB, err)
	}
	addr, err := ipv4.Parse(lookupIP)
	if err != nil {
		return fmt.Errorf("invalid ip %q: %w", lookupIP, err)
	}
	for _, c := range idx.Lookup(addr) {
		fmt.Println(c.String())
	}
	return nil
}
