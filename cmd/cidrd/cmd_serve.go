package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/riverrun/cidrd/log"
	"github.com/riverrun/cidrd/option"
	"github.com/riverrun/cidrd/service"
	"github.com/riverrun/cidrd/store"

	"github.com/spf13/cobra"
)

var serveConfigPath string

var serveCommand = &cobra.Command{
	Use:   "serve <address> <port> <db-path>",
	Short: "Run the REST service over a CIDR database",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(args[0], args[1], args[2])
	},
}

func init() {
	rootCommand.AddCommand(serveCommand)
	serveCommand.Flags().StringVarP(&serveConfigPath, "config", "c", "", "optional YAML config file (logging, timeouts)")
}

func runServe(address, port, dbPath string) error {
	opts := option.Default()
	if serveConfigPath != "" {
		loaded, err := option.ReadFile(serveConfigPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", serveConfigPath, err)
		}
		opts = *loaded
	}

	logger := log.NewLogger()
	logger.SetColor(os.Getenv("NO_COLOR") == "")
	if opts.LogOptions.Disabled {
		logger.SetOutput(io.Discard)
	}
	if opts.LogOptions.Debug || os.Getenv("DEBUG") != "" {
		logger.SetDebug(true)
	}
	if opts.LogOptions.File != "" {
		f, err := os.OpenFile(opts.LogOptions.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", opts.LogOptions.File, err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	idx, err := store.Read(dbPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", dbPath, err)
	}

	srv := service.New(idx, dbPath, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifySignal(logger, cancel)

	addr := address + ":" + port
	return srv.ListenAndServe(ctx, addr, opts.ReadTimeout, opts.WriteTimeout)
}

func notifySignal(logger log.Logger, cancel context.CancelFunc) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	sig := <-signalChan
	logger.Warn(fmt.Sprintf("received signal %s, shutting down", sig))
	cancel()
}
