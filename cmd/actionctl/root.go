package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/outbound-tracker/internal/app"
	"github.com/heartmarshall/outbound-tracker/internal/config"
)

// env is the state shared by all subcommands. Store-backed commands call open
// in their RunE; execute closes the store whether or not the command failed.
type env struct {
	configPath string
	out        io.Writer

	cfg   *config.Config
	log   *slog.Logger
	store *app.Store
	svc   app.Services
}

// execute runs the command line in args and releases the store afterwards.
func (e *env) execute(ctx context.Context, args []string) error {
	defer e.close()

	root := newRootCmd(e)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "actionctl",
		Short:         "Log outbound actions and inspect the tracker views",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(e.out)
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		logCmd(e),
		completeCmd(e),
		listCmd(e),
		reportCmd(e),
		watchCmd(e),
		migrateCmd(e),
	)
	return root
}

func (e *env) loadConfig() error {
	if e.cfg != nil {
		return nil
	}
	path := e.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return nil
}

func (e *env) open(ctx context.Context) error {
	if err := e.loadConfig(); err != nil {
		return err
	}
	store, err := app.OpenStore(ctx, e.cfg, e.log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	e.store = store
	e.svc = app.NewServices(e.log, store)
	return nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
		e.store = nil
	}
}
