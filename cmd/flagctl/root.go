package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/randalmurphal/flagset/pkg/flagset"
	"github.com/randalmurphal/flagset/pkg/flagset/config"
	"github.com/spf13/cobra"
)

// defaultConfigPath is read when --config is not given.
const defaultConfigPath = "flags.yaml"

// RootOptions holds the persistent flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	Store      string
	Path       string

	Out    io.Writer
	ErrOut io.Writer
}

// NewRootCommand creates the flagctl command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	o := &RootOptions{Out: out, ErrOut: errOut}

	cmd := &cobra.Command{
		Use:   "flagctl",
		Short: "Inspect and change experimental flags",
		Long: `flagctl reads a flag set declaration from a config file, loads the
persisted flag state from the configured store, and lists or changes it.
Changes are saved back to the same store.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", defaultConfigPath, "flag set config file (yaml or json)")
	cmd.PersistentFlags().StringVar(&o.Store, "store", "", "override the store backend [file, memory, sqlite, badger]")
	cmd.PersistentFlags().StringVar(&o.Path, "path", "", "override the store path")

	cmd.AddCommand(
		NewListCommand(o),
		NewGetCommand(o),
		NewSetCommand(o, true),
		NewSetCommand(o, false),
		NewIDCommand(o),
	)
	return cmd
}

// Open builds the Registry described by the config file, with any store
// overrides applied. Callers must Close it.
func (o *RootOptions) Open() (*flagset.Registry, error) {
	cfg, err := config.FromFile(o.ConfigPath)
	if err != nil {
		return nil, err
	}

	settings, err := config.SettingsFrom(cfg)
	if err != nil {
		return nil, err
	}
	if o.Store != "" {
		settings.Store = o.Store
	}
	if o.Path != "" {
		settings.Path = o.Path
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	decls, err := config.Declarations(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.ConfigPath, err)
	}

	logger := slog.New(slog.NewTextHandler(o.ErrOut, &slog.HandlerOptions{Level: settings.Level()}))
	store, err := settings.OpenStore(logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", settings.Store, err)
	}

	reg, err := flagset.New(decls, settings.RegistryOptions(store, logger)...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return reg, nil
}
