package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/randalmurphal/flagset/pkg/flagset"
	"github.com/randalmurphal/flagset/pkg/flagset/identity"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errUnknownFlag is returned when a name or id resolves to no flag.
var errUnknownFlag = errors.New("unknown flag")

// flagView is the printed form of one flag.
type flagView struct {
	Name    string `json:"name" yaml:"name"`
	ID      string `json:"id" yaml:"id"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// listView is the printed form of a whole flag set.
type listView struct {
	Flags   []flagView        `json:"flags" yaml:"flags"`
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

func viewOf(f flagset.Flag) flagView {
	return flagView{Name: f.Name, ID: f.ID.String(), Enabled: f.Enabled}
}

// NewListCommand creates the `flagctl list` command.
func NewListCommand(root *RootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every flag and alias",
		Example: `  # print a table of flags
  flagctl list

  # print flags as json
  flagctl list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := root.Open()
			if err != nil {
				return err
			}
			defer reg.Close()

			view := listView{Aliases: reg.Aliases()}
			for _, f := range reg.Flags() {
				view.Flags = append(view.Flags, viewOf(f))
			}
			return printList(root.Out, format, view)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format [table, json, yaml]")
	return cmd
}

func printList(w io.Writer, format string, view listView) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tID\tENABLED")
		for _, f := range view.Flags {
			fmt.Fprintf(tw, "%s\t%s\t%t\n", f.Name, f.ID, f.Enabled)
		}
		if len(view.Aliases) > 0 {
			names := make([]string, 0, len(view.Aliases))
			for name := range view.Aliases {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(tw, "\nALIAS\tTARGET\t")
			for _, name := range names {
				fmt.Fprintf(tw, "%s\t%s\t\n", name, view.Aliases[name])
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// resolve looks ref up as an identifier first, then as a name or alias.
func resolve(reg *flagset.Registry, ref string) (flagset.Flag, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if f, ok := reg.TryGetByID(id); ok {
			return f, nil
		}
	}
	if f, ok := reg.TryGet(ref); ok {
		return f, nil
	}
	return flagset.Flag{}, fmt.Errorf("%w: %q", errUnknownFlag, ref)
}

// NewGetCommand creates the `flagctl get` command.
func NewGetCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name|id>",
		Short: "Print one flag",
		Long: `Print the name, identifier and state of one flag. The argument may be a
flag name, an alias, or a flag identifier. Names are case-insensitive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := root.Open()
			if err != nil {
				return err
			}
			defer reg.Close()

			f, err := resolve(reg, args[0])
			if err != nil {
				return err
			}
			printFlag(root.Out, f)
			return nil
		},
	}
}

func printFlag(w io.Writer, f flagset.Flag) {
	if alias, ok := f.Alias(); ok {
		fmt.Fprintf(w, "%s (via %s)\t%s\t%t\n", f.Name, alias, f.ID, f.Enabled)
		return
	}
	fmt.Fprintf(w, "%s\t%s\t%t\n", f.Name, f.ID, f.Enabled)
}

// NewSetCommand creates `flagctl enable` or `flagctl disable`.
func NewSetCommand(root *RootOptions, enabled bool) *cobra.Command {
	use, short := "disable", "Turn a flag off"
	if enabled {
		use, short = "enable", "Turn a flag on"
	}

	return &cobra.Command{
		Use:   use + " <name|id>",
		Short: short,
		Long: `Change one flag and save the flag set back to its store. Changing an
alias changes the flag it refers to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := root.Open()
			if err != nil {
				return err
			}
			defer reg.Close()

			f, err := resolve(reg, args[0])
			if err != nil {
				return err
			}
			if !reg.TrySetFlag(f, enabled) {
				return fmt.Errorf("%w: %q", errUnknownFlag, args[0])
			}

			f, _ = reg.TryGetByID(f.ID)
			printFlag(root.Out, f)
			return nil
		},
	}
}

// NewIDCommand creates the `flagctl id` command.
func NewIDCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "id <scope> <name>",
		Short: "Print the identifier a flag declaration derives",
		Long: `Print the identifier derived from a declaring scope and a flag name.
No config file is read.`,
		Example: `  flagctl id experiments.Core FooBar`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(root.Out, identity.FlagID(args[0], args[1]))
			return nil
		},
	}
}
