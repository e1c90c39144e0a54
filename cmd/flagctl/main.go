// Command flagctl inspects and changes persisted experimental flags.
//
// The flag set is declared in a YAML or JSON config file, which also names
// the store holding flag state:
//
//	flagctl --config flags.yaml list
//	flagctl --config flags.yaml enable LegacyFoo
//	flagctl --config flags.yaml --store sqlite --path state/flags.db get FooBar
//	flagctl id experiments.Core FooBar
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
