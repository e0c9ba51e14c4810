// Command yamlfmt is the thin CLI facade over this module: the "trivial
// glue" spec.md section 1 calls out of scope for the core engine. It
// formats YAML files, checks them for syntactic/resolution errors, and
// diffs two files' resolved native values.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "yamlfmt: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yamlfmt",
		Short:         "Format, check, and diff YAML documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newFormatCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newDiffCmd())
	return root
}
