package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fearthecowboy/yaml"
)

type formatFlags struct {
	indent         int
	lineWidth      int
	singleQuote    bool
	sortMapEntries bool
	schema         *schemaFlag
	write          bool
}

func newFormatCmd() *cobra.Command {
	f := &formatFlags{indent: 2, lineWidth: 80, schema: newSchemaFlag("core")}
	cmd := &cobra.Command{
		Use:   "format <file> [file2 ...]",
		Short: "Re-serialize one or more YAML files with normalized style",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFormat(f, args)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&f.indent, "indent", f.indent, "spaces per indentation level")
	flags.IntVar(&f.lineWidth, "line-width", f.lineWidth, "column at which long lines fold (0 disables folding)")
	flags.BoolVar(&f.singleQuote, "single-quote", false, "prefer single-quoted over double-quoted scalars")
	flags.BoolVar(&f.sortMapEntries, "sort", false, "emit mapping keys in lexicographic order")
	registerSchemaFlag(flags, f.schema)
	flags.BoolVarP(&f.write, "write", "w", false, "write the formatted result back to each file instead of stdout")
	return cmd
}

func (f *formatFlags) options() []yaml.Option {
	opts := []yaml.Option{
		yaml.WithIndent(f.indent),
		yaml.WithLineWidth(f.lineWidth),
		yaml.WithSchema(f.schema.String()),
	}
	if f.singleQuote {
		opts = append(opts, yaml.WithSingleQuote(true))
	}
	if f.sortMapEntries {
		opts = append(opts, yaml.WithSortMapEntries(nil))
	}
	return opts
}

func runFormat(f *formatFlags, paths []string) error {
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		doc := yaml.ParseDocument(string(src), f.options()...)
		if len(doc.Errors()) > 0 {
			return fmt.Errorf("%s: %s", path, doc.Errors()[0])
		}
		out, err := doc.Stringify()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if f.write {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			continue
		}
		fmt.Print(out)
	}
	return nil
}
