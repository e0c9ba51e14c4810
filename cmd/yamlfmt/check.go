package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fearthecowboy/yaml"
)

func newCheckCmd() *cobra.Command {
	schemaName := newSchemaFlag("core")
	cmd := &cobra.Command{
		Use:   "check <file> [file2 ...]",
		Short: "Parse YAML files and report syntactic/resolution errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(schemaName.String(), args)
		},
	}
	registerSchemaFlag(cmd.Flags(), schemaName)
	return cmd
}

func runCheck(schemaName string, paths []string) error {
	failed := false
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		doc := yaml.ParseDocument(string(src), yaml.WithSchema(schemaName))
		for _, e := range doc.Errors() {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", path, e)
		}
		for _, w := range doc.Warnings() {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, w)
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed to parse cleanly")
	}
	return nil
}
