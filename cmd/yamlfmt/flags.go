package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// schemaFlag is a pflag.Value restricting --schema to the four presets
// spec.md section 6 enumerates, the way the teacher's cmd/go-yaml tool
// validates its own enum-shaped flags (stringSlice's Set) rather than
// leaving an arbitrary string to reach yaml.WithSchema unchecked.
type schemaFlag struct {
	name string
}

func newSchemaFlag(def string) *schemaFlag { return &schemaFlag{name: def} }

func (f *schemaFlag) String() string { return f.name }

func (f *schemaFlag) Set(v string) error {
	switch v {
	case "failsafe", "json", "core", "yaml-1.1":
		f.name = v
		return nil
	default:
		return fmt.Errorf("unknown schema %q (want failsafe, json, core, or yaml-1.1)", v)
	}
}

func (f *schemaFlag) Type() string { return "schema" }

func registerSchemaFlag(flags *pflag.FlagSet, f *schemaFlag) {
	flags.Var(f, "schema", "resolution schema: failsafe, json, core, yaml-1.1")
}
