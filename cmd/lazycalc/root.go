package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Output format names for the --output flag.
const (
	textFormat = "text"
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	// Global flags.
	verbose bool
	output  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lazycalc",
	Short: "Evaluate deferred expression definitions",
	Long: `Lazycalc builds and evaluates lazy expression graphs defined in YAML.

A definition describes an arithmetic expression tree whose leaves can be
literals, named parameters bound on the command line, Lua transforms, or
JSONPath extractions from JSON documents.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&output, "output", textFormat, "Output format (text, json, yaml)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
