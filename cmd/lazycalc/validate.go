package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/lazy/yaml"
)

// validateCmd checks a definition without evaluating it.
var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Validate an expression definition",
	Long: `Check a definition against the definition schema, verify its structure,
and compile its JSONPath expressions without evaluating anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := yaml.NewParser().ParseFile(args[0])
		if err != nil {
			return err
		}
		if err := def.Validate(); err != nil {
			return err
		}

		// Loading compiles JSONPath expressions, catching bad paths early.
		graph, err := yaml.NewLoader().Load(def)
		if err != nil {
			return err
		}

		fmt.Printf("%s: valid (%d parameters, %d documents)\n",
			graph.Name, len(graph.Params), len(graph.Docs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
