package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/lazy/yaml"
)

var (
	runParams []string
	runDocs   []string
	runDryRun bool
)

// runCmd evaluates a definition once with the given bindings.
var runCmd = &cobra.Command{
	Use:   "run <file.yaml>",
	Short: "Evaluate an expression definition",
	Long: `Load an expression definition from a YAML file, bind its parameters
and documents, and evaluate it once.`,
	Example: `  # Evaluate with two parameters
  lazycalc run magnitude.yaml --param x=5 --param y=12

  # Bind a JSON document read by jsonpath nodes
  lazycalc run reading.yaml --doc telemetry=data.json

  # Validate without evaluating
  lazycalc run magnitude.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDefinition(args[0])
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runParams, "param", nil, "Parameter binding as name=value (repeatable)")
	runCmd.Flags().StringArrayVar(&runDocs, "doc", nil, "Document binding as name=file.json (repeatable)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Validate the definition without evaluating")

	rootCmd.AddCommand(runCmd)
}

func runDefinition(path string) error {
	def, err := yaml.NewParser().ParseFile(path)
	if err != nil {
		return err
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid definition: %w", err)
	}

	if verbose {
		log.Printf("loaded definition: %s", def.Name)
		if def.Description != "" {
			log.Printf("description: %s", def.Description)
		}
	}

	if runDryRun {
		fmt.Println("Definition validation successful (dry run)")
		return nil
	}

	var opts []yaml.LoaderOption
	if verbose {
		opts = append(opts, yaml.WithVerbose())
	}

	graph, err := yaml.NewLoader(opts...).Load(def)
	if err != nil {
		return err
	}

	if err := bindParams(graph, runParams); err != nil {
		return err
	}
	if err := bindDocs(graph, runDocs); err != nil {
		return err
	}

	result, err := graph.Evaluate(context.Background())
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", graph.Name, err)
	}

	return printResult(graph.Name, result)
}

// bindParams applies --param name=value flags to the graph.
func bindParams(graph *yaml.Graph, flags []string) error {
	for _, flag := range flags {
		name, raw, err := splitBinding(flag)
		if err != nil {
			return fmt.Errorf("--param %q: %w", flag, err)
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("--param %q: value is not a number: %w", flag, err)
		}

		if err := graph.SetParam(name, value); err != nil {
			return err
		}
		if verbose {
			log.Printf("bound parameter %s = %v", name, value)
		}
	}
	return nil
}

// bindDocs applies --doc name=file.json flags to the graph.
func bindDocs(graph *yaml.Graph, flags []string) error {
	for _, flag := range flags {
		name, path, err := splitBinding(flag)
		if err != nil {
			return fmt.Errorf("--doc %q: %w", flag, err)
		}

		doc, ok := graph.Docs[name]
		if !ok {
			return fmt.Errorf("--doc %q: unknown document %q", flag, name)
		}

		raw, err := os.ReadFile(path) // #nosec G304 - user-provided document file
		if err != nil {
			return fmt.Errorf("--doc %q: %w", flag, err)
		}
		if err := doc.SetJSON(raw); err != nil {
			return fmt.Errorf("--doc %q: %w", flag, err)
		}
		if verbose {
			log.Printf("bound document %s from %s", name, path)
		}
	}
	return nil
}
