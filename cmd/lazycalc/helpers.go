package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	goyaml "github.com/goccy/go-yaml"
)

// splitBinding splits a name=value flag at the first equals sign.
func splitBinding(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value")
	}
	return name, value, nil
}

// printResult writes an evaluation result in the selected output format.
func printResult(name string, result float64) error {
	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(map[string]any{
			"name":   name,
			"result": result,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))

	case yamlFormat:
		data, err := goyaml.Marshal(map[string]any{
			"name":   name,
			"result": result,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Print(string(data))

	default: // text
		fmt.Println(strconv.FormatFloat(result, 'g', -1, 64))
	}

	return nil
}
