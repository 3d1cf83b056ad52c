// Command lazycalc evaluates lazy expression definitions from YAML files.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
