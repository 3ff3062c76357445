// Command genschema writes the JSON Schema of the awsdocs configuration file,
// for editor completion of *.awsdocs.yaml files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isaacphi/awsdocs/internal/config"
)

func main() {
	var outFile string
	var toStdout bool
	flag.StringVar(&outFile, "out", "awsdocs.schema.json", "Output file path")
	flag.BoolVar(&toStdout, "stdout", false, "Print the schema instead of writing a file")
	flag.Parse()

	if err := run(outFile, toStdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outFile string, toStdout bool) error {
	schema, err := config.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("error generating schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling schema: %w", err)
	}

	if toStdout {
		_, err := fmt.Println(string(data))
		return err
	}

	outFile, err = filepath.Abs(outFile)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", outFile, err)
	}

	dir := filepath.Dir(outFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("error writing schema to %s: %w", outFile, err)
	}
	fmt.Printf("Schema written to %s\n", outFile)
	return nil
}
