// Command pointschema пишет JSON schema для ассетов: файла особых точек
// (по умолчанию) или карты песочницы.
package main

import (
	"accessible-tiles/internal/sandbox"
	"accessible-tiles/internal/tracker/providers"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

func main() {
	var outPath, kind string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.StringVar(&kind, "kind", "points", "asset kind: points or map")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema, err := buildSchema(kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema(kind string) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{}

	switch kind {
	case "points":
		schema := reflector.Reflect(new(providers.SpecialPointsFile))
		schema.Title = "Special points"
		schema.Description = "Points of interest per location, keyed by location name"
		return schema, nil
	case "map":
		reflector.AllowAdditionalProperties = true
		schema := reflector.Reflect(new(sandbox.MapFile))
		schema.Title = "Sandbox map"
		schema.Description = "Locations, warps and characters of the headless sandbox world"
		return schema, nil
	}
	return nil, fmt.Errorf("unknown asset kind %q", kind)
}

// writeSchema пишет во временный файл и переименовывает, чтобы не оставить
// полузаписанную схему.
func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
