package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsdesk/pkg/config"
)

type options struct {
	Output string `short:"o" long:"output" default:"pkg/config/schema.json" description:"schema output file"`
	Stdout bool   `long:"stdout" description:"print schema to stdout instead of writing the file"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	data, err := generate()
	if err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}

	if opts.Stdout {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(opts.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		lgr.Fatalf("[ERROR] failed to write schema file: %v", err)
	}
	fmt.Printf("schema for newsdesk config written to %s\n", opts.Output)
}

// generate reflects config.Config into an indented json schema
func generate() ([]byte, error) {
	schema, err := config.GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
