package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level property of the schema must be present in the marshaled config
	if err := checkTopLevel(schema, configMap); err != nil {
		return err
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkTopLevel makes sure the embedded schema and Config did not drift apart
func checkTopLevel(schema, configMap map[string]interface{}) error {
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no $defs")
	}
	cfgDef, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	props, ok := cfgDef["properties"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema Config definition has no properties")
	}
	for name := range props {
		if _, found := configMap[name]; !found {
			return fmt.Errorf("config is missing schema property %q", name)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Fetch.Timeout == 0 {
		return fmt.Errorf("fetch.timeout is required")
	}
	for name, urls := range cfg.Sections {
		for i, u := range urls {
			if u == "" {
				return fmt.Errorf("sections.%s[%d]: empty feed url", name, i)
			}
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
