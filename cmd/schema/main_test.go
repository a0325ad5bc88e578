package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	data, err := generate()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)
	cfg, ok := defs["Config"].(map[string]any)
	require.True(t, ok)
	props, ok := cfg["properties"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"server", "database", "fetch", "sections", "settings"} {
		assert.Contains(t, props, name)
	}
}
