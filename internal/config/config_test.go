package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasClassicPromptAndSpecRandSequence(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "> ", cfg.Prompt)
	assert.True(t, cfg.Color)
	assert.False(t, cfg.Debug)
	assert.Equal(t, []float64{57, 97, 28, 7, 71, 1, 79, 83, 64, 82, 89, 24}, cfg.RandSequence)
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load("/nonexistent/govox-config-does-not-exist.json")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecode_OverridesDefaultsFromJSON(t *testing.T) {
	cfg, err := decode(strings.NewReader(`{"prompt": "govox> ", "color": false, "debug": true}`))
	require.NoError(t, err)
	assert.Equal(t, "govox> ", cfg.Prompt)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.Debug)
	// rand_sequence absent from the JSON keeps the default.
	assert.Equal(t, Default().RandSequence, cfg.RandSequence)
}

func TestDecode_MalformedJSONIsAnError(t *testing.T) {
	_, err := decode(strings.NewReader(`{not json`))
	assert.Error(t, err)
}
