package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
LogLevel: debug
Default: fast
Providers:
  - Name: fast
    Type: google
    Model: gemini-1.5-flash
    APIKey: ${TEST_GEMINI_KEY}
    Timeout: 10s
  - Name: smart
    Model: claude-3-5-sonnet-latest
    Temperature: 0.4
    MaxAttempts: 5
    RetryDelay: 250ms
`

func TestParseYAML(t *testing.T) {
	file, err := ParseYAML([]byte(yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, "debug", file.LogLevel)
	assert.Equal(t, "fast", file.Default)
	require.Len(t, file.Providers, 2)

	fast := file.Providers[0]
	assert.Equal(t, "google", fast.Type)
	assert.Equal(t, "gemini-1.5-flash", fast.Model)
	assert.Equal(t, "${TEST_GEMINI_KEY}", fast.APIKey)
	assert.Equal(t, "10s", fast.Timeout)

	smart := file.Providers[1]
	assert.Equal(t, "", smart.Type)
	assert.Equal(t, 0.4, smart.Temperature)
	assert.Equal(t, 5, smart.MaxAttempts)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("Providers:\n  - Name: a\n    Model: gpt-4o\n    Colour: blue\n"))
	require.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	file, err := ParseJSON([]byte(`{
		"Default": "gpt",
		"Providers": [{"Name": "gpt", "Type": "openai", "Model": "gpt-4o-mini", "MaxOutputTokens": 512}]
	}`))
	require.NoError(t, err)
	require.Len(t, file.Providers, 1)
	assert.Equal(t, "openai", file.Providers[0].Type)
	assert.Equal(t, 512, file.Providers[0].MaxOutputTokens)
}

func TestParseTOML(t *testing.T) {
	file, err := ParseTOML([]byte(`
LogLevel = "warn"

[[Providers]]
Name = "claude"
Type = "anthropic"
Model = "claude-3-haiku-20240307"
ChunkThreshold = 40
`))
	require.NoError(t, err)
	assert.Equal(t, "warn", file.LogLevel)
	require.Len(t, file.Providers, 1)
	assert.Equal(t, 40, file.Providers[0].ChunkThreshold)

	_, err = ParseTOML([]byte("[[Providers]]\nName = \"a\"\nModle = \"gpt-4o\"\n"))
	require.ErrorContains(t, err, "unknown configuration keys")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "llmkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))
	file, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, file.Providers, 2)

	other := filepath.Join(dir, "llmkit.ini")
	require.NoError(t, os.WriteFile(other, []byte("x=1"), 0o644))
	_, err = ParseFile(other)
	require.ErrorContains(t, err, "unsupported file extension")

	_, err = ParseFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
