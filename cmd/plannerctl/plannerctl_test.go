package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/models/response_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/utils"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range services.AllowedSettingKeys() {
		t.Setenv(k, "")
	}
	t.Setenv("SETTINGS_FILE", "")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSuggest_MockProvider(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "local.json")

	out, _, err := runCLI(t, "suggest", "--settings", settings, "--provider", "mock",
		"--destination", "Chengdu", "--start", "2025-04-01", "--end", "2025-04-02", "--party-size", "2")
	require.NoError(t, err)

	var got suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Itinerary)
	assert.Equal(t, "Chengdu", got.Itinerary.Destination)
	assert.Len(t, got.Itinerary.Days, 2)
	assert.Equal(t, 2, got.Itinerary.PartySize)
	assert.Equal(t, uint64(1), got.Metrics.Success)
}

func TestSuggest_Failures(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "local.json")

	_, _, err := runCLI(t, "suggest", "--settings", settings, "--provider", "nope",
		"--destination", "Chengdu", "--start", "2025-04-01", "--end", "2025-04-02")
	assert.EqualError(t, err, `unknown --provider "nope"`)

	_, stderr, err := runCLI(t, "suggest", "--settings", settings, "--provider", "mock",
		"--destination", "Chengdu", "--start", "2025-04-03", "--end", "2025-04-01")
	require.Error(t, err)
	assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))
	assert.Contains(t, stderr, `"total_generations": 0`)

	_, _, err = runCLI(t, "suggest", "--settings", settings, "--destination", "Chengdu")
	assert.Error(t, err)
}

func TestBudget_Heuristic(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "local.json")

	out, _, err := runCLI(t, "budget", "--settings", settings,
		"--destination", "Shanghai", "--start", "2025-01-10", "--end", "2025-01-12")
	require.NoError(t, err)

	var est response_models.BudgetEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 1650.0, est.Total)
	assert.Equal(t, 1, est.PartySize)
}

func TestSettings_SetAndGet(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "config", "local.json")

	out, _, err := runCLI(t, "settings", "--settings", settings, "set", "LLM_PROVIDER=openai", "OPENAI_API_KEY=sk-live-9876", "LLM_MAX_RETRIES=4")
	require.NoError(t, err)
	assert.Contains(t, out, `"OPENAI_API_KEY": "****9876"`)

	raw, err := os.ReadFile(settings)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sk-live-9876")

	out, _, err = runCLI(t, "settings", "--settings", settings, "get", "--reveal")
	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "sk-live-9876", got["OPENAI_API_KEY"])
	assert.Equal(t, 4.0, got["LLM_MAX_RETRIES"])

	_, _, err = runCLI(t, "settings", "--settings", settings, "set", "LLM_MAX_RETRIES=9")
	require.Error(t, err)
	assert.Equal(t, "LLM_MAX_RETRIES must be between 0 and 5", utils.MessageOf(err))

	_, _, err = runCLI(t, "settings", "--settings", settings, "set", "OPENAI_API_KEY=")
	require.NoError(t, err)
	out, _, err = runCLI(t, "settings", "--settings", settings, "get")
	require.NoError(t, err)
	assert.NotContains(t, out, "OPENAI_API_KEY")
}
