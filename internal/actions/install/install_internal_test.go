package install

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockmon/stockmonctl/pkg/stockmon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleConfig = `{
    "api_settings": {
        "tushare_token": ""
    },
    "monitoring": {
        "check_interval": 60
    }
}`

func prepareCheckout(t *testing.T) installState {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, stockmon.ConfigExampleFileName),
		[]byte(exampleConfig),
		0644,
	)
	require.NoError(t, err)

	return installState{
		Path:       dir,
		SkipEditor: true,
	}
}

func Test_materializeConfig_copiesTemplate(t *testing.T) {
	state := prepareCheckout(t)

	_, err := materializeConfig(context.Background(), state)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(state.Path, stockmon.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, exampleConfig, string(contents))
}

func Test_materializeConfig_doesNotOverwriteExisting(t *testing.T) {
	state := prepareCheckout(t)

	configPath := filepath.Join(state.Path, stockmon.ConfigFileName)
	err := os.WriteFile(configPath, []byte(`{"api_settings":{"tushare_token":"secret"}}`), 0644)
	require.NoError(t, err)

	_, err = materializeConfig(context.Background(), state)
	require.NoError(t, err)

	contents, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, `{"api_settings":{"tushare_token":"secret"}}`, string(contents))
}

func Test_materializeConfig_secondRunKeepsFirstResult(t *testing.T) {
	state := prepareCheckout(t)

	_, err := materializeConfig(context.Background(), state)
	require.NoError(t, err)

	configPath := filepath.Join(state.Path, stockmon.ConfigFileName)
	first, err := os.ReadFile(configPath)
	require.NoError(t, err)

	_, err = materializeConfig(context.Background(), state)
	require.NoError(t, err)

	second, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func Test_materializeConfig_missingTemplate(t *testing.T) {
	state := installState{
		Path:       t.TempDir(),
		SkipEditor: true,
	}

	_, err := materializeConfig(context.Background(), state)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config template")
}

func Test_relocateCheckout_stripsArchiveRoot(t *testing.T) {
	extracted := t.TempDir()
	root := filepath.Join(extracted, "stock-monitor-main")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, stockmon.EntryPointFileName), []byte("print()\n"), 0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, stockmon.ConfigExampleFileName), []byte(exampleConfig), 0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "data", "watchlist.csv"), []byte("600000\n"), 0644,
	))

	dst := filepath.Join(t.TempDir(), "checkout")
	require.NoError(t, relocateCheckout(extracted, dst))

	assert.FileExists(t, filepath.Join(dst, stockmon.EntryPointFileName))
	assert.FileExists(t, filepath.Join(dst, stockmon.ConfigExampleFileName))
	assert.FileExists(t, filepath.Join(dst, "data", "watchlist.csv"))
	assert.NoFileExists(t, filepath.Join(dst, "stock-monitor-main", stockmon.EntryPointFileName))
}

func Test_relocateCheckout_flatArchive(t *testing.T) {
	extracted := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(extracted, stockmon.EntryPointFileName), []byte("print()\n"), 0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(extracted, stockmon.RequirementsFileName), []byte("tushare\n"), 0644,
	))

	dst := filepath.Join(t.TempDir(), "checkout")
	require.NoError(t, relocateCheckout(extracted, dst))

	assert.FileExists(t, filepath.Join(dst, stockmon.EntryPointFileName))
	assert.FileExists(t, filepath.Join(dst, stockmon.RequirementsFileName))
}

func Test_seedConfigToken(t *testing.T) {
	state := prepareCheckout(t)
	state.Token = "my-tushare-token"

	_, err := materializeConfig(context.Background(), state)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(state.Path, stockmon.ConfigFileName))
	require.NoError(t, err)

	config := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(contents, &config))

	apiSettings, ok := config["api_settings"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "my-tushare-token", apiSettings["tushare_token"])

	monitoring, ok := config["monitoring"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 60, monitoring["check_interval"])
}
