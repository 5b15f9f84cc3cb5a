package sendlogs

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_redactSecrets(t *testing.T) {
	config := map[string]interface{}{
		"api_settings": map[string]interface{}{
			"tushare_token": "secret-token",
		},
		"serverchan_settings": map[string]interface{}{
			"sckey": "",
		},
		"wechat_settings": map[string]interface{}{
			"corp_id":     "w123",
			"corp_secret": "wechat-secret",
		},
		"monitoring": map[string]interface{}{
			"check_interval": 60,
		},
	}

	redactSecrets(config)

	apiSettings := config["api_settings"].(map[string]interface{})
	assert.Equal(t, "REDACTED", apiSettings["tushare_token"])

	// Empty secrets stay empty, non-secret values stay untouched.
	serverchan := config["serverchan_settings"].(map[string]interface{})
	assert.Equal(t, "", serverchan["sckey"])

	wechat := config["wechat_settings"].(map[string]interface{})
	assert.Equal(t, "w123", wechat["corp_id"])
	assert.Equal(t, "REDACTED", wechat["corp_secret"])

	monitoring := config["monitoring"].(map[string]interface{})
	assert.Equal(t, 60, monitoring["check_interval"])
}

func Test_compress(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("log line\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.log"), []byte("more\n"), 0644))

	buf := bytes.Buffer{}
	err := compress(dir, &buf)
	require.NoError(t, err)

	gr, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	tr := tar.NewReader(gr)

	names := map[string]string{}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		if header.FileInfo().IsDir() {
			continue
		}

		contents, err := io.ReadAll(tr)
		require.NoError(t, err)
		names[header.Name] = string(contents)
	}

	assert.Equal(t, "log line\n", names["a.log"])
	assert.Equal(t, "more\n", names["sub/b.log"])
}
