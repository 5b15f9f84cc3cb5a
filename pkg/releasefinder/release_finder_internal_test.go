package releasefinder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releasesJSON = `[
  {
    "tag_name": "v1.2.0",
    "assets": [
      {
        "name": "stockmonctl-v1.2.0-linux-amd64.tar.gz",
        "browser_download_url": "https://example.com/stockmonctl-v1.2.0-linux-amd64.tar.gz"
      },
      {
        "name": "stockmonctl-v1.2.0-linux-arm64.tar.gz",
        "browser_download_url": "https://example.com/stockmonctl-v1.2.0-linux-arm64.tar.gz"
      }
    ]
  }
]`

func Test_findRelease(t *testing.T) {
	release, err := findRelease(strings.NewReader(releasesJSON), "linux", "amd64")

	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", release.Tag)
	assert.Equal(t, "https://example.com/stockmonctl-v1.2.0-linux-amd64.tar.gz", release.URL)
}

func Test_findRelease_notFound(t *testing.T) {
	_, err := findRelease(strings.NewReader(releasesJSON), "linux", "mips")

	require.Error(t, err)
	assert.ErrorAs(t, err, &FailedToFindReleaseError{})
}
