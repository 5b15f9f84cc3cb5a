package releasefinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Release struct {
	URL string
	Tag string
}

type FailedToFindReleaseError struct {
	OS   string
	Arch string
}

func (e FailedToFindReleaseError) Error() string {
	return fmt.Sprintf("failed to find release for %s (arch: %s)", e.OS, e.Arch)
}

func Find(ctx context.Context, api, goos, arch string) (*Release, error) {
	client := http.Client{
		Timeout: 30 * time.Second, //nolint:gomnd
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, api, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create releases request")
	}

	//nolint:bodyclose
	resp, err := client.Do(request)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get releases")
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			log.Println(err)
		}
	}(resp.Body)

	return findRelease(resp.Body, goos, arch)
}

type releases struct {
	TagName string  `json:"tag_name"` //nolint:tagliatelle
	Assets  []asset `json:"assets"`
}

type asset struct {
	URL                string `json:"url"`
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"` //nolint:tagliatelle
}

func findRelease(reader io.Reader, goos string, arch string) (*Release, error) {
	r := []releases{}
	d := json.NewDecoder(reader)
	err := d.Decode(&r)
	if err != nil {
		return nil, err
	}

	for _, release := range r {
		for _, a := range release.Assets {
			if strings.Contains(a.Name, release.TagName+"-"+goos+"-"+arch) {
				return &Release{
					URL: a.BrowserDownloadURL,
					Tag: release.TagName,
				}, nil
			}
		}
	}

	return nil, FailedToFindReleaseError{goos, arch}
}
