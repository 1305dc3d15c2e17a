package locusplot

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carbocation/pfx"
)

// DefaultFetchTimeout bounds each remote fetch so an unresponsive host cannot
// hang the pipeline.
var DefaultFetchTimeout = 1 * time.Minute

// OpenFileOrURL reads the full contents of a local file or, if input starts
// with http, of a remote resource. Remote failures are reported as a
// *FetchError.
func OpenFileOrURL(input string, timeout time.Duration) ([]byte, error) {
	var f io.ReadCloser

	if strings.HasPrefix(input, "http") {
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		client := &http.Client{Timeout: timeout}

		resp, err := client.Get(input)
		if err != nil {
			return nil, &FetchError{URL: input, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &FetchError{URL: input, Err: fmt.Errorf("status %s", resp.Status)}
		}

		f = resp.Body
	} else {
		file, err := os.Open(ExpandHome(input))
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer file.Close()

		f = file
	}

	return io.ReadAll(f)
}

// CacheFetch downloads url into cacheDir and returns the local path. If the
// file was fetched on a prior run it is reused rather than re-downloaded.
// Local (non-http) inputs are returned unchanged.
func CacheFetch(url, cacheDir string, timeout time.Duration) (string, error) {
	if !strings.HasPrefix(url, "http") {
		return ExpandHome(url), nil
	}

	if cacheDir == "" {
		cacheDir = os.TempDir()
	}
	cacheDir = ExpandHome(cacheDir)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", pfx.Err(err)
	}

	// The URL hash disambiguates identically named files from different hosts.
	sum := sha256.Sum256([]byte(url))
	local := filepath.Join(cacheDir, fmt.Sprintf("%x_%s", sum[:4], filepath.Base(url)))

	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	fileBytes, err := OpenFileOrURL(url, timeout)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(local, fileBytes, 0644); err != nil {
		return "", pfx.Err(err)
	}

	return local, nil
}
