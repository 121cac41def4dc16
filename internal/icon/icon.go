// Package icon resolves and downloads weather condition icons.
package icon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"resty.dev/v3"
)

// DefaultBaseURL is the icon host used by the weather provider.
const DefaultBaseURL = "http://openweathermap.org/img/wn"

var (
	ErrInvalidCode = errors.New("invalid icon code")
	ErrNoCache     = errors.New("icon cache directory is not configured")

	codePattern = regexp.MustCompile(`^[0-9a-z]+$`)
)

// URL returns the 2x PNG URL of an icon code, e.g. ".../50d@2x.png".
func URL(baseURL, code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s@2x.png", strings.TrimRight(baseURL, "/"), code)
}

// Fetcher downloads icons into a FileCache.
type Fetcher struct {
	baseURL    string
	httpClient *resty.Client
	fileCache  *FileCache
}

// NewFetcher creates a fetcher. An empty cacheDirectory disables downloads.
func NewFetcher(baseURL, cacheDirectory string) *Fetcher {
	fetcher := &Fetcher{
		baseURL:    baseURL,
		httpClient: resty.New(),
	}
	if cacheDirectory != "" {
		fetcher.fileCache = NewFileCache(cacheDirectory)
	}
	return fetcher
}

func (f *Fetcher) Close() error {
	return f.httpClient.Close()
}

func (f *Fetcher) URL(code string) string {
	return URL(f.baseURL, code)
}

// Fetch downloads the icon unless it is already cached and returns its local path.
func (f *Fetcher) Fetch(ctx context.Context, code string) (string, error) {
	if !codePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	if f.fileCache == nil {
		return "", ErrNoCache
	}

	return f.fileCache.cache(code, func() ([]byte, error) {
		res, err := f.httpClient.R().
			SetContext(ctx).
			Get(f.URL(code))
		if err != nil {
			return nil, fmt.Errorf("client.R.Get > %w", err)
		}
		if res.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), res.String())
		}
		return res.Bytes(), nil
	})
}
