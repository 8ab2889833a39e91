package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"resty.dev/v3"
)

var ErrStatus = errors.New("unexpected status")

// Fetcher opens a named resource relative to the asset base path.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewFetcher picks an HTTP source for http(s) base paths and a directory
// source otherwise.
func NewFetcher(base string) Fetcher {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return NewHTTPFetcher(base)
	}
	return NewFSFetcher(os.DirFS(base))
}

type fsFetcher struct {
	fsys fs.FS
}

func NewFSFetcher(fsys fs.FS) Fetcher {
	return &fsFetcher{fsys: fsys}
}

func (f *fsFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.fsys.Open(path.Clean(name))
}

type httpFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(baseURL string) Fetcher {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("User-Agent", "crossfade")

	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	res, err := f.client.R().SetContext(ctx).Get("/" + path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w: %s", name, ErrStatus, res.Status())
	}
	return io.NopCloser(bytes.NewReader(res.Bytes())), nil
}
