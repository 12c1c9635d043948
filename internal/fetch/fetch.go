// Package fetch retrieves dataset and notes text from local files or
// HTTP(S) URLs.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// MaxBodySize caps how much of a source is read.
const MaxBodySize = 10 * 1024 * 1024

var (
	// ErrTooLarge is returned when a source exceeds MaxBodySize.
	ErrTooLarge = errors.New("fetch: body exceeds size limit")

	bom = []byte("\xef\xbb\xbf")
)

// StatusError is returned for non-200 HTTP responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher resolves catalog paths. Relative paths resolve against BaseURL
// when it is set, otherwise against BaseDir.
type Fetcher struct {
	Client  *http.Client
	BaseDir string
	BaseURL string
	Logger  *slog.Logger

	// Now stamps the cache-busting query parameter.
	Now func() time.Time
}

// New returns a Fetcher with an HTTP client using the given timeout.
func New(baseDir, baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:  &http.Client{Timeout: timeout},
		BaseDir: baseDir,
		BaseURL: baseURL,
	}
}

// Fetch returns the bytes behind path with any UTF-8 BOM removed. HTML
// responses are reduced to their readable text.
func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	u, err := f.resolve(path)
	if err != nil {
		return nil, err
	}

	var data []byte
	if u != nil {
		data, err = f.fetchHTTP(ctx, u)
	} else {
		data, err = f.readFile(path)
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(data, bom), nil
}

// Text is Fetch returning a string.
func (f *Fetcher) Text(ctx context.Context, path string) (string, error) {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolve returns the URL for path, or nil when path is a local file.
func (f *Fetcher) resolve(path string) (*url.URL, error) {
	if isRemote(path) {
		return url.Parse(path)
	}
	if f.BaseURL == "" {
		return nil, nil
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	return base.ResolveReference(ref), nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && f.BaseDir != "" {
		path = filepath.Join(f.BaseDir, path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if fi.Size() > MaxBodySize {
		return nil, fmt.Errorf("fetch %s: %w", path, ErrTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	return data, nil
}

// withCacheBust adds a v=<unix millis> query parameter so that proxies and
// CDNs return the current version of the file.
func (f *Fetcher) withCacheBust(u *url.URL) *url.URL {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	out := *u
	q := out.Query()
	q.Set("v", strconv.FormatInt(now().UnixMilli(), 10))
	out.RawQuery = q.Encode()
	return &out
}

func (f *Fetcher) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	target := f.withCacheBust(u)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
	}
	if resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("fetch %s: %w", u, ErrTooLarge)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("fetch %s: %w", u, ErrTooLarge)
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		article, err := readability.FromReader(bytes.NewReader(body), u)
		if err != nil {
			return nil, fmt.Errorf("extract text from %s: %w", u, err)
		}
		if f.Logger != nil {
			f.Logger.Debug("extracted readable text", "url", u.String(), "title", article.Title, "chars", len(article.TextContent))
		}
		return []byte(article.TextContent), nil
	}
	return body, nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}
