package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultHTTPTimeout bounds a catalog download.
const DefaultHTTPTimeout = 30 * time.Second

// maxCatalogBytes caps a downloaded catalog document.
const maxCatalogBytes = 16 << 20

// FetchError describes a failed catalog download.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// HTTPSource downloads the catalog from an http(s) URL.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Headers map[string]string
}

// NewHTTPSource validates rawURL and returns a source with the default timeout.
func NewHTTPSource(rawURL string) (*HTTPSource, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &FetchError{URL: rawURL, Message: "invalid URL", Cause: err}
	}
	return &HTTPSource{URL: rawURL, Client: &http.Client{Timeout: DefaultHTTPTimeout}}, nil
}

// Load performs a GET and returns the body of a 200 response.
func (s *HTTPSource) Load(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range s.Headers {
		req.Header.Set(key, value)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: s.URL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, &FetchError{URL: s.URL, Message: "failed to read response body", Cause: err}
	}
	if len(data) > maxCatalogBytes {
		return nil, &FetchError{URL: s.URL, Message: "catalog exceeds size limit"}
	}
	return data, nil
}

func (s *HTTPSource) String() string { return s.URL }
