package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"github.com/svsports/dugoutpulse/internal/worker"
)

const maxBodyBytes = 4 << 20

// httpSource is the shared transport for all adapters: one client, one
// User-Agent, one per-host rate limiter.
type httpSource struct {
	client    *http.Client
	userAgent string
	limiter   *worker.Limiter
}

func newHTTPSource(timeout time.Duration, userAgent string, limiter *worker.Limiter) *httpSource {
	return &httpSource{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		limiter:   limiter,
	}
}

// get fetches rawURL honoring the per-host rate limit. Network failures and
// 5xx responses come back as TransientError; 404/410 as ErrNotFound.
func (s *httpSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := s.limiter.Wait(ctx, rawURL); err != nil {
		return nil, Transient(fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json,text/html;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, Transient(fmt.Errorf("fetch %s: %w", rawURL, err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, Transient(fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, Transient(fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// getJSON fetches and decodes a JSON payload. A body that does not decode
// is a transient failure, not a crash: feeds drift.
func (s *httpSource) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	body, err := s.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return Transient(fmt.Errorf("decode %s: %w", rawURL, err))
	}
	return nil
}

// getHTML fetches and parses an HTML document.
func (s *httpSource) getHTML(ctx context.Context, rawURL string) (*html.Node, error) {
	body, err := s.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, Transient(fmt.Errorf("parse %s: %w", rawURL, err))
	}
	return doc, nil
}
