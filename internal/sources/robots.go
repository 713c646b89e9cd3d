package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsChecker caches robots.txt verdicts per host. Only the scraping
// adapters consult it; the JSON APIs are published for machine use.
type robotsChecker struct {
	src       *httpSource
	userAgent string
	cache     map[string]*robotstxt.RobotsData
	mu        sync.RWMutex
}

func newRobotsChecker(src *httpSource, userAgent string) *robotsChecker {
	return &robotsChecker{
		src:       src,
		userAgent: userAgent,
		cache:     make(map[string]*robotstxt.RobotsData),
	}
}

// canFetch reports whether rawURL may be scraped and any advertised crawl
// delay. An unreachable robots.txt allows by default.
func (r *robotsChecker) canFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	data, err := r.robotsData(ctx, parsed)
	if err != nil {
		return true, 0, nil
	}

	allowed := data.TestAgent(parsed.Path, r.userAgent)
	var delay time.Duration
	if group := data.FindGroup(r.userAgent); group != nil {
		delay = group.CrawlDelay
	}
	return allowed, delay, nil
}

func (r *robotsChecker) robotsData(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	data, exists := r.cache[u.Host]
	r.mu.RUnlock()
	if exists {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	body, err := r.src.get(ctx, robotsURL)
	if errors.Is(err, ErrNotFound) {
		body = nil // no robots.txt: everything allowed
	} else if err != nil {
		return nil, err
	}

	data, err = robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.mu.Lock()
	r.cache[u.Host] = data
	r.mu.Unlock()
	return data, nil
}
