package sources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/worker"
)

// NCAAOrgAdapter scrapes stats.ncaa.org box scores. Last in the chain:
// broadest coverage, least reliable markup. It honors robots.txt and any
// advertised crawl delay since the site is a shared public resource.
type NCAAOrgAdapter struct {
	teamPages map[string]string // school -> schedule page URL
	src       *httpSource
	robots    *robotsChecker
	limiter   *worker.Limiter
	log       zerolog.Logger
	today     func() time.Time
}

func NewNCAAOrgAdapter(teamPages map[string]string, src *httpSource, limiter *worker.Limiter, log zerolog.Logger) *NCAAOrgAdapter {
	return &NCAAOrgAdapter{
		teamPages: teamPages,
		src:       src,
		robots:    newRobotsChecker(src, src.userAgent),
		limiter:   limiter,
		log:       log.With().Str("adapter", "ncaa.org").Logger(),
		today:     time.Now,
	}
}

func (a *NCAAOrgAdapter) Name() string { return "ncaa.org" }

func (a *NCAAOrgAdapter) Fetch(ctx context.Context, athlete model.Athlete) (*model.StatLine, error) {
	pageURL, ok := a.teamPages[athlete.Org]
	if !ok {
		return nil, ErrNotFound
	}

	allowed, delay, err := a.robots.canFetch(ctx, pageURL)
	if err != nil {
		return nil, Transient(err)
	}
	if !allowed {
		a.log.Warn().Str("school", athlete.Org).Msg("robots.txt disallows scraping; skipping source")
		return nil, ErrNotFound
	}
	if delay > 0 {
		if host, err := hostOf(pageURL); err == nil {
			a.limiter.SetHostRate(host, 1/delay.Seconds(), 1)
		}
	}

	schedule, err := a.src.getHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	boxURL := a.findTodaysBoxScore(schedule, pageURL)
	if boxURL == "" {
		return nil, ErrNotFound
	}

	box, err := a.src.getHTML(ctx, boxURL)
	if err != nil {
		return nil, err
	}

	line := extractFromTables(findStatTables(box), athlete.Name, a.today().Format("2006-01-02"))
	if line == nil {
		return nil, ErrNotFound
	}
	line.GameStatus = "Final"
	return line, nil
}

// findTodaysBoxScore scans the schedule page for a box score link in a row
// that carries today's date (the site renders MM/DD/YYYY).
func (a *NCAAOrgAdapter) findTodaysBoxScore(doc *html.Node, base string) string {
	date := a.today().Format("01/02/2006")
	for _, tr := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "tr"
	}) {
		if !strings.Contains(nodeText(tr), date) {
			continue
		}
		for _, anchor := range findAll(tr, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "a"
		}) {
			href := attrValue(anchor, "href")
			if strings.Contains(href, "box_score") {
				return resolveRef(base, href)
			}
		}
	}
	return ""
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}

func resolveRef(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
