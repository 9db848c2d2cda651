// Package vlr fetches vlr.gg-shaped tournament and match report pages and
// extracts raw scoreboard rows. All markup selection lives here so an
// upstream layout revision only ever touches this package.
package vlr

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/vlrfantasy/backend/internal/platform/logging"
	"github.com/vlrfantasy/backend/internal/usecase"
)

const (
	defaultBaseURL   = "https://www.vlr.gg"
	defaultUserAgent = "vlrfantasy-importer/1.0"
	defaultTimeout   = 20 * time.Second
)

type ClientConfig struct {
	HTTPClient *resty.Client
	BaseURL    string
	EventID    string
	EventSlug  string
	Timeout    time.Duration
	UserAgent  string
	Logger     *logging.Logger
}

// Client implements usecase.MatchSource against one configured event.
type Client struct {
	http      *resty.Client
	baseURL   string
	eventID   string
	eventSlug string
	logger    *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resty.New()
	}
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", userAgent)

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		eventID:   strings.TrimSpace(cfg.EventID),
		eventSlug: strings.TrimSpace(cfg.EventSlug),
		logger:    logger,
	}
}

// DiscoverMatches scans the event listing for match anchors and returns
// their identifiers in first-seen order without duplicates. Any listing
// failure is logged and yields an empty result: nothing to import.
func (c *Client) DiscoverMatches(ctx context.Context) ([]string, error) {
	listingURL := fmt.Sprintf("%s/event/matches/%s/%s/?series_id=all", c.baseURL, c.eventID, c.eventSlug)

	resp, err := c.http.R().SetContext(ctx).Get(listingURL)
	if err != nil {
		c.logger.WarnContext(ctx, "event listing fetch failed", "url", listingURL, "error", err)
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.WarnContext(ctx, "event listing returned non-success status",
			"url", listingURL, "status", resp.StatusCode())
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		c.logger.WarnContext(ctx, "event listing not parseable", "url", listingURL, "error", err)
		return nil, nil
	}

	ids := matchIDsFromListing(doc)
	c.logger.InfoContext(ctx, "matches discovered", "event_id", c.eventID, "count", len(ids))

	return ids, nil
}

// FetchMatchRows retrieves one match report page and extracts its
// aggregate scoreboard rows across both sides.
func (c *Client) FetchMatchRows(ctx context.Context, matchID string) ([]usecase.ScoreboardRow, error) {
	matchURL := fmt.Sprintf("%s/%s/", c.baseURL, strings.TrimSpace(matchID))

	resp, err := c.http.R().SetContext(ctx).Get(matchURL)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "get %s", matchURL), usecase.ErrMatchFetch)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, crerr.Mark(crerr.Newf("get %s: status=%d", matchURL, resp.StatusCode()), usecase.ErrMatchFetch)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "parse %s", matchURL), usecase.ErrScoreboardExtract)
	}

	return scoreboardRows(doc)
}

// matchIDsFromListing extracts the leading numeric path segment of every
// anchor. Anchors without one (player pages, team pages, navigation) are
// skipped; duplicates keep their first position.
func matchIDsFromListing(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var ids []string

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		id, ok := matchIDFromHref(href)
		if !ok {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	})

	return ids
}

func matchIDFromHref(href string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}

	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment == "" {
			continue
		}
		if !allDigits(segment) {
			return "", false
		}
		return segment, true
	}

	return "", false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
