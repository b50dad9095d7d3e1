// Package enrich pulls descriptions and accepted taxonomy for plant records
// from external sources. Everything here is best-effort: a source that
// fails, rate-limits, or knows nothing yields an empty result, never an
// aborted run, and the reconciliation pipeline works identically with or
// without enrichment data.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

// Result is what one source knows about one taxon. Nil fields mean "no
// opinion"; callers treat absence as no change.
type Result struct {
	Source      string             `json:"source"`
	Description *string            `json:"description,omitempty"`
	Taxonomy    *internal.Taxonomy `json:"taxonomy,omitempty"`
}

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.EnrichTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.EnrichRateLimitRPS),
	}
}

// WikipediaSummary fetches the lead extract for a species page. A missing
// page is a nil result, not an error.
func (c *Client) WikipediaSummary(ctx context.Context, scientificName string) (*Result, error) {
	name := strings.TrimSpace(scientificName)
	if name == "" {
		return nil, nil
	}

	title := url.PathEscape(strings.ReplaceAll(name, " ", "_"))
	body, status, err := c.fetch(ctx, strings.TrimRight(c.cfg.WikipediaBaseURL, "/")+"/page/summary/"+title)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	var payload struct {
		Extract string `json:"extract"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	extract := strings.TrimSpace(payload.Extract)
	if extract == "" {
		return nil, nil
	}
	return &Result{Source: "wikipedia", Description: util.StringPtr(extract)}, nil
}

// GBIFMatch resolves a name against the GBIF backbone and returns the
// accepted taxonomy.
func (c *Client) GBIFMatch(ctx context.Context, scientificName string) (*Result, error) {
	name := strings.TrimSpace(scientificName)
	if name == "" {
		return nil, nil
	}

	u, err := url.Parse(strings.TrimRight(c.cfg.GBIFBaseURL, "/") + "/species/match")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()

	body, status, err := c.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	var payload struct {
		MatchType string `json:"matchType"`
		Kingdom   string `json:"kingdom"`
		Phylum    string `json:"phylum"`
		Class     string `json:"class"`
		Order     string `json:"order"`
		Family    string `json:"family"`
		Genus     string `json:"genus"`
		Species   string `json:"species"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.MatchType == "" || payload.MatchType == "NONE" {
		return nil, nil
	}

	taxonomy := &internal.Taxonomy{
		Kingdom: optional(payload.Kingdom),
		Phylum:  optional(payload.Phylum),
		Class:   optional(payload.Class),
		Order:   optional(payload.Order),
		Family:  optional(payload.Family),
		Genus:   optional(payload.Genus),
		Species: optional(payload.Species),
	}
	if taxonomy.PopulatedRanks() == 0 {
		return nil, nil
	}
	return &Result{Source: "gbif", Taxonomy: taxonomy}, nil
}

// fetch runs a rate-limited GET with retries on transient failures. 404 is
// returned to the caller (a legitimate "unknown taxon" answer); other
// non-2xx statuses are errors after retries are exhausted.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, int, error) {
	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, 0, err
		}
		req.Header.Set("Accept", "application/json, text/html")
		req.Header.Set("User-Agent", "terrarium-index/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, resp.StatusCode, nil
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("enrichment status %d", resp.StatusCode)
				continue
			}
			return nil, resp.StatusCode, fmt.Errorf("enrichment source error: status=%d url=%s", resp.StatusCode, rawURL)
		}

		return body, resp.StatusCode, nil
	}

	if lastErr == nil {
		lastErr = errors.New("enrichment request failed")
	}
	return nil, 0, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
