package enrich

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testConfig() config.Config {
	return config.Config{
		WikipediaBaseURL:     "https://wiki.test/api/rest_v1",
		GBIFBaseURL:          "https://gbif.test/v1",
		ArafloraBaseURL:      "https://araflora.test",
		GrowTropicalsBaseURL: "https://growtropicals.test",
		EnrichRateLimitRPS:   1000,
		EnrichTimeoutMs:      5000,
	}
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestWikipediaSummaryRetriesTransientFailure(t *testing.T) {
	attempt := 0
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if !strings.HasPrefix(r.URL.Path, "/api/rest_v1/page/summary/") {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			attempt++
			if attempt == 1 {
				return respond(http.StatusInternalServerError, `{"error":"boom"}`), nil
			}
			return respond(http.StatusOK, `{"extract":"A rosette-forming urticaceous plant."}`), nil
		}),
	}

	res, err := client.WikipediaSummary(context.Background(), "Pilea peperomioides")
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 {
		t.Fatalf("attempts = %d", attempt)
	}
	if res == nil || res.Description == nil || *res.Description != "A rosette-forming urticaceous plant." {
		t.Fatalf("result %+v", res)
	}
	if res.Source != "wikipedia" {
		t.Fatalf("source %q", res.Source)
	}
}

func TestWikipediaSummaryUnknownPage(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusNotFound, `{"type":"not_found"}`), nil
		}),
	}

	res, err := client.WikipediaSummary(context.Background(), "Nonexistens plantus")
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatalf("expected nil result, got %+v", res)
	}
}

func TestWikipediaSummaryEmptyName(t *testing.T) {
	client := NewClient(testConfig())
	res, err := client.WikipediaSummary(context.Background(), "   ")
	if err != nil || res != nil {
		t.Fatalf("res=%+v err=%v", res, err)
	}
}

func TestGBIFMatch(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/v1/species/match" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("name"); got != "Monstera deliciosa" {
				t.Fatalf("name param %q", got)
			}
			return respond(http.StatusOK, `{
				"matchType": "EXACT",
				"kingdom": "Plantae",
				"family": "Araceae",
				"genus": "Monstera",
				"species": "Monstera deliciosa"
			}`), nil
		}),
	}

	res, err := client.GBIFMatch(context.Background(), "Monstera deliciosa")
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Taxonomy == nil {
		t.Fatalf("result %+v", res)
	}
	if res.Taxonomy.Family == nil || *res.Taxonomy.Family != "Araceae" {
		t.Fatalf("family %v", res.Taxonomy.Family)
	}
	if res.Taxonomy.PopulatedRanks() != 4 {
		t.Fatalf("ranks %d", res.Taxonomy.PopulatedRanks())
	}
}

func TestGBIFMatchNone(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"matchType":"NONE"}`), nil
		}),
	}

	res, err := client.GBIFMatch(context.Background(), "Gibberish name")
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatalf("expected nil result, got %+v", res)
	}
}

func TestFetchGivesUpOnPermanentError(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusForbidden, `{"error":"denied"}`), nil
		}),
	}

	if _, err := client.WikipediaSummary(context.Background(), "Pilea peperomioides"); err == nil {
		t.Fatal("expected error for 403")
	}
}
