package enrich

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestArafloraDescription(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			switch {
			case strings.HasPrefix(r.URL.Path, "/search.php"):
				return respond(http.StatusOK, `<html><body>
					<div class="product-item"><a href="/p/ficus-pumila">Ficus pumila</a></div>
				</body></html>`), nil
			case r.URL.Path == "/p/ficus-pumila":
				return respond(http.StatusOK, `<html><body>
					<div class="product-description">
						A fast creeping fig
						for humid terrariums.
					</div>
				</body></html>`), nil
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
				return nil, nil
			}
		}),
	}

	res, err := client.ArafloraDescription(context.Background(), "Ficus pumila")
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Description == nil {
		t.Fatalf("result %+v", res)
	}
	if *res.Description != "A fast creeping fig for humid terrariums." {
		t.Fatalf("description %q", *res.Description)
	}
	if res.Source != "araflora" {
		t.Fatalf("source %q", res.Source)
	}
}

func TestArafloraDescriptionNoHit(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `<html><body><p>No results.</p></body></html>`), nil
		}),
	}

	res, err := client.ArafloraDescription(context.Background(), "Nonexistens plantus")
	if err != nil || res != nil {
		t.Fatalf("res=%+v err=%v", res, err)
	}
}

func TestGrowTropicalsDescription(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			switch {
			case r.URL.Path == "/search":
				return respond(http.StatusOK, `<html><body>
					<div class="product-card"><a href="/products/monstera-deliciosa">Monstera</a></div>
				</body></html>`), nil
			case r.URL.Path == "/products/monstera-deliciosa":
				return respond(http.StatusOK, `<html><body>
					<div class="product__description">Large fenestrated leaves.</div>
				</body></html>`), nil
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
				return nil, nil
			}
		}),
	}

	res, err := client.GrowTropicalsDescription(context.Background(), "Monstera deliciosa")
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Description == nil || *res.Description != "Large fenestrated leaves." {
		t.Fatalf("result %+v", res)
	}
}
