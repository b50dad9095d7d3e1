package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/storage"
)

func TestServiceRunFillsMissingData(t *testing.T) {
	tmp := t.TempDir()
	plantsDir := filepath.Join(tmp, "plants")
	if err := os.MkdirAll(plantsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	record := internal.PlantRecord{Name: "Pilea", ScientificName: "Pilea peperomioides"}
	blob, _ := json.Marshal(record)
	if err := os.WriteFile(filepath.Join(plantsDir, "pilea.json"), blob, 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := storage.Open(filepath.Join(tmp, "enrich.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := library.NewStore(plantsDir)
	service := NewService(db, store, testConfig())

	requests := 0
	service.client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			requests++
			switch {
			case strings.Contains(r.URL.Path, "/page/summary/"):
				return respond(http.StatusOK, `{"extract":"A popular rosette plant."}`), nil
			case strings.Contains(r.URL.Path, "/species/match"):
				return respond(http.StatusOK, `{"matchType":"EXACT","kingdom":"Plantae","family":"Urticaceae","genus":"Pilea"}`), nil
			default:
				// Shop searches find nothing.
				return respond(http.StatusOK, `<html><body></body></html>`), nil
			}
		}),
	}

	result, err := service.Run(context.Background(), 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Considered != 1 || result.Enriched != 1 || result.Failed != 0 {
		t.Fatalf("result %+v", result)
	}
	if requests == 0 {
		t.Fatal("no network calls made")
	}

	records, _, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d", len(records))
	}
	got := records[0]
	if got.Description != "A popular rosette plant." {
		t.Fatalf("description %q", got.Description)
	}
	if got.Taxonomy == nil || got.Taxonomy.Family == nil || *got.Taxonomy.Family != "Urticaceae" {
		t.Fatalf("taxonomy %+v", got.Taxonomy)
	}

	// Second run: the record is complete now and the responses are cached,
	// so nothing is considered and nothing hits the network.
	requests = 0
	again, err := service.Run(context.Background(), 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if again.Considered != 0 || requests != 0 {
		t.Fatalf("second run %+v requests=%d", again, requests)
	}
}

func TestServiceCachesNegativeResults(t *testing.T) {
	tmp := t.TempDir()
	plantsDir := filepath.Join(tmp, "plants")
	if err := os.MkdirAll(plantsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	record := internal.PlantRecord{Name: "Mystery", ScientificName: "Nonexistens plantus"}
	blob, _ := json.Marshal(record)
	if err := os.WriteFile(filepath.Join(plantsDir, "mystery.json"), blob, 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := storage.Open(filepath.Join(tmp, "enrich.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := library.NewStore(plantsDir)
	service := NewService(db, store, testConfig())

	requests := 0
	service.client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			requests++
			return respond(http.StatusNotFound, ``), nil
		}),
	}

	if _, err := service.Run(context.Background(), 0, "wikipedia"); err != nil {
		t.Fatal(err)
	}
	firstRound := requests

	if _, err := service.Run(context.Background(), 0, "wikipedia"); err != nil {
		t.Fatal(err)
	}
	if requests != firstRound {
		t.Fatalf("negative result not cached: %d then %d requests", firstRound, requests)
	}
}
