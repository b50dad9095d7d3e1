package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/enrich"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/images"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/pipeline"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/storage"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	vocabulary, err := vocab.Load(cfg.VocabPath)
	must(err)

	store := library.NewStore(cfg.PlantsDir)

	cmd := os.Args[1]
	switch cmd {
	case "reconcile":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dryRun := fs.Bool("dry-run", false, "compute decisions without writing")
		keepStaging := fs.Bool("keep-staging", false, "keep the staging dir after a dry run")
		_ = fs.Parse(os.Args[2:])

		unlock := acquireLock(store, !*dryRun)
		defer unlock()

		start := time.Now()
		reconciler := pipeline.NewReconciler(store, vocabulary)
		summary, err := reconciler.Run(pipeline.Options{DryRun: *dryRun, KeepStaging: *keepStaging})
		must(err)

		recordRun(cfg, cmd, summary, time.Since(start))
		printSummary(summary, *dryRun)
	case "classify":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		force := fs.Bool("force", false, "re-derive attributes that already hold valid values")
		_ = fs.Parse(os.Args[2:])

		unlock := acquireLock(store, true)
		defer unlock()

		start := time.Now()
		reconciler := pipeline.NewReconciler(store, vocabulary)
		summary, err := reconciler.RunClassify(*force)
		must(err)

		recordRun(cfg, cmd, summary, time.Since(start))
		printSummary(summary, false)
	case "review":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "optional xlsx output path")
		_ = fs.Parse(os.Args[2:])

		records, _, err := store.LoadAll()
		must(err)
		reviewer := pipeline.NewReviewer(cfg, records)
		pairs := reviewer.Pairs()

		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportReviewXLSX(pairs, *out))
			fmt.Printf("review report: %d pairs written to %s\n", len(pairs), *out)
			return
		}
		printReviewPairs(pairs)
	case "enrich":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 0, "max records to enrich (0 = all)")
		source := fs.String("source", "", "restrict to one source: wikipedia|gbif|araflora|growtropicals")
		_ = fs.Parse(os.Args[2:])

		unlock := acquireLock(store, true)
		defer unlock()

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		start := time.Now()
		service := enrich.NewService(db, store, cfg)
		result, err := service.Run(context.Background(), *limit, *source)
		must(err)

		_ = db.InsertRun(traceID(), cmd,
			map[string]int{"considered": result.Considered, "enriched": result.Enriched, "fromCache": result.FromCache, "failed": result.Failed},
			map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())})
		fmt.Printf("enrich done considered=%d enriched=%d cached=%d failed=%d\n",
			result.Considered, result.Enriched, result.FromCache, result.Failed)
	case "images:sync":
		unlock := acquireLock(store, true)
		defer unlock()

		syncer := images.NewSyncer(store, cfg.ImagesDir)
		result, err := syncer.Run()
		must(err)
		fmt.Printf("images sync done scanned=%d updated=%d noFolder=%d empty=%d errored=%d\n",
			result.Scanned, result.Updated, result.NoFolder, result.NoImages, result.Errored)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			*out = filepath.Join(cfg.OutputDir, "inventory.xlsx")
		}

		records, _, err := store.LoadAll()
		must(err)
		rows := pipeline.BuildInventoryRows(records)
		must(pipeline.ExportInventoryXLSX(rows, *out))
		fmt.Printf("exported %d records to %s\n", len(rows), *out)
	case "report":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runs := fs.Int("runs", 10, "recent runs to show")
		_ = fs.Parse(os.Args[2:])

		must(printReport(cfg, store, *runs))
	default:
		usage()
		os.Exit(1)
	}
}

// acquireLock serializes mutating runs: decisions are made from one
// consistent snapshot, so two writers at once would corrupt the corpus.
func acquireLock(store *library.Store, needed bool) func() {
	if !needed {
		return func() {}
	}
	lock := flock.New(store.LockPath())
	locked, err := lock.TryLock()
	must(err)
	if !locked {
		must(fmt.Errorf("another run is already in progress (lock: %s)", store.LockPath()))
	}
	return func() { _ = lock.Unlock() }
}

func recordRun(cfg config.Config, command string, summary internal.RunSummary, elapsed time.Duration) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		return
	}
	defer db.Close()

	counts := map[string]int{
		"loaded":    summary.Loaded,
		"malformed": summary.Malformed,
		"nonPlants": summary.NonPlants,
		"merged":    summary.Merged,
		"variants":  summary.Variants,
		"updated":   summary.Updated,
		"deleted":   summary.Deleted,
		"errored":   summary.Errored,
	}
	_ = db.InsertRun(traceID(), command, counts,
		map[string]float64{"totalMs": float64(elapsed.Milliseconds())})
}

func printSummary(summary internal.RunSummary, dryRun bool) {
	suffix := ""
	if dryRun {
		suffix = " (dry-run, nothing written)"
	}
	fmt.Printf("loaded=%d malformed=%d nonPlants=%d merged=%d variants=%d survivors=%d%s\n",
		summary.Loaded, summary.Malformed, summary.NonPlants, summary.Merged, summary.Variants, summary.Survivors, suffix)
	if !dryRun {
		fmt.Printf("updated=%d deleted=%d errored=%d\n", summary.Updated, summary.Deleted, summary.Errored)
	}
	if len(summary.NullAttributes) > 0 {
		fmt.Println("unclassified attributes:")
		for _, field := range vocab.EnumeratedFields {
			if n := summary.NullAttributes[field]; n > 0 {
				fmt.Printf("  %s: %d\n", field, n)
			}
		}
	}
}

func printReviewPairs(pairs []internal.ReviewPair) {
	if len(pairs) == 0 {
		fmt.Println("no near-duplicate candidates")
		return
	}
	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, []string{
			string(pair.Status),
			fmt.Sprintf("%.2f", pair.Score),
			pair.LeftName,
			pair.RightName,
			pair.LeftFile,
			pair.RightFile,
		})
	}
	fmt.Println(renderTable(
		[]string{"status", "score", "left", "right", "left file", "right file"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func usage() {
	fmt.Println("usage: terrarium <command>")
	fmt.Println("commands:")
	fmt.Println("  reconcile [--dry-run] [--keep-staging]")
	fmt.Println("  classify [--force]")
	fmt.Println("  review [--out report.xlsx]")
	fmt.Println("  enrich [--limit N] [--source wikipedia|gbif|araflora|growtropicals]")
	fmt.Println("  images:sync")
	fmt.Println("  export:xlsx [--out inventory.xlsx]")
	fmt.Println("  report [--runs N]")
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
