// Package ingest reads a dataset directory of day-files and feeds every
// record through the parser into an aggregation engine. File order is
// irrelevant: all aggregates are order-independent accumulations, so
// day-files can be folded sequentially or in parallel shards.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/monielab/monieshop-analytics/internal/core/metrics"
	"github.com/monielab/monieshop-analytics/internal/core/sale"
)

const defaultWorkers = 4

// Options controls how a dataset directory is loaded.
type Options struct {
	// Workers is the maximum number of day-files parsed concurrently.
	// 1 means a strictly sequential pass.
	Workers int

	// SkipMalformed logs and counts structurally invalid lines instead
	// of aborting the run. The default is fail-fast: silently dropping
	// records would silently corrupt every total, so skipping is an
	// explicit policy choice at this boundary, never the default.
	SkipMalformed bool
}

// DefaultOptions returns the default load behavior: a small worker pool
// and fail-fast on malformed records.
func DefaultOptions() Options {
	return Options{Workers: defaultWorkers}
}

func (o Options) normalized() Options {
	n := o
	if n.Workers <= 0 {
		n.Workers = defaultWorkers
	}
	return n
}

// Result summarizes one ingest run.
type Result struct {
	RunID   string // unique per run; stamped on logs and the report
	Files   int
	Lines   int64
	Skipped int64 // malformed lines dropped; non-zero only with SkipMalformed
}

// Load parses every file in dir and folds the records into engine.
// With Workers > 1 each file is folded into its own shard engine and
// the shards are merged pairwise into engine, which yields the same
// state as a sequential pass. On a malformed record (unless
// SkipMalformed is set) the returned error names the file, line number
// and violated expectation.
func Load(ctx context.Context, dir string, engine *metrics.Engine, opts Options) (Result, error) {
	opts = opts.normalized()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("read dataset dir: %w", err)
	}

	res := Result{RunID: uuid.NewString()}
	slog.Info("Starting ingest run",
		"run_id", res.RunID,
		"dir", dir,
		"workers", opts.Workers,
		"skip_malformed", opts.SkipMalformed,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	var mu sync.Mutex
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		res.Files++

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shard := metrics.NewEngine()
			lines, skipped, err := loadFile(path, shard, opts.SkipMalformed)
			if err != nil {
				return err
			}
			mu.Lock()
			engine.Merge(shard)
			res.Lines += lines
			res.Skipped += skipped
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	slog.Info("Ingest run complete",
		"run_id", res.RunID,
		"files", res.Files,
		"lines", res.Lines,
		"skipped", res.Skipped,
		"transactions", engine.Sales(),
	)
	return res, nil
}

// loadFile folds one day-file into the given engine. Blank lines are
// ignored; every other line must parse.
func loadFile(path string, engine *metrics.Engine, skipMalformed bool) (lines, skipped int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open day-file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		s, perr := sale.ParseRecord(line)
		if perr != nil {
			if skipMalformed {
				skipped++
				slog.Warn("Skipping malformed record",
					"file", path,
					"line", lineNo,
					"error", perr,
				)
				continue
			}
			return 0, 0, fmt.Errorf("%s:%d: %w", path, lineNo, perr)
		}

		engine.Update(s)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, skipped, nil
}
