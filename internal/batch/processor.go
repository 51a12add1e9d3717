// Package batch runs the leveling or labeling engine over many documents
// at once with bounded parallelism.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/leveltext/internal/engine"
	"codeberg.org/snonux/leveltext/internal/level"
)

// Source is one document to process, identified by a stable ID (its
// file name) used in outcomes and log lines.
type Source struct {
	ID   string
	Path string
}

// DocumentError wraps a failure of a single document so callers can tell
// which input broke without losing the cause.
type DocumentError struct {
	ID  string
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %v", e.ID, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Outcome pairs a source with its result. Exactly one of Result and Err
// is set.
type Outcome struct {
	ID     string
	Result *engine.Result
	Err    error
}

// Options selects the per-document operation.
type Options struct {
	Mode     engine.Mode
	Target   level.Level
	Language string
	// Parallelism caps concurrent documents. Zero or negative means
	// sequential processing.
	Parallelism int
}

// Processor fans documents out over the two engines. The engines share
// their translation cache, so repeated vocabulary across documents is
// only translated once.
type Processor struct {
	leveler *engine.Leveler
	labeler *engine.Labeler
	log     *slog.Logger
}

func NewProcessor(leveler *engine.Leveler, labeler *engine.Labeler) *Processor {
	return &Processor{
		leveler: leveler,
		labeler: labeler,
		log:     slog.Default(),
	}
}

// CollectSources expands path into the documents to process. A regular
// file yields itself; a directory yields its .txt files in name order.
func CollectSources(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		return []Source{{ID: filepath.Base(path), Path: path}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		sources = append(sources, Source{ID: entry.Name(), Path: filepath.Join(path, entry.Name())})
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .txt files in %s", path)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })
	return sources, nil
}

// Process runs every source through the configured mode and returns one
// outcome per source, in input order. A failing document is reported in
// its outcome and never aborts the siblings; only context cancellation
// stops the batch early.
func (p *Processor) Process(ctx context.Context, sources []Source, opts Options) ([]Outcome, error) {
	outcomes := make([]Outcome, len(sources))

	group, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 1 {
		group.SetLimit(opts.Parallelism)
	} else {
		group.SetLimit(1)
	}

	for i, src := range sources {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = Outcome{ID: src.ID, Err: err}
				return nil
			}
			result, err := p.processOne(gctx, src, opts)
			if err != nil {
				p.log.Warn("document failed", "id", src.ID, "error", err)
				outcomes[i] = Outcome{ID: src.ID, Err: &DocumentError{ID: src.ID, Err: err}}
				return nil
			}
			outcomes[i] = Outcome{ID: src.ID, Result: result}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return outcomes, err
	}

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	p.log.Info("batch finished",
		"documents", len(sources), "succeeded", len(sources)-failed, "failed", failed)
	return outcomes, nil
}

func (p *Processor) processOne(ctx context.Context, src Source, opts Options) (*engine.Result, error) {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	text := string(content)

	switch opts.Mode {
	case engine.ModeLeveling:
		return p.leveler.Level(ctx, text, opts.Target)
	case engine.ModeLabeling:
		return p.labeler.Label(ctx, text, opts.Target, opts.Language)
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}
}
