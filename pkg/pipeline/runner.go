package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shikhar5647/sfiles/pkg/cache"
	"github.com/shikhar5647/sfiles/pkg/flowsheet"
	sfilesio "github.com/shikhar5647/sfiles/pkg/io"
	"github.com/shikhar5647/sfiles/pkg/render"
	"github.com/shikhar5647/sfiles/pkg/sfiles"
)

// Runner executes the pipeline with caching.
//
// The Runner is stateless except for the cache and logger; it stores no run
// results, so multiple goroutines can share one Runner with different
// options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer gets the default keyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete encode → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, fs *flowsheet.Flowsheet, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Sheet:     fs,
		SheetHash: SheetHash(fs),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.UnitCount = fs.UnitCount()
	result.Stats.StreamCount = fs.StreamCount()

	encodeStart := time.Now()
	notation, encodeHit, err := r.EncodeWithCacheInfo(ctx, fs, result.SheetHash, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Notation = notation
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.CacheInfo.EncodeHit = encodeHit

	opts.Logger.Info("encoded flowsheet",
		"units", result.Stats.UnitCount,
		"streams", result.Stats.StreamCount,
		"chars", len(notation),
		"duration", result.Stats.EncodeTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, fs, result.SheetHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// EncodeWithCacheInfo encodes with caching and reports whether the notation
// came from cache.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, fs *flowsheet.Flowsheet, sheetHash string, opts Options) (string, bool, error) {
	opts.SetDefaults()
	cacheKey := r.Keyer.NotationKey(sheetHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return string(data), true, nil
		}
	}

	notation, err := sfiles.Encode(fs)
	if err != nil {
		return "", false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, []byte(notation), cache.TTLNotation)
	return notation, false, nil
}

// Encode is a convenience wrapper that discards cache hit info.
func (r *Runner) Encode(ctx context.Context, fs *flowsheet.Flowsheet, opts Options) (string, error) {
	notation, _, err := r.EncodeWithCacheInfo(ctx, fs, SheetHash(fs), opts)
	return notation, err
}

// RenderWithCacheInfo renders all requested formats with caching and reports
// whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fs *flowsheet.Flowsheet, sheetHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	keyOpts := func(format string) cache.ArtifactKeyOpts {
		return cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed, Rankdir: opts.Rankdir}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(sheetHash, keyOpts(format)))
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	dot := render.ToDOT(fs, render.Options{Detailed: opts.Detailed, Rankdir: opts.Rankdir})
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot)
		}
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
		_ = r.Cache.Set(ctx, r.Keyer.ArtifactKey(sheetHash, keyOpts(format)), data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards cache hit info.
func (r *Runner) Render(ctx context.Context, fs *flowsheet.Flowsheet, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, fs, SheetHash(fs), opts)
	return artifacts, err
}

// SheetHash computes the content hash of a flowsheet's canonical JSON.
// The hash keys both cache entries and archive records.
func SheetHash(fs *flowsheet.Flowsheet) string {
	var buf bytes.Buffer
	if err := sfilesio.WriteJSON(fs, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
