// Package pipeline drives the offline ZIP centroid preparation:
// extract postal records, keep Los Angeles city ZIPs, load centroids to every sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/parksafe-la/internal/domain"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// BatchExtractor reads up to batchSize postal records. It returns io.EOF
// once the source is exhausted.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.PostalRecord, error)
}

// Transformer reduces a postal record to a centroid, or drops it.
type Transformer interface {
	Transform(rec domain.PostalRecord) (domain.ZipCentroid, bool)
}

// BatchLoader writes centroids to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, rows []domain.ZipCentroid) error
}

// Stats counts records through each stage of a run.
type Stats struct {
	Read    int
	Kept    int
	Batches int
}

const (
	initialBackoff  = 200 * time.Millisecond
	maxBackoff      = 5 * time.Second
	maxLoadAttempts = 5
)

// Pipeline orchestrates one extract-transform-load pass over a finite source.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loaders     []BatchLoader
	logger      *slog.Logger
	batchSize   int
}

// New creates a Pipeline. Every batch is written to each loader in order.
func New(e BatchExtractor, t Transformer, loaders []BatchLoader, logger *slog.Logger, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Run processes the source until it is exhausted, the context is cancelled,
// or a stage fails.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "loaders", len(p.loaders))

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if errors.Is(err, io.EOF) {
			p.logger.Info("pipeline finished", "read", stats.Read, "kept", stats.Kept, "batches", stats.Batches)
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("extract batch: %w", err)
		}
		stats.Read += len(batch)

		rows := make([]domain.ZipCentroid, 0, len(batch))
		for _, rec := range batch {
			if row, ok := p.transformer.Transform(rec); ok {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}

		for _, l := range p.loaders {
			if err := p.loadWithRetry(ctx, l, rows); err != nil {
				return stats, err
			}
		}
		stats.Kept += len(rows)
		stats.Batches++
		p.logger.Debug("batch loaded", "rows", len(rows), "read_total", stats.Read)
	}
}

// loadWithRetry retries a failing loader with exponential backoff:
// start at 200ms, double each retry, cap at 5s.
func (p *Pipeline) loadWithRetry(ctx context.Context, l BatchLoader, rows []domain.ZipCentroid) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxLoadAttempts; attempt++ {
		if err = l.LoadBatch(ctx, rows); err == nil {
			return nil
		}
		p.logger.Error("load batch failed", "error", err, "attempt", attempt, "batch_size", len(rows))
		if attempt == maxLoadAttempts {
			break
		}
		if !retry.SleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return fmt.Errorf("load batch: %w", err)
}
