// aggregate.go
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// transcriptFetcher is the single-video fetch contract the aggregator
// depends on.
type transcriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (*TranscriptResult, error)
}

// Aggregator fetches transcripts for a list of videos, one at a time,
// with a throttle gate between fetches. The gate respects the upstream
// rate limit; fetches must never run in parallel.
type Aggregator struct {
	fetcher transcriptFetcher
	limiter *rate.Limiter
}

// NewAggregator creates an aggregator with the given inter-fetch delay.
// The first fetch passes immediately; every later fetch waits out the
// delay measured from the previous fetch start.
func NewAggregator(fetcher transcriptFetcher, delay time.Duration) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Collect fetches all transcripts in input order. Per-video failures are
// recorded and skipped; if every video fails, Collect returns
// ErrNoTranscripts.
func (a *Aggregator) Collect(ctx context.Context, videoIDs []string) (*CombinedTranscript, []SkippedVideo, error) {
	var (
		combined strings.Builder
		sources  []string
		skipped  []SkippedVideo
	)

	for _, id := range videoIDs {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, skipped, fmt.Errorf("waiting for rate limit: %w", err)
		}

		log.Printf("→ Fetching transcript for %s...", id)
		result, err := a.fetcher.Fetch(ctx, id)
		if err != nil {
			log.Printf("⚠ Skipping %s: %v", id, err)
			skipped = append(skipped, SkippedVideo{VideoID: id, Reason: err})
			continue
		}

		if result.Fallback {
			log.Printf("✓ Transcript for %s (%d segments, fallback language %q)", id, result.Segments, result.Language)
		} else {
			log.Printf("✓ Transcript for %s (%d segments)", id, result.Segments)
		}

		sources = append(sources, id)
		fmt.Fprintf(&combined, "--- TRANSCRIPT %d (%s) ---\n\n%s\n\n", len(sources), id, result.Text)
	}

	if len(sources) == 0 {
		return nil, skipped, ErrNoTranscripts
	}

	return &CombinedTranscript{
		Text:      strings.TrimSpace(combined.String()),
		SourceIDs: sources,
	}, skipped, nil
}
