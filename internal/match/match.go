package match

import (
	"context"
	"errors"
	"sync"

	"crate/internal/playlist"
	"crate/internal/shared"
)

// Match maps each playlist entry to its best library candidate and
// classifies the outcome. It is the single entry point to the matching
// engine.
//
// Entries are independent of one another, so they are scored concurrently
// by a small worker pool; results keep playlist order regardless of
// completion order. The index is read-only for the whole run. Match never
// fails because an entry found no candidate; "no match" is the unmatched
// classification. It returns an error only for invalid configuration,
// index query failures, or context cancellation, and the results decided
// before the failure are still returned. Entries not processed before a
// cancellation come back unmatched, so every returned result carries one
// of the three classifications.
func Match(ctx context.Context, entries []playlist.Entry, index CandidateIndex, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	results := make([]Result, len(entries))
	if len(entries) == 0 {
		return results, nil
	}

	workers := cfg.Workers
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, err := matchEntry(entries[i], index, cfg)
				if err != nil {
					recordErr(err)
				}
				results[i] = result
			}
		}()
	}

	dispatched := len(entries)
dispatch:
	for i := range entries {
		select {
		case <-ctx.Done():
			recordErr(ctx.Err())
			dispatched = i
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	// Entries never dispatched after cancellation still get a well formed
	// result instead of a zero value.
	for i := dispatched; i < len(entries); i++ {
		results[i] = Result{Entry: entries[i], Classification: ClassUnmatched}
	}

	return results, firstErr
}

// matchEntry runs the full pipeline for one entry: normalize, retrieve
// candidates, score, decide. An index failure classifies the entry as
// unmatched and surfaces the error to the caller.
func matchEntry(entry playlist.Entry, index CandidateIndex, cfg Config) (Result, error) {
	normalized := NormalizeEntry(entry)

	// A known ISRC identifies the exact recording; skip fuzzy scoring.
	// A miss falls through to fuzzy scoring, an index failure does not.
	if isrc, ok := entry.ISRC.Get(); ok {
		if byISRC, supported := index.(ISRCIndex); supported {
			track, err := byISRC.GetByISRC(isrc)
			switch {
			case err == nil && track != nil:
				return Result{
					Entry:          entry,
					Classification: ClassAuto,
					Track:          track,
					Score:          100,
				}, nil
			case err != nil && !errors.Is(err, shared.ErrTrackNotFound):
				return Result{Entry: entry, Classification: ClassUnmatched}, err
			}
		}
	}

	tracks, err := retrieve(normalized, index, cfg)
	if err != nil {
		return Result{Entry: entry, Classification: ClassUnmatched}, err
	}

	candidates := make([]Candidate, len(tracks))
	for i, track := range tracks {
		candidates[i] = scoreCandidate(normalized, track, cfg)
	}

	return decide(entry, candidates, cfg), nil
}
