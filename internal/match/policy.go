package match

import (
	"sort"

	"crate/internal/models"
	"crate/internal/playlist"
)

// Classification is the one-shot outcome class for a playlist entry.
type Classification string

const (
	// ClassAuto marks a match confident enough to select without review.
	ClassAuto Classification = "auto"
	// ClassReview marks a plausible match proposed for human confirmation.
	ClassReview Classification = "review"
	// ClassUnmatched marks an entry with no candidate above the review
	// threshold. This is a normal classification, not an error.
	ClassUnmatched Classification = "unmatched"
)

// Result is the matching outcome for one playlist entry.
type Result struct {
	Entry          playlist.Entry
	Classification Classification

	// Track is the chosen (auto) or proposed (review) library track,
	// nil when unmatched.
	Track *models.LibraryTrack
	Score float64

	// Alternates holds the remaining candidates ordered by descending
	// score, retained for the review step.
	Alternates []Candidate
}

// decide classifies one entry from its scored candidates. It is a pure
// function of the candidate list and thresholds; no entry changes class
// after being decided. Classification uses the winning candidate's own
// score, so a duration tie-break can demote an entry when the winner
// sits just below a threshold the top score cleared.
func decide(entry playlist.Entry, candidates []Candidate, cfg Config) Result {
	if len(candidates) == 0 {
		return Result{Entry: entry, Classification: ClassUnmatched}
	}

	sortCandidates(candidates)
	best := pickBest(candidates, cfg)

	result := Result{Entry: entry, Score: candidates[best].Score}

	switch {
	case result.Score >= cfg.AutoThreshold:
		result.Classification = ClassAuto
	case result.Score >= cfg.ReviewThreshold:
		result.Classification = ClassReview
	default:
		result.Classification = ClassUnmatched
		return result
	}

	result.Track = candidates[best].Track
	for i, cand := range candidates {
		if i == best {
			continue
		}
		if len(result.Alternates) >= cfg.MaxAlternates {
			break
		}
		result.Alternates = append(result.Alternates, cand)
	}

	return result
}

// sortCandidates orders candidates by descending score. The sort is stable
// so candidates with equal scores keep their retrieval order, which is the
// final deterministic tie-break.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// pickBest selects the winning candidate index from a score-sorted list.
// Candidates within ScoreEpsilon of the top score are treated as tied; the
// tie goes to the candidate whose duration is closest to the entry's stated
// duration, and when durations are absent or equal, to the earliest
// candidate in stable order. The winner's score, not the top score, is
// what decide classifies against.
func pickBest(candidates []Candidate, cfg Config) int {
	best := 0
	bestDelta, bestHasDelta := candidates[0].DurationDelta.Get()

	for i := 1; i < len(candidates); i++ {
		if candidates[0].Score-candidates[i].Score > cfg.ScoreEpsilon {
			break
		}
		delta, ok := candidates[i].DurationDelta.Get()
		if !ok {
			continue
		}
		if !bestHasDelta || delta < bestDelta {
			best = i
			bestDelta, bestHasDelta = delta, true
		}
	}

	return best
}
