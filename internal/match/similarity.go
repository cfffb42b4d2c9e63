package match

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Similarity computes an approximate string similarity in [0, 1].
//
// The scorer only depends on this narrow interface, so the concrete
// algorithm is swappable without touching aggregation logic.
type Similarity interface {
	Similarity(a, b string) float64
}

// EdlibSimilarity adapts [edlib.StringsSimilarity] to the Similarity
// interface. The zero algorithm is Levenshtein.
type EdlibSimilarity struct {
	Algorithm edlib.Algorithm
}

// NewSimilarity returns the default Levenshtein-based similarity.
func NewSimilarity() *EdlibSimilarity {
	return &EdlibSimilarity{Algorithm: edlib.Levenshtein}
}

func (s *EdlibSimilarity) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	sim, err := edlib.StringsSimilarity(a, b, s.Algorithm)
	if err != nil {
		return 0.0
	}
	return float64(sim)
}

// tokenSetSimilarity computes an order-independent field similarity between
// two already-normalized strings: tokens are deduplicated and split into the
// shared intersection plus each side's remainder, and the best pairwise
// similarity among the recombined forms is taken. A reordered "Title, The"
// or an entry with trailing junk words still scores close to 1.
func tokenSetSimilarity(sim Similarity, a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)

	var inter, restA, restB []string
	for token := range setA {
		if setB[token] {
			inter = append(inter, token)
		} else {
			restA = append(restA, token)
		}
	}
	for token := range setB {
		if !setA[token] {
			restB = append(restB, token)
		}
	}
	sort.Strings(inter)
	sort.Strings(restA)
	sort.Strings(restB)

	shared := strings.Join(inter, " ")
	combinedA := joinNonEmpty(shared, strings.Join(restA, " "))
	combinedB := joinNonEmpty(shared, strings.Join(restB, " "))

	best := sim.Similarity(combinedA, combinedB)
	if shared != "" {
		if s := sim.Similarity(shared, combinedA); s > best {
			best = s
		}
		if s := sim.Similarity(shared, combinedB); s > best {
			best = s
		}
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, token := range strings.Fields(s) {
		set[token] = true
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
