// Package matcher classifies face descriptors against the enrolled set using
// nearest-neighbor search in Euclidean descriptor space. It is pure
// computation: no locking, no I/O, safe to call from any number of
// goroutines.
package matcher

import (
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

// Classify resolves a query descriptor to the nearest enrolled student.
// A nearest distance less than or equal to threshold is a match (the boundary
// is inclusive). With an empty enrolled set the result is unmatched with
// infinite distance. On an unmatched result Distance still carries the
// nearest miss so callers can inspect how close it was.
//
// Ties are broken deterministically: equal distances resolve to the
// lexicographically smallest reg number, regardless of slice order.
func Classify(query []float64, enrolled []domain.Student, threshold float64) (domain.MatchResult, error) {
	if len(query) == 0 {
		return domain.MatchResult{}, domain.ErrValidationFailed.WithError(fmt.Errorf("empty query descriptor"))
	}

	best := domain.MatchResult{Distance: math.Inf(1)}

	for _, s := range enrolled {
		if len(s.Descriptor) != len(query) {
			return domain.MatchResult{}, domain.ErrValidationFailed.WithError(
				fmt.Errorf("descriptor dimension mismatch: query has %d, student %s has %d",
					len(query), s.RegNumber, len(s.Descriptor)))
		}

		d := EuclideanDistance(query, s.Descriptor)
		if d < best.Distance || (d == best.Distance && s.RegNumber < best.RegNumber) {
			best.Distance = d
			best.RegNumber = s.RegNumber
		}
	}

	if best.Distance <= threshold {
		best.Matched = true
	} else {
		// Nearest miss: keep the distance, drop the identity.
		best.RegNumber = ""
	}

	return best, nil
}

// EuclideanDistance computes the L2 distance between two descriptors of equal
// length. Lower means more similar.
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
