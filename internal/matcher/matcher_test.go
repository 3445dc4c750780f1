package matcher

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

// descriptor builds a 128-dim descriptor that is zero everywhere except the
// first component, so Euclidean distances are easy to reason about.
func descriptor(first float64) []float64 {
	d := make([]float64, 128)
	d[0] = first
	return d
}

func student(reg string, first float64) domain.Student {
	return domain.Student{RegNumber: reg, Descriptor: descriptor(first)}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		query        []float64
		enrolled     []domain.Student
		threshold    float64
		wantMatched  bool
		wantReg      string
		wantDistance float64
	}{
		{
			name:         "match within threshold",
			query:        descriptor(0.4),
			enrolled:     []domain.Student{student("CS/F/001", 0.1), student("CS/F/002", 2.0)},
			threshold:    0.5,
			wantMatched:  true,
			wantReg:      "CS/F/001",
			wantDistance: 0.3,
		},
		{
			name:         "nearest miss beyond threshold",
			query:        descriptor(1.0),
			enrolled:     []domain.Student{student("CS/F/001", 0.1)},
			threshold:    0.5,
			wantMatched:  false,
			wantReg:      "",
			wantDistance: 0.9,
		},
		{
			name:         "boundary distance equal to threshold is a match",
			query:        descriptor(0.5),
			enrolled:     []domain.Student{student("CS/F/001", 0.0)},
			threshold:    0.5,
			wantMatched:  true,
			wantReg:      "CS/F/001",
			wantDistance: 0.5,
		},
		{
			name:         "empty enrolled set is unmatched with infinite distance",
			query:        descriptor(0.1),
			enrolled:     nil,
			threshold:    0.5,
			wantMatched:  false,
			wantReg:      "",
			wantDistance: math.Inf(1),
		},
		{
			name:  "equidistant tie resolves to lowest reg number",
			query: descriptor(0.0),
			enrolled: []domain.Student{
				student("CS/F/009", 0.2),
				student("CS/F/002", -0.2),
			},
			threshold:    0.5,
			wantMatched:  true,
			wantReg:      "CS/F/002",
			wantDistance: 0.2,
		},
		{
			name:  "exact zero distance match",
			query: descriptor(0.7),
			enrolled: []domain.Student{
				student("CS/F/001", 0.1),
				student("CS/F/003", 0.7),
			},
			threshold:    0.5,
			wantMatched:  true,
			wantReg:      "CS/F/003",
			wantDistance: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.query, tt.enrolled, tt.threshold)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMatched, got.Matched)
			assert.Equal(t, tt.wantReg, got.RegNumber)
			if math.IsInf(tt.wantDistance, 1) {
				assert.True(t, math.IsInf(got.Distance, 1))
			} else {
				assert.InDelta(t, tt.wantDistance, got.Distance, 1e-9)
			}
		})
	}
}

func TestClassify_DimensionMismatch(t *testing.T) {
	query := descriptor(0.1)
	enrolled := []domain.Student{{RegNumber: "CS/F/001", Descriptor: []float64{0.1, 0.2}}}

	_, err := Classify(query, enrolled, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))
}

func TestClassify_EmptyQuery(t *testing.T) {
	_, err := Classify(nil, []domain.Student{student("CS/F/001", 0.1)}, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))
}

func TestClassify_DeterministicUnderPermutation(t *testing.T) {
	query := descriptor(0.0)
	enrolled := []domain.Student{
		student("CS/F/005", 0.2),
		student("CS/F/001", -0.2),
		student("CS/F/003", 0.2),
	}

	first, err := Classify(query, enrolled, 0.5)
	require.NoError(t, err)

	// Rotate through every ordering of the same set; the result must not change.
	permuted := []domain.Student{enrolled[2], enrolled[0], enrolled[1]}
	second, err := Classify(query, permuted, 0.5)
	require.NoError(t, err)

	reversed := []domain.Student{enrolled[2], enrolled[1], enrolled[0]}
	third, err := Classify(query, reversed, 0.5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Equal(t, "CS/F/001", first.RegNumber)
}

func TestEuclideanDistance(t *testing.T) {
	a := []float64{0, 3, 0}
	b := []float64{4, 0, 0}
	assert.InDelta(t, 5.0, EuclideanDistance(a, b), 1e-9)

	same := []float64{0.1, 0.2, 0.3}
	assert.Equal(t, 0.0, EuclideanDistance(same, same))
}
