package domain

// MatchResult is the outcome of classifying one query descriptor against the
// enrolled set. RegNumber is only meaningful when Matched is true; callers
// that need a display label for the unmatched case use Label instead of
// comparing strings.
type MatchResult struct {
	RegNumber string  `json:"reg_number,omitempty"`
	Distance  float64 `json:"distance"`
	Matched   bool    `json:"matched"`
}

// Label returns the reg number for a match, or the configured unknown
// sentinel otherwise.
func (m MatchResult) Label(unknown string) string {
	if m.Matched {
		return m.RegNumber
	}
	return unknown
}
