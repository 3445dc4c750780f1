package service

import (
	"context"
	"time"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

type AttendanceInserterInterface interface {
	Insert(ctx context.Context, event *domain.AttendanceEvent) (bool, error)
}

// AttendanceRecorder turns match results into attendance events under the
// one-per-day dedup policy.
type AttendanceRecorder struct {
	events AttendanceInserterInterface
}

func NewAttendanceRecorder(events AttendanceInserterInterface) *AttendanceRecorder {
	return &AttendanceRecorder{events: events}
}

// Record persists attendance for every matched identity in matches, dropping
// unmatched results. Each identity gets its own outcome: recorded,
// already_recorded (the normal dedup case, not a failure) or failed with the
// insert error attached. One failed insert never drops or hides the others.
// The store's unique constraint carries the dedup under concurrency, so a
// repeat of the same identity within one batch also resolves to
// already_recorded.
func (r *AttendanceRecorder) Record(ctx context.Context, matches []domain.MatchResult, asOf time.Time) []domain.RecordOutcome {
	day := truncateToDay(asOf)

	var outcomes []domain.RecordOutcome
	for _, m := range matches {
		if !m.Matched {
			continue
		}

		event := &domain.AttendanceEvent{
			RegNumber: m.RegNumber,
			Date:      day,
		}

		inserted, err := r.events.Insert(ctx, event)
		switch {
		case err != nil:
			outcomes = append(outcomes, domain.RecordOutcome{
				RegNumber: m.RegNumber,
				Status:    domain.RecordStatusFailed,
				Err:       err,
			})
		case !inserted:
			outcomes = append(outcomes, domain.RecordOutcome{
				RegNumber: m.RegNumber,
				Status:    domain.RecordStatusAlreadyRecorded,
			})
		default:
			outcomes = append(outcomes, domain.RecordOutcome{
				RegNumber: m.RegNumber,
				Status:    domain.RecordStatusRecorded,
				Event:     event,
			})
		}
	}

	return outcomes
}

// truncateToDay normalizes a timestamp to its UTC calendar date.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
