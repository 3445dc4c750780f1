package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

// AttendanceRepository is the attendance ledger. The (reg_number, attended_on)
// unique constraint is what makes the once-per-day policy hold under
// concurrent recognitions: two racing inserts cannot both land.
type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Insert writes one attendance event. Returns false without error when an
// event for the same (reg_number, date) already exists; the conflict check
// and the insert are a single atomic statement.
func (r *AttendanceRepository) Insert(ctx context.Context, event *domain.AttendanceEvent) (bool, error) {
	query := `
		INSERT INTO attendance_events (id, reg_number, attended_on, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (reg_number, attended_on) DO NOTHING
		RETURNING created_at
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.RegNumber,
		event.Date,
	).Scan(&event.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict: already recorded for this day.
		return false, nil
	}
	if err != nil {
		return false, domain.ErrStoreUnavailable.WithError(fmt.Errorf("insert attendance event: %w", err))
	}

	return true, nil
}

// ListByDate returns every event for one calendar day, ordered by creation.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.AttendanceEvent, error) {
	query := `
		SELECT id, reg_number, attended_on, created_at
		FROM attendance_events
		WHERE attended_on = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("list attendance by date: %w", err))
	}
	defer rows.Close()

	var events []domain.AttendanceEvent
	for rows.Next() {
		var e domain.AttendanceEvent
		if err := rows.Scan(&e.ID, &e.RegNumber, &e.Date, &e.CreatedAt); err != nil {
			return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("scan attendance event: %w", err))
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("list attendance by date: %w", err))
	}

	return events, nil
}
