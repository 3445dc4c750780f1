package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

// StudentRepository is the descriptor store: one row per reg number, mutated
// only through Upsert.
type StudentRepository struct {
	pool PgxPool
	dim  int
}

// NewStudentRepository creates a StudentRepository. dim is the fixed
// descriptor dimensionality; writes with any other length are rejected
// before touching the database.
func NewStudentRepository(pool PgxPool, dim int) *StudentRepository {
	return &StudentRepository{pool: pool, dim: dim}
}

// Upsert inserts or replaces the record for student.RegNumber. Re-enrolling
// overwrites the descriptor and metadata and refreshes updated_at; it never
// duplicates. The returned flag is true for a fresh enrollment, false for an
// update. The conflict clause makes concurrent upserts of the same reg
// number serialize instead of corrupting the row.
func (r *StudentRepository) Upsert(ctx context.Context, student *domain.Student) (bool, error) {
	if len(student.Descriptor) != r.dim {
		return false, domain.ErrValidationFailed.WithError(
			fmt.Errorf("descriptor has %d dimensions, store requires %d", len(student.Descriptor), r.dim))
	}

	query := `
		INSERT INTO students (reg_number, name, department, level, descriptor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (reg_number) DO UPDATE SET
			name = EXCLUDED.name,
			department = EXCLUDED.department,
			level = EXCLUDED.level,
			descriptor = EXCLUDED.descriptor,
			updated_at = NOW()
		RETURNING created_at, updated_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		student.RegNumber,
		student.Name,
		student.Department,
		student.Level,
		toVector(student.Descriptor),
	).Scan(&student.CreatedAt, &student.UpdatedAt, &inserted)

	if err != nil {
		return false, domain.ErrStoreUnavailable.WithError(fmt.Errorf("upsert student: %w", err))
	}

	return inserted, nil
}

// ListAll returns every enrolled record. The matcher scans this full set per
// recognition call; the enrolled population is small enough that no index is
// needed.
func (r *StudentRepository) ListAll(ctx context.Context) ([]domain.Student, error) {
	query := `
		SELECT reg_number, name, department, level, descriptor, created_at, updated_at
		FROM students
		ORDER BY reg_number
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("list students: %w", err))
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var s domain.Student
		var descriptor pgvector.Vector

		if err := rows.Scan(&s.RegNumber, &s.Name, &s.Department, &s.Level, &descriptor, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("scan student: %w", err))
		}

		s.Descriptor = fromVector(descriptor)
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("list students: %w", err))
	}

	return students, nil
}

// GetByRegNumber returns one record. A missing key is ErrStudentNotFound,
// explicitly distinguishable from any match outcome.
func (r *StudentRepository) GetByRegNumber(ctx context.Context, regNumber string) (*domain.Student, error) {
	query := `
		SELECT reg_number, name, department, level, descriptor, created_at, updated_at
		FROM students
		WHERE reg_number = $1
	`

	var s domain.Student
	var descriptor pgvector.Vector

	err := r.pool.QueryRow(ctx, query, regNumber).Scan(
		&s.RegNumber,
		&s.Name,
		&s.Department,
		&s.Level,
		&descriptor,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, domain.ErrStoreUnavailable.WithError(fmt.Errorf("get student by reg_number: %w", err))
	}

	s.Descriptor = fromVector(descriptor)

	return &s, nil
}

// Delete removes a record (explicit administrative removal).
func (r *StudentRepository) Delete(ctx context.Context, regNumber string) error {
	query := `
		DELETE FROM students
		WHERE reg_number = $1
	`

	result, err := r.pool.Exec(ctx, query, regNumber)
	if err != nil {
		return domain.ErrStoreUnavailable.WithError(fmt.Errorf("delete student: %w", err))
	}

	if result.RowsAffected() == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}

func toVector(descriptor []float64) pgvector.Vector {
	floats := make([]float32, len(descriptor))
	for i, v := range descriptor {
		floats[i] = float32(v)
	}
	return pgvector.NewVector(floats)
}

func fromVector(v pgvector.Vector) []float64 {
	slice := v.Slice()
	if slice == nil {
		return nil
	}
	descriptor := make([]float64, len(slice))
	for i, f := range slice {
		descriptor[i] = float64(f)
	}
	return descriptor
}
