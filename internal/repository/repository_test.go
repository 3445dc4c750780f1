package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

const testDim = 128

func testDescriptor() []float64 {
	d := make([]float64, testDim)
	d[0] = 0.5
	return d
}

func testVector() pgvector.Vector {
	return toVector(testDescriptor())
}

// StudentRepository Tests

func TestStudentRepository_Upsert(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		student      *domain.Student
		mockSetup    func(mock pgxmock.PgxPoolIface)
		wantInserted bool
		wantErr      error
	}{
		{
			name: "fresh enrollment inserts",
			student: &domain.Student{
				RegNumber:  "CS/F/001",
				Name:       "Ada Lovelace",
				Department: "Computer Science",
				Level:      "400",
				Descriptor: testDescriptor(),
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"created_at", "updated_at", "inserted"}).
					AddRow(now, now, true)

				mock.ExpectQuery(`INSERT INTO students`).
					WithArgs("CS/F/001", "Ada Lovelace", "Computer Science", "400", testVector()).
					WillReturnRows(rows)
			},
			wantInserted: true,
		},
		{
			name: "re-enrollment updates in place",
			student: &domain.Student{
				RegNumber:  "CS/F/001",
				Name:       "Ada Lovelace",
				Department: "Computer Science",
				Level:      "400",
				Descriptor: testDescriptor(),
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"created_at", "updated_at", "inserted"}).
					AddRow(now.Add(-24*time.Hour), now, false)

				mock.ExpectQuery(`INSERT INTO students`).
					WithArgs("CS/F/001", "Ada Lovelace", "Computer Science", "400", testVector()).
					WillReturnRows(rows)
			},
			wantInserted: false,
		},
		{
			name: "wrong descriptor dimension is rejected before the database",
			student: &domain.Student{
				RegNumber:  "CS/F/001",
				Name:       "Ada Lovelace",
				Department: "Computer Science",
				Level:      "400",
				Descriptor: make([]float64, 64),
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {},
			wantErr:   domain.ErrValidationFailed,
		},
		{
			name: "database error",
			student: &domain.Student{
				RegNumber:  "CS/F/001",
				Name:       "Ada Lovelace",
				Department: "Computer Science",
				Level:      "400",
				Descriptor: testDescriptor(),
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO students`).
					WithArgs("CS/F/001", "Ada Lovelace", "Computer Science", "400", testVector()).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewStudentRepository(mock, testDim)
			inserted, err := repo.Upsert(context.Background(), tt.student)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantInserted, inserted)
				assert.False(t, tt.student.UpdatedAt.IsZero())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStudentRepository_ListAll(t *testing.T) {
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"reg_number", "name", "department", "level", "descriptor", "created_at", "updated_at",
	}).
		AddRow("CS/F/001", "Ada Lovelace", "Computer Science", "400", testVector(), now, now).
		AddRow("CS/F/002", "Grace Hopper", "Computer Science", "400", testVector(), now, now)

	mock.ExpectQuery(`SELECT reg_number, name, department, level, descriptor, created_at, updated_at FROM students`).
		WillReturnRows(rows)

	repo := NewStudentRepository(mock, testDim)
	students, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "CS/F/001", students[0].RegNumber)
	assert.Equal(t, "CS/F/002", students[1].RegNumber)
	assert.Len(t, students[0].Descriptor, testDim)
	assert.InDelta(t, 0.5, students[0].Descriptor[0], 1e-6)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_ListAll_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"reg_number", "name", "department", "level", "descriptor", "created_at", "updated_at",
	})

	mock.ExpectQuery(`SELECT reg_number, name, department, level, descriptor, created_at, updated_at FROM students`).
		WillReturnRows(rows)

	repo := NewStudentRepository(mock, testDim)
	students, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestStudentRepository_GetByRegNumber(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		regNumber string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name:      "found",
			regNumber: "CS/F/001",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"reg_number", "name", "department", "level", "descriptor", "created_at", "updated_at",
				}).AddRow("CS/F/001", "Ada Lovelace", "Computer Science", "400", testVector(), now, now)

				mock.ExpectQuery(`SELECT reg_number, name, department, level, descriptor, created_at, updated_at FROM students WHERE reg_number`).
					WithArgs("CS/F/001").
					WillReturnRows(rows)
			},
		},
		{
			name:      "not found",
			regNumber: "CS/F/404",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT reg_number, name, department, level, descriptor, created_at, updated_at FROM students WHERE reg_number`).
					WithArgs("CS/F/404").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrStudentNotFound,
		},
		{
			name:      "database error",
			regNumber: "CS/F/001",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT reg_number, name, department, level, descriptor, created_at, updated_at FROM students WHERE reg_number`).
					WithArgs("CS/F/001").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewStudentRepository(mock, testDim)
			got, err := repo.GetByRegNumber(context.Background(), tt.regNumber)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.regNumber, got.RegNumber)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStudentRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "deleted",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM students`).
					WithArgs("CS/F/001").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM students`).
					WithArgs("CS/F/001").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: domain.ErrStudentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewStudentRepository(mock, testDim)
			err = repo.Delete(context.Background(), "CS/F/001")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// AttendanceRepository Tests

func TestAttendanceRepository_Insert(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		mockSetup    func(mock pgxmock.PgxPoolIface)
		wantInserted bool
		wantErr      error
	}{
		{
			name: "first event of the day inserts",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now())

				mock.ExpectQuery(`INSERT INTO attendance_events`).
					WithArgs(pgxmock.AnyArg(), "CS/F/001", day).
					WillReturnRows(rows)
			},
			wantInserted: true,
		},
		{
			name: "conflict on the unique day constraint is not an error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO attendance_events`).
					WithArgs(pgxmock.AnyArg(), "CS/F/001", day).
					WillReturnError(pgx.ErrNoRows)
			},
			wantInserted: false,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO attendance_events`).
					WithArgs(pgxmock.AnyArg(), "CS/F/001", day).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewAttendanceRepository(mock)
			event := &domain.AttendanceEvent{RegNumber: "CS/F/001", Date: day}
			inserted, err := repo.Insert(context.Background(), event)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantInserted, inserted)
				assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", event.ID.String())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendanceRepository_ListByDate(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "reg_number", "attended_on", "created_at"}).
		AddRow(uuid.New(), "CS/F/001", day, now.Add(-time.Hour)).
		AddRow(uuid.New(), "CS/F/002", day, now)

	mock.ExpectQuery(`SELECT id, reg_number, attended_on, created_at FROM attendance_events`).
		WithArgs(day).
		WillReturnRows(rows)

	repo := NewAttendanceRepository(mock)
	events, err := repo.ListByDate(context.Background(), day)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "CS/F/001", events[0].RegNumber)
	assert.Equal(t, "CS/F/002", events[1].RegNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// RecognitionAuditRepository Tests

func TestRecognitionAuditRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now())

	mock.ExpectQuery(`INSERT INTO recognition_audits`).
		WithArgs(pgxmock.AnyArg(), 3, 2, 1, int64(120)).
		WillReturnRows(rows)

	repo := NewRecognitionAuditRepository(mock)
	audit := &domain.RecognitionAudit{
		FacesDetected: 3,
		MatchedCount:  2,
		RecordedCount: 1,
		LatencyMs:     120,
	}

	require.NoError(t, repo.Create(context.Background(), audit))
	assert.False(t, audit.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}
