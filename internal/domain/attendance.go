package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceEvent é um registro de presença: uma linha por aluno por dia.
// Nunca é mutado depois de criado.
type AttendanceEvent struct {
	ID        uuid.UUID `json:"id"`
	RegNumber string    `json:"reg_number"`
	Date      time.Time `json:"date"` // calendar day, time component is zero
	CreatedAt time.Time `json:"created_at"`
}

// RecordStatus is the per-identity outcome of an attendance write.
type RecordStatus string

const (
	RecordStatusRecorded        RecordStatus = "recorded"
	RecordStatusAlreadyRecorded RecordStatus = "already_recorded"
	RecordStatusFailed          RecordStatus = "failed"
)

// RecordOutcome reports one identity's write result. Outcomes are reported
// independently so one failed insert cannot mask the others.
type RecordOutcome struct {
	RegNumber string           `json:"reg_number"`
	Status    RecordStatus     `json:"status"`
	Event     *AttendanceEvent `json:"event,omitempty"`
	Err       error            `json:"-"`
}

// RecognitionAudit registra uma chamada de reconhecimento (audit).
type RecognitionAudit struct {
	ID            uuid.UUID `json:"id"`
	FacesDetected int       `json:"faces_detected"`
	MatchedCount  int       `json:"matched_count"`
	RecordedCount int       `json:"recorded_count"`
	LatencyMs     int64     `json:"latency_ms"`
	CreatedAt     time.Time `json:"created_at"`
}
