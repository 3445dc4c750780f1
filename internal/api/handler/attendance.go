package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
)

// AttendanceStore interface for reading the attendance ledger
type AttendanceStore interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.AttendanceEvent, error)
}

// AttendanceHandler serves the attendance ledger
type AttendanceHandler struct {
	events AttendanceStore
	logger *slog.Logger
}

func NewAttendanceHandler(events AttendanceStore, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{events: events, logger: logger}
}

// AttendanceEventResponse is one ledger entry
type AttendanceEventResponse struct {
	ID         string `json:"id"`
	RegNumber  string `json:"reg_number"`
	AttendedOn string `json:"attended_on"`
	CreatedAt  string `json:"created_at"`
}

// ListByDate GET /v1/attendance?date=YYYY-MM-DD - list one day's events.
// The date defaults to today (UTC).
func (h *AttendanceHandler) ListByDate(c *fiber.Ctx) error {
	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.ErrValidationFailed.WithError(errors.New("date must be YYYY-MM-DD"))
		}
		date = parsed
	}

	events, err := h.events.ListByDate(c.Context(), date)
	if err != nil {
		return err
	}

	responses := make([]AttendanceEventResponse, len(events))
	for i, e := range events {
		responses[i] = AttendanceEventResponse{
			ID:         e.ID.String(),
			RegNumber:  e.RegNumber,
			AttendedOn: e.Date.Format("2006-01-02"),
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(fiber.Map{
		"date":   date.Format("2006-01-02"),
		"events": responses,
	})
}
