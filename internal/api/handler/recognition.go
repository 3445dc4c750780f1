package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
	"github.com/saturnino-fabrica-de-software/presenca/internal/service"
)

// RecognitionService interface for the recognition flows
type RecognitionService interface {
	ClassifyOnly(ctx context.Context, imageBytes []byte) ([]domain.MatchResult, error)
	RecognizeAndRecord(ctx context.Context, imageBytes []byte, asOf time.Time) (*service.RecognitionReport, error)
}

// RecognitionHandler handles classification and attendance-recording requests
type RecognitionHandler struct {
	service      RecognitionService
	unknownLabel string
	logger       *slog.Logger
}

func NewRecognitionHandler(svc RecognitionService, unknownLabel string, logger *slog.Logger) *RecognitionHandler {
	return &RecognitionHandler{
		service:      svc,
		unknownLabel: unknownLabel,
		logger:       logger,
	}
}

// ClassificationResponse is the per-face result of a classify call
type ClassificationResponse struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
	Matched  bool    `json:"matched"`
}

// OutcomeResponse is the per-identity write outcome of a recognition call
type OutcomeResponse struct {
	RegNumber string `json:"reg_number"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// RecognitionResponse bundles classifications with their write outcomes
type RecognitionResponse struct {
	Results  []ClassificationResponse `json:"results"`
	Outcomes []OutcomeResponse        `json:"outcomes"`
	Date     string                   `json:"date"`
}

func (h *RecognitionHandler) toClassifications(results []domain.MatchResult) []ClassificationResponse {
	out := make([]ClassificationResponse, len(results))
	for i, r := range results {
		out[i] = ClassificationResponse{
			Label:    r.Label(h.unknownLabel),
			Distance: r.Distance,
			Matched:  r.Matched,
		}
	}
	return out
}

func toOutcomes(outcomes []domain.RecordOutcome) []OutcomeResponse {
	out := make([]OutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		resp := OutcomeResponse{
			RegNumber: o.RegNumber,
			Status:    string(o.Status),
		}
		if o.Err != nil {
			resp.Error = o.Err.Error()
		}
		out[i] = resp
	}
	return out
}

// Classify POST /v1/classifications - classify every face, persist nothing
func (h *RecognitionHandler) Classify(c *fiber.Ctx) error {
	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	results, err := h.service.ClassifyOnly(c.Context(), imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"results": h.toClassifications(results),
	})
}

// Recognize POST /v1/recognitions - classify every face and record attendance
// for the matched identities. An optional "date" form field (YYYY-MM-DD)
// backfills a past session; it defaults to today.
func (h *RecognitionHandler) Recognize(c *fiber.Ctx) error {
	asOf, err := parseDateField(c.FormValue("date"))
	if err != nil {
		return err
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("recognize: %w", err)
	}

	report, err := h.service.RecognizeAndRecord(c.Context(), imageBytes, asOf)
	if err != nil {
		return err
	}

	h.logger.Info("recognition completed",
		slog.Int("faces", len(report.Results)),
		slog.Int("outcomes", len(report.Outcomes)),
	)

	return c.JSON(RecognitionResponse{
		Results:  h.toClassifications(report.Results),
		Outcomes: toOutcomes(report.Outcomes),
		Date:     asOf.UTC().Format("2006-01-02"),
	})
}

func parseDateField(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.ErrValidationFailed.WithError(errors.New("date must be YYYY-MM-DD"))
	}

	return t, nil
}
