package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
	"github.com/saturnino-fabrica-de-software/presenca/internal/service"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// EnrollmentService interface for the enrollment flow
type EnrollmentService interface {
	Enroll(ctx context.Context, input service.EnrollmentInput, imageBytes []byte) (*domain.Student, bool, error)
}

// StudentStore interface for direct record access
type StudentStore interface {
	GetByRegNumber(ctx context.Context, regNumber string) (*domain.Student, error)
	Delete(ctx context.Context, regNumber string) error
}

// StudentHandler handles enrollment and student record requests
type StudentHandler struct {
	enrollment EnrollmentService
	students   StudentStore
	logger     *slog.Logger
}

func NewStudentHandler(enrollment EnrollmentService, students StudentStore, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		enrollment: enrollment,
		students:   students,
		logger:     logger,
	}
}

// StudentResponse is a student record without the descriptor; descriptors
// never leave the service.
type StudentResponse struct {
	RegNumber  string `json:"reg_number"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Level      string `json:"level"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		RegNumber:  s.RegNumber,
		Name:       s.Name,
		Department: s.Department,
		Level:      s.Level,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

// Enroll POST /v1/students - enroll or re-enroll a student
func (h *StudentHandler) Enroll(c *fiber.Ctx) error {
	input := service.EnrollmentInput{
		RegNumber:  c.FormValue("reg_number"),
		Name:       c.FormValue("name"),
		Department: c.FormValue("department"),
		Level:      c.FormValue("level"),
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("enroll student: %w", err)
	}

	student, created, err := h.enrollment.Enroll(c.Context(), input, imageBytes)
	if err != nil {
		return err
	}

	h.logger.Info("student enrolled",
		slog.String("reg_number", student.RegNumber),
		slog.Bool("created", created),
	)

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(toStudentResponse(student))
}

// Get GET /v1/students/:reg_number - fetch one student record
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	regNumber := c.Params("reg_number")

	student, err := h.students.GetByRegNumber(c.Context(), regNumber)
	if err != nil {
		return err
	}

	return c.JSON(toStudentResponse(student))
}

// Delete DELETE /v1/students/:reg_number - remove a student record
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	regNumber := c.Params("reg_number")

	if err := h.students.Delete(c.Context(), regNumber); err != nil {
		return err
	}

	h.logger.Info("student removed", slog.String("reg_number", regNumber))

	return c.SendStatus(fiber.StatusNoContent)
}

// extractAndValidateImage reads the multipart "image" field, enforcing size
// and content-type limits before the bytes reach the detection provider.
func extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if file.Size > maxImageSize || file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
