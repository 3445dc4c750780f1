package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
	"github.com/saturnino-fabrica-de-software/presenca/internal/provider"
)

type StudentUpserterInterface interface {
	Upsert(ctx context.Context, student *domain.Student) (bool, error)
}

// EnrollmentInput carries the validated identity fields for an enrollment.
type EnrollmentInput struct {
	RegNumber  string
	Name       string
	Department string
	Level      string
}

// validate trims all fields and reports the first missing one by name.
func (in *EnrollmentInput) validate() error {
	in.RegNumber = strings.TrimSpace(in.RegNumber)
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)
	in.Level = strings.TrimSpace(in.Level)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"reg_number", in.RegNumber},
		{"name", in.Name},
		{"department", in.Department},
		{"level", in.Level},
	} {
		if field.value == "" {
			return domain.ErrValidationFailed.WithError(fmt.Errorf("%s is required", field.name))
		}
	}

	return nil
}

// EnrollmentService ties the embedding oracle to the descriptor store.
type EnrollmentService struct {
	students StudentUpserterInterface
	detector provider.FaceDetector
}

func NewEnrollmentService(students StudentUpserterInterface, detector provider.FaceDetector) *EnrollmentService {
	return &EnrollmentService{
		students: students,
		detector: detector,
	}
}

// Enroll validates the input, requires exactly one detected face in the
// image and upserts the resulting descriptor keyed by reg number. The
// returned flag is true for a fresh enrollment, false when an existing
// record was overwritten; callers use it to phrase the response, nothing
// else branches on it.
//
// The single-face rule is what keeps an enrollment descriptor unambiguous:
// without it a group photo would silently enroll an arbitrary face.
func (s *EnrollmentService) Enroll(ctx context.Context, input EnrollmentInput, imageBytes []byte) (*domain.Student, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	detections, err := s.detector.Detect(ctx, imageBytes)
	if err != nil {
		return nil, false, fmt.Errorf("enroll %s: detect faces: %w", input.RegNumber, err)
	}

	if len(detections) == 0 {
		return nil, false, domain.ErrNoFaceDetected
	}

	if len(detections) > 1 {
		return nil, false, domain.MultipleFacesError(len(detections))
	}

	student := &domain.Student{
		RegNumber:  input.RegNumber,
		Name:       input.Name,
		Department: input.Department,
		Level:      input.Level,
		Descriptor: detections[0].Descriptor,
	}

	created, err := s.students.Upsert(ctx, student)
	if err != nil {
		return nil, false, err
	}

	return student, created, nil
}
