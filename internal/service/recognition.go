package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
	"github.com/saturnino-fabrica-de-software/presenca/internal/matcher"
	"github.com/saturnino-fabrica-de-software/presenca/internal/provider"
)

type StudentListerInterface interface {
	ListAll(ctx context.Context) ([]domain.Student, error)
}

type RecognitionAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.RecognitionAudit) error
}

// RecognitionReport is the result of one recognizeAndRecord call: one match
// result per detected face in detection order, plus per-identity write
// outcomes for the matched ones.
type RecognitionReport struct {
	Results  []domain.MatchResult   `json:"results"`
	Outcomes []domain.RecordOutcome `json:"outcomes"`
}

// RecognitionService runs the matcher over an image's detections and hands
// matched identities to the recorder.
type RecognitionService struct {
	detector  provider.FaceDetector
	students  StudentListerInterface
	recorder  *AttendanceRecorder
	auditRepo RecognitionAuditRepositoryInterface
	threshold float64
}

func NewRecognitionService(
	detector provider.FaceDetector,
	students StudentListerInterface,
	recorder *AttendanceRecorder,
	auditRepo RecognitionAuditRepositoryInterface,
) *RecognitionService {
	return &RecognitionService{
		detector:  detector,
		students:  students,
		recorder:  recorder,
		auditRepo: auditRepo,
		threshold: 0.5,
	}
}

func (s *RecognitionService) WithThreshold(threshold float64) *RecognitionService {
	s.threshold = threshold
	return s
}

// ClassifyOnly classifies every face in the image without persisting
// anything. Results align with detection order.
func (s *RecognitionService) ClassifyOnly(ctx context.Context, imageBytes []byte) ([]domain.MatchResult, error) {
	detections, err := s.detector.Detect(ctx, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("classify: detect faces: %w", err)
	}

	enrolled, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.classifyDetections(ctx, detections, enrolled)
}

// RecognizeAndRecord classifies every face in the image and records
// attendance for the matched identities as of asOf's calendar date.
func (s *RecognitionService) RecognizeAndRecord(ctx context.Context, imageBytes []byte, asOf time.Time) (*RecognitionReport, error) {
	start := time.Now()

	detections, err := s.detector.Detect(ctx, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("recognize: detect faces: %w", err)
	}

	enrolled, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.classifyDetections(ctx, detections, enrolled)
	if err != nil {
		return nil, err
	}

	outcomes := s.recorder.Record(ctx, results, asOf)

	report := &RecognitionReport{
		Results:  results,
		Outcomes: outcomes,
	}

	// Audit log - error is intentionally not returned; the recognition
	// outcome was already determined.
	if s.auditRepo != nil {
		matched := 0
		for _, r := range results {
			if r.Matched {
				matched++
			}
		}
		recorded := 0
		for _, o := range outcomes {
			if o.Status == domain.RecordStatusRecorded {
				recorded++
			}
		}
		_ = s.auditRepo.Create(ctx, &domain.RecognitionAudit{
			FacesDetected: len(detections),
			MatchedCount:  matched,
			RecordedCount: recorded,
			LatencyMs:     time.Since(start).Milliseconds(),
		})
	}

	return report, nil
}

// classifyDetections classifies each detection independently. The matcher is
// pure, so classifications run concurrently; the results slice keeps
// detection order.
func (s *RecognitionService) classifyDetections(ctx context.Context, detections []provider.Detection, enrolled []domain.Student) ([]domain.MatchResult, error) {
	results := make([]domain.MatchResult, len(detections))

	g, _ := errgroup.WithContext(ctx)
	for i, det := range detections {
		g.Go(func() error {
			res, err := matcher.Classify(det.Descriptor, enrolled, s.threshold)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
