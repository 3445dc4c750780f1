package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
	"github.com/saturnino-fabrica-de-software/presenca/internal/service"
)

// MockRecognitionService is a mock implementation of RecognitionService
type MockRecognitionService struct {
	mock.Mock
}

func (m *MockRecognitionService) ClassifyOnly(ctx context.Context, imageBytes []byte) ([]domain.MatchResult, error) {
	args := m.Called(ctx, imageBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchResult), args.Error(1)
}

func (m *MockRecognitionService) RecognizeAndRecord(ctx context.Context, imageBytes []byte, asOf time.Time) (*service.RecognitionReport, error) {
	args := m.Called(ctx, imageBytes, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecognitionReport), args.Error(1)
}

func TestRecognitionHandler_Classify(t *testing.T) {
	svc := &MockRecognitionService{}
	svc.On("ClassifyOnly", mock.Anything, mock.Anything).Return([]domain.MatchResult{
		{RegNumber: "CS/F/001", Distance: 0.3, Matched: true},
		{Distance: 0.9, Matched: false},
	}, nil)

	h := NewRecognitionHandler(svc, "unknown", testLogger())
	app := newTestApp()
	app.Post("/v1/classifications", h.Classify)

	body, contentType := createEnrollRequest(nil, make([]byte, 5000), "image/jpeg")
	req := httptest.NewRequest("POST", "/v1/classifications", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed struct {
		Results []ClassificationResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(respBody, &parsed))
	require.Len(t, parsed.Results, 2)
	assert.Equal(t, "CS/F/001", parsed.Results[0].Label)
	assert.True(t, parsed.Results[0].Matched)
	assert.Equal(t, "unknown", parsed.Results[1].Label)
	assert.False(t, parsed.Results[1].Matched)
}

func TestRecognitionHandler_Classify_InvalidImage(t *testing.T) {
	h := NewRecognitionHandler(&MockRecognitionService{}, "unknown", testLogger())
	app := newTestApp()
	app.Post("/v1/classifications", h.Classify)

	body, contentType := createEnrollRequest(nil, make([]byte, 5000), "text/plain")
	req := httptest.NewRequest("POST", "/v1/classifications", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestRecognitionHandler_Recognize(t *testing.T) {
	svc := &MockRecognitionService{}
	svc.On("RecognizeAndRecord", mock.Anything, mock.Anything, mock.Anything).Return(&service.RecognitionReport{
		Results: []domain.MatchResult{
			{RegNumber: "CS/F/001", Distance: 0.2, Matched: true},
		},
		Outcomes: []domain.RecordOutcome{
			{RegNumber: "CS/F/001", Status: domain.RecordStatusRecorded},
		},
	}, nil)

	h := NewRecognitionHandler(svc, "unknown", testLogger())
	app := newTestApp()
	app.Post("/v1/recognitions", h.Recognize)

	body, contentType := createEnrollRequest(nil, make([]byte, 5000), "image/png")
	req := httptest.NewRequest("POST", "/v1/recognitions", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed RecognitionResponse
	require.NoError(t, json.Unmarshal(respBody, &parsed))
	require.Len(t, parsed.Results, 1)
	require.Len(t, parsed.Outcomes, 1)
	assert.Equal(t, "recorded", parsed.Outcomes[0].Status)
	assert.NotEmpty(t, parsed.Date)
}

func TestRecognitionHandler_Recognize_BackfillDate(t *testing.T) {
	svc := &MockRecognitionService{}
	svc.On("RecognizeAndRecord", mock.Anything, mock.Anything, mock.MatchedBy(func(asOf time.Time) bool {
		return asOf.Format("2006-01-02") == "2026-03-14"
	})).Return(&service.RecognitionReport{}, nil)

	h := NewRecognitionHandler(svc, "unknown", testLogger())
	app := newTestApp()
	app.Post("/v1/recognitions", h.Recognize)

	body, contentType := createEnrollRequest(map[string]string{"date": "2026-03-14"}, make([]byte, 5000), "image/jpeg")
	req := httptest.NewRequest("POST", "/v1/recognitions", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	svc.AssertExpectations(t)
}

func TestRecognitionHandler_Recognize_BadDate(t *testing.T) {
	h := NewRecognitionHandler(&MockRecognitionService{}, "unknown", testLogger())
	app := newTestApp()
	app.Post("/v1/recognitions", h.Recognize)

	body, contentType := createEnrollRequest(map[string]string{"date": "14/03/2026"}, make([]byte, 5000), "image/jpeg")
	req := httptest.NewRequest("POST", "/v1/recognitions", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}
