package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// StudentData represents an enrolled student record
type StudentData struct {
	RegNumber  string `json:"reg_number" example:"CS/F/2021/001"`
	Name       string `json:"name" example:"Ada Lovelace"`
	Department string `json:"department" example:"Computer Science"`
	Level      string `json:"level" example:"400"`
	CreatedAt  string `json:"created_at" example:"2026-01-01T00:00:00Z"`
	UpdatedAt  string `json:"updated_at" example:"2026-01-01T00:00:00Z"`
}

// ClassificationData represents one classified face
type ClassificationData struct {
	Label    string  `json:"label" example:"CS/F/2021/001"`
	Distance float64 `json:"distance" example:"0.31"`
	Matched  bool    `json:"matched" example:"true"`
}

// OutcomeData represents one attendance write outcome
type OutcomeData struct {
	RegNumber string `json:"reg_number" example:"CS/F/2021/001"`
	Status    string `json:"status" example:"recorded"`
	Error     string `json:"error,omitempty"`
}

// ClassificationsData is the classify response body
type ClassificationsData struct {
	Results []ClassificationData `json:"results"`
}

// RecognitionData is the recognize response body
type RecognitionData struct {
	Results  []ClassificationData `json:"results"`
	Outcomes []OutcomeData        `json:"outcomes"`
	Date     string               `json:"date" example:"2026-03-14"`
}

// AttendanceEventData represents one attendance ledger entry
type AttendanceEventData struct {
	ID         string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	RegNumber  string `json:"reg_number" example:"CS/F/2021/001"`
	AttendedOn string `json:"attended_on" example:"2026-03-14"`
	CreatedAt  string `json:"created_at" example:"2026-03-14T08:02:11Z"`
}

// AttendanceData is the attendance listing response body
type AttendanceData struct {
	Date   string                `json:"date" example:"2026-03-14"`
	Events []AttendanceEventData `json:"events"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Presenca Attendance API",
		Version:     "v1.0.0",
		Description: "Face-recognition attendance service: enroll students, classify faces and record once-per-day attendance",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/students - Enroll Student
		endpoint.New(
			endpoint.POST,
			"/students",
			endpoint.WithTags("Students"),
			endpoint.WithSummary("Enroll or re-enroll a student"),
			endpoint.WithDescription("Computes a face descriptor from the submitted image (which must contain exactly one face) and upserts the record keyed by reg_number."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StudentData{}, "201", "Student enrolled"),
				response.New(StudentData{}, "200", "Existing enrollment overwritten"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces detected"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/students/{reg_number} - Get Student
		endpoint.New(
			endpoint.GET,
			"/students/{reg_number}",
			endpoint.WithTags("Students"),
			endpoint.WithSummary("Fetch a student record"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("reg_number", parameter.Path, parameter.WithDescription("Registration number")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StudentData{}, "200", "Student record"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "STUDENT_NOT_FOUND", Message: "Student not found"}, "404", "Not Found"),
			}),
		),

		// DELETE /v1/students/{reg_number} - Remove Student
		endpoint.New(
			endpoint.DELETE,
			"/students/{reg_number}",
			endpoint.WithTags("Students"),
			endpoint.WithSummary("Remove a student record"),
			endpoint.WithParams(
				parameter.StrParam("reg_number", parameter.Path, parameter.WithDescription("Registration number")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Student removed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "STUDENT_NOT_FOUND", Message: "Student not found"}, "404", "Not Found"),
			}),
		),

		// POST /v1/classifications - Classify Faces
		endpoint.New(
			endpoint.POST,
			"/classifications",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Classify every face in an image"),
			endpoint.WithDescription("Runs nearest-neighbor matching against the enrolled population without recording anything."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ClassificationsData{}, "200", "Classification results in detection order"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/recognitions - Recognize and Record
		endpoint.New(
			endpoint.POST,
			"/recognitions",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Classify faces and record attendance"),
			endpoint.WithDescription("Classifies every face and records attendance for matched identities. Each identity is recorded at most once per calendar day; repeats report already_recorded."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognitionData{}, "200", "Recognition report"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "Persistent store is unavailable"}, "503", "Service Unavailable"),
			}),
		),

		// GET /v1/attendance - List Attendance
		endpoint.New(
			endpoint.GET,
			"/attendance",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("List one day's attendance events"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("date", parameter.Query, parameter.WithDescription("Calendar day (YYYY-MM-DD, default: today UTC)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttendanceData{}, "200", "Attendance events for the day"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "400", "Bad Request"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
