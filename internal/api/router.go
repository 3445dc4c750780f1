package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/presenca/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/presenca/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/presenca/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/presenca/internal/config"
	"github.com/saturnino-fabrica-de-software/presenca/internal/provider"
	"github.com/saturnino-fabrica-de-software/presenca/internal/repository"
	"github.com/saturnino-fabrica-de-software/presenca/internal/service"
)

type Dependencies struct {
	StudentRepo    *repository.StudentRepository
	AttendanceRepo *repository.AttendanceRepository
	AuditRepo      *repository.RecognitionAuditRepository
	Detector       provider.FaceDetector
	DB             *pgxpool.Pool
	Config         *config.Config
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Presenca API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure API routes if dependencies were provided
	if r.deps == nil {
		return
	}

	v1 := r.app.Group("/v1")

	// Services
	enrollmentService := service.NewEnrollmentService(r.deps.StudentRepo, r.deps.Detector)
	recorder := service.NewAttendanceRecorder(r.deps.AttendanceRepo)
	recognitionService := service.NewRecognitionService(
		r.deps.Detector,
		r.deps.StudentRepo,
		recorder,
		r.deps.AuditRepo,
	).WithThreshold(r.deps.Config.MatchThreshold)

	// Handlers
	studentHandler := handler.NewStudentHandler(enrollmentService, r.deps.StudentRepo, r.logger)
	recognitionHandler := handler.NewRecognitionHandler(recognitionService, r.deps.Config.UnknownLabel, r.logger)
	attendanceHandler := handler.NewAttendanceHandler(r.deps.AttendanceRepo, r.logger)

	// Student routes
	v1.Post("/students", studentHandler.Enroll)
	v1.Get("/students/:reg_number", studentHandler.Get)
	v1.Delete("/students/:reg_number", studentHandler.Delete)

	// Recognition routes
	v1.Post("/classifications", recognitionHandler.Classify)
	v1.Post("/recognitions", recognitionHandler.Recognize)

	// Attendance routes
	v1.Get("/attendance", attendanceHandler.ListByDate)
}

// App expõe o fiber.App para testes de integração.
func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
