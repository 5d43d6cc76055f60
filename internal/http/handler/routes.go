package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"medsumm/internal/service"
)

// RegisterQARoutes attaches the patient Q&A routes to the provided Fiber app.
func RegisterQARoutes(app *fiber.App, svc service.PatientService, providerName string) {
	app.Get("/", QAStatus(svc, providerName))

	api := app.Group("/api")
	api.Post("/ask", AskQuestion(svc))
	api.Post("/analyze", AnalyzeRecords(svc))
	api.Put("/records/:patient_id", PutRecord(svc))
	api.Delete("/records/:patient_id", DeleteRecord(svc))
}

// RegisterIngestRoutes attaches the document-ingestion routes to the provided Fiber app.
func RegisterIngestRoutes(app *fiber.App, svc service.DocumentService) {
	app.Get("/", IngestStatus())

	api := app.Group("/api")
	api.Post("/upload", UploadDocument(svc))
	api.Post("/bundle", CreateBundle(svc))
}

// RegisterOpsRoutes attaches liveness, metrics and API docs routes shared by both services.
func RegisterOpsRoutes(app *fiber.App, gatherer prometheus.Gatherer, spec *swag.Spec) {
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if spec == nil {
		return
	}
	ui := swagger.New(swagger.Config{InstanceName: spec.InstanceName()})
	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		spec.Host = c.Get("Host")
		spec.Schemes = []string{scheme}

		return ui(c)
	})
}
