package handler

import (
	"github.com/gofiber/fiber/v2"

	"medsumm/internal/service"
)

// Version is reported by the Q&A status endpoint.
const Version = "2.1.0"

type qaStatusResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Version       string `json:"version"`
	RecordsLoaded bool   `json:"records_loaded"`
	RecordCount   int    `json:"record_count"`
}

type ingestStatusResponse struct {
	Message string `json:"message"`
}

// LivenessProbe answers 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// QAStatus reports the Q&A service status and whether any records are loaded.
//
// @Summary  Q&A service status
// @Tags     qa
// @Produce  json
// @Success  200 {object} qaStatusResponse
// @Router   / [get]
func QAStatus(svc service.PatientService, provider string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.RecordCount(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(qaStatusResponse{
			Status:        "healthy",
			Message:       "Ayu-Chain AI Agent is running (" + provider + ").",
			Version:       Version,
			RecordsLoaded: n > 0,
			RecordCount:   n,
		})
	}
}

// IngestStatus reports that the ingestion service is up.
//
// @Summary  Ingestion service status
// @Tags     ingest
// @Produce  json
// @Success  200 {object} ingestStatusResponse
// @Router   / [get]
func IngestStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(ingestStatusResponse{Message: "Medical AI backend is running!"})
	}
}
