package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"medsumm/internal/fhir"
	"medsumm/internal/repository"
	"medsumm/internal/service"
)

type bundleRequest struct {
	PatientID string `json:"patient_id"`
	Text      string `json:"text"`
}

type bundleResponse struct {
	Bundle     *fhir.Bundle           `json:"bundle"`
	Validation *fhir.ValidationResult `json:"validation"`
}

// UploadDocument runs the summary pipeline over an uploaded file.
//
// @Summary  Upload a medical document for summarization
// @Tags     ingest
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "PDF, image or text document"
// @Success  201 {object} model.DocumentMetadata
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /api/upload [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		meta, err := svc.Ingest(c.UserContext(), f, fh.Filename)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFileNameRequired):
				return writeError(c, fiber.StatusBadRequest, "FILE_NAME_REQUIRED", "file name is required")
			case errors.Is(err, service.ErrEmptyDocument):
				return writeError(c, fiber.StatusBadRequest, "EMPTY_DOCUMENT", err.Error())
			case errors.Is(err, service.ErrExtraction):
				return writeError(c, fiber.StatusUnprocessableEntity, "EXTRACTION_FAILED", err.Error())
			}
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(meta)
	}
}

// CreateBundle maps entities found in text into a clinical bundle.
//
// @Summary  Build a FHIR bundle from free text
// @Tags     ingest
// @Accept   json
// @Produce  json
// @Param    body body bundleRequest true "patient id and text"
// @Success  200 {object} bundleResponse
// @Failure  400 {object} errorPayload
// @Router   /api/bundle [post]
func CreateBundle(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bundleRequest
		if err := parseJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		res, err := svc.Bundle(c.UserContext(), req.PatientID, req.Text)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrPatientIDRequired):
				return writeError(c, fiber.StatusBadRequest, "PATIENT_ID_REQUIRED", "patient_id is required")
			case errors.Is(err, service.ErrTextRequired):
				return writeError(c, fiber.StatusBadRequest, "TEXT_REQUIRED", "text is required")
			}
			return err
		}
		return c.JSON(bundleResponse{Bundle: res.Bundle, Validation: res.Validation})
	}
}
