package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"medsumm/internal/repository"
	"medsumm/internal/service"
)

type askRequest struct {
	Question  string `json:"question"`
	PatientID string `json:"patient_id"`
}

type askResponse struct {
	Success   bool   `json:"success"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Outcome   string `json:"outcome"`
	PatientID string `json:"patient_id"`
}

type analyzeRequest struct {
	PatientID string   `json:"patient_id"`
	CIDs      []string `json:"cids"`
}

type analyzeResponse struct {
	Success   bool   `json:"success"`
	Analysis  string `json:"analysis"`
	Outcome   string `json:"outcome"`
	PatientID string `json:"patient_id"`
}

type recordRequest struct {
	Text string `json:"text"`
}

type recordResponse struct {
	Success   bool   `json:"success"`
	PatientID string `json:"patient_id"`
}

// parseJSON decodes the request body into v. An empty body leaves v untouched.
func parseJSON(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(v)
}

// AskQuestion answers a question against a patient's stored records.
//
// @Summary  Ask a question about a patient's records
// @Tags     qa
// @Accept   json
// @Produce  json
// @Param    body body askRequest true "question and optional patient_id"
// @Success  200 {object} askResponse
// @Failure  400 {object} errorPayload
// @Router   /api/ask [post]
func AskQuestion(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if err := parseJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		res, err := svc.Ask(c.UserContext(), req.PatientID, req.Question)
		if err != nil {
			if errors.Is(err, service.ErrQuestionRequired) {
				return writeError(c, fiber.StatusBadRequest, "QUESTION_REQUIRED", "Question is required")
			}
			return err
		}
		return c.JSON(askResponse{
			Success:   true,
			Question:  res.Question,
			Answer:    res.Answer,
			Outcome:   string(res.Outcome),
			PatientID: res.PatientID,
		})
	}
}

// AnalyzeRecords merges fetched content into a patient's record and analyzes it.
//
// @Summary  Analyze a patient's combined records
// @Tags     qa
// @Accept   json
// @Produce  json
// @Param    body body analyzeRequest false "optional patient_id and content ids"
// @Success  200 {object} analyzeResponse
// @Failure  400 {object} errorPayload
// @Router   /api/analyze [post]
func AnalyzeRecords(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req analyzeRequest
		if err := parseJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		res, err := svc.Analyze(c.UserContext(), req.PatientID, req.CIDs)
		if err != nil {
			if errors.Is(err, service.ErrNoRecords) {
				return writeError(c, fiber.StatusBadRequest, "NO_RECORDS", err.Error())
			}
			return err
		}
		return c.JSON(analyzeResponse{
			Success:   true,
			Analysis:  res.Analysis,
			Outcome:   string(res.Outcome),
			PatientID: res.PatientID,
		})
	}
}

// PutRecord replaces a patient's record text.
//
// @Summary  Store a patient's record text
// @Tags     qa
// @Accept   json
// @Produce  json
// @Param    patient_id path string true "patient id"
// @Param    body body recordRequest true "record text"
// @Success  200 {object} recordResponse
// @Failure  400 {object} errorPayload
// @Router   /api/records/{patient_id} [put]
func PutRecord(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patientID := strings.TrimSpace(c.Params("patient_id"))
		var req recordRequest
		if err := parseJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		if err := svc.PutRecord(c.UserContext(), patientID, req.Text); err != nil {
			switch {
			case errors.Is(err, repository.ErrPatientIDRequired):
				return writeError(c, fiber.StatusBadRequest, "PATIENT_ID_REQUIRED", "patient_id is required")
			case errors.Is(err, service.ErrTextRequired):
				return writeError(c, fiber.StatusBadRequest, "TEXT_REQUIRED", "text is required")
			}
			return err
		}
		return c.JSON(recordResponse{Success: true, PatientID: patientID})
	}
}

// DeleteRecord removes a patient's record.
//
// @Summary  Delete a patient's record
// @Tags     qa
// @Param    patient_id path string true "patient id"
// @Success  204
// @Router   /api/records/{patient_id} [delete]
func DeleteRecord(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patientID := strings.TrimSpace(c.Params("patient_id"))
		if err := svc.DeleteRecord(c.UserContext(), patientID); err != nil {
			if errors.Is(err, repository.ErrPatientIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "PATIENT_ID_REQUIRED", "patient_id is required")
			}
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
