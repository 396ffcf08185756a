package controllers

import (
	"errors"
	"log"
	"time"

	"sales-ops-backend/db/models"
	"sales-ops-backend/imports/services"
	"sales-ops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BulkImport handles one spreadsheet upload. The whole job is synchronous:
// the response carries either the committed row count or the first error
// that stopped the job, plus a download link for the error report when one
// was generated.
func (ic *ImportController) BulkImport(c *fiber.Ctx) error {
	entityType, err := services.ParseEntityType(c.Params("entityType"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown entity type",
			"error":   err.Error(),
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get file"})
	}

	userEmail := c.FormValue("created_by")
	if userEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'created_by' field in FormData"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to open uploaded file"})
	}
	defer src.Close()

	result, errRecords, runErr := ic.ImportService.Run(c.Context(), entityType, file.Filename, src, userEmail)

	var downloadLink string
	if len(errRecords) > 0 {
		downloadLink = ic.reportImportErrors(c, errRecords, userEmail)
	}

	if runErr != nil {
		status := importFailureStatus(runErr)
		return c.Status(status).JSON(fiber.Map{
			"message":       result.Message,
			"data":          result,
			"download_link": downloadLink,
		})
	}

	// Refresh the search index for the imported kind (only after successful
	// DB commit). Indexing failures never undo the import.
	ic.reindexEntity(c, entityType)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          "Bulk import completed",
		"successful_count": result.Count,
		"data":             result,
	})
}

// importFailureStatus maps the pipeline error taxonomy onto HTTP codes. Bad
// input is the uploader's to fix; write failures are ours.
func importFailureStatus(err error) int {
	var validationErr *services.ValidationError
	var geocodeErr *services.GeocodeFailure
	switch {
	case errors.Is(err, services.ErrEmptyFile):
		return fiber.StatusBadRequest
	case errors.As(err, &validationErr), errors.As(err, &geocodeErr):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// reportImportErrors persists the error rows, writes the Excel error report
// and emails its download link to the uploader. Every step is best-effort;
// a failed report never changes the job outcome.
func (ic *ImportController) reportImportErrors(c *fiber.Ctx, errRecords []models.BulkImportError, userEmail string) string {
	if err := ic.ImportRepo.LogImportErrors(c.Context(), errRecords); err != nil {
		log.Printf("Warning: Failed to log import error rows: %v", err)
	}

	headers := []string{"EntityType", "RowNumber", "Reason", "ErrorType", "AddedVia", "CreatedBy"}
	queryHash := uuid.New().String()
	filePath, err := utils.GenerateExcel(errRecords, queryHash, headers)
	if err != nil {
		log.Printf("Warning: Failed to generate error report Excel: %v", err)
		return ""
	}

	downloadLink := utils.GetDownloadURL(c, filePath)
	message := "Please find the attached file with the rows that stopped your import."
	subject := "Import Errors - " + time.Now().Format("2006-01-02 15:04:05")
	if err := utils.SendEmail(userEmail, message, subject, downloadLink); err != nil {
		log.Printf("Warning: Failed to send email with error report: %v", err)
		return downloadLink
	}

	active := true
	emailLog := models.EmailLog{
		ID:             uuid.New(),
		Recipient:      userEmail,
		Subject:        subject,
		Message:        message,
		SentAt:         utils.Today(),
		Active:         &active,
		AttachmentPath: downloadLink,
	}
	if err := ic.ImportRepo.LogEmailSent(c.Context(), &emailLog); err != nil {
		log.Printf("Warning: Failed to log email: %v", err)
	}
	return downloadLink
}

// reindexEntity bulk-reindexes the entity kind a committed import touched.
func (ic *ImportController) reindexEntity(c *fiber.Ctx, entityType services.EntityType) {
	if ic.BleveRepo == nil {
		return
	}

	switch entityType {
	case services.CompaniesEntity:
		companies, err := ic.CompanyRepo.GetAllCompanies(c.Context())
		if err != nil {
			log.Printf("Warning: Failed to fetch companies for reindexing: %v", err)
			return
		}
		if err := ic.BleveRepo.IndexExistingCompanies(companies); err != nil {
			log.Printf("Warning: Failed to reindex companies: %v", err)
		}
	case services.SellingPointsEntity:
		points, err := ic.ImportRepo.GetAllSellingPoints(c.Context())
		if err != nil {
			log.Printf("Warning: Failed to fetch selling points for reindexing: %v", err)
			return
		}
		if err := ic.BleveRepo.IndexExistingSellingPoints(points); err != nil {
			log.Printf("Warning: Failed to reindex selling points: %v", err)
		}
	case services.PeopleEntity:
		people, err := ic.ImportRepo.GetAllPeople(c.Context())
		if err != nil {
			log.Printf("Warning: Failed to fetch people for reindexing: %v", err)
			return
		}
		if err := ic.BleveRepo.IndexExistingPeople(people); err != nil {
			log.Printf("Warning: Failed to reindex people: %v", err)
		}
	}
}
