package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"sales-ops-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportService runs the whole pipeline for one upload: parse, validate the
// entire batch, then write. The job is synchronous from the caller's point
// of view; rows are processed strictly sequentially.
type ImportService struct {
	validator *Validator
	writer    *Writer
	logger    *zap.Logger
}

func NewImportService(validator *Validator, writer *Writer, logger *zap.Logger) *ImportService {
	return &ImportService{validator: validator, writer: writer, logger: logger}
}

// Run executes one import job. The returned error records, when non-empty,
// describe the rows that stopped the job and are ready to persist for the
// uploader's error report.
func (s *ImportService) Run(
	ctx context.Context,
	entityType EntityType,
	filename string,
	reader io.Reader,
	createdBy string,
) (JobResult, []models.BulkImportError, error) {
	rows, err := ParseUpload(ctx, filename, reader)
	if err != nil {
		if errors.Is(err, ErrEmptyFile) {
			record := models.BulkImportError{
				ID:         uuid.New(),
				EntityType: string(entityType),
				Reason:     err.Error(),
				ErrorType:  models.EmptyFileErrorType,
				AddedVia:   models.BulkAddedViaType,
				CreatedBy:  createdBy,
			}
			return failureResult(err), []models.BulkImportError{record}, err
		}
		return failureResult(err), nil, err
	}

	job := &ImportJob{EntityType: entityType, Rows: rows}

	batch, err := s.validator.ValidateJob(ctx, job)
	if err != nil {
		s.logger.Warn("import validation failed",
			zap.String("entity_type", string(entityType)),
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		return failureResult(err), errorRecords(job, err, createdBy), err
	}

	count, err := s.writer.WriteBatch(ctx, batch, createdBy)
	if err != nil {
		s.logger.Error("import write phase failed, batch rolled back",
			zap.String("entity_type", string(entityType)),
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		return failureResult(err), errorRecords(job, err, createdBy), err
	}

	s.logger.Info("import completed",
		zap.String("entity_type", string(entityType)),
		zap.Int("count", count),
	)
	return JobResult{Success: true, Count: count, Message: "import completed"}, nil, nil
}

// failureResult maps the pipeline error taxonomy onto the caller contract.
func failureResult(err error) JobResult {
	result := JobResult{Success: false, Message: err.Error()}

	var validationErr *ValidationError
	var geocodeErr *GeocodeFailure
	var writeErr *WriteError
	switch {
	case errors.As(err, &validationErr):
		result.FirstError = &RowErrorDetail{Row: validationErr.Row, Error: validationErr.Message}
	case errors.As(err, &geocodeErr):
		result.FirstError = &RowErrorDetail{Row: geocodeErr.Row, Error: geocodeErr.Error()}
	case errors.As(err, &writeErr):
		result.FirstError = &RowErrorDetail{Row: writeErr.Row, Error: writeErr.Error()}
	}
	return result
}

// errorRecords builds the persistable error rows for a failed job, carrying
// the original cell values of the offending line when it can be identified.
func errorRecords(job *ImportJob, err error, createdBy string) []models.BulkImportError {
	record := models.BulkImportError{
		ID:         uuid.New(),
		EntityType: string(job.EntityType),
		Reason:     err.Error(),
		AddedVia:   models.BulkAddedViaType,
		CreatedBy:  createdBy,
	}

	var validationErr *ValidationError
	var geocodeErr *GeocodeFailure
	var writeErr *WriteError
	switch {
	case errors.As(err, &validationErr):
		record.ErrorType = models.ValidationErrorType
		record.RowNumber = validationErr.Row
		record.Reason = validationErr.Message
	case errors.As(err, &geocodeErr):
		record.ErrorType = models.GeocodeErrorType
		record.RowNumber = geocodeErr.Row
	case errors.As(err, &writeErr):
		record.ErrorType = models.WriteErrorType
		record.RowNumber = writeErr.Row
	default:
		record.ErrorType = models.ValidationErrorType
	}

	if record.RowNumber > 0 {
		for _, row := range job.Rows {
			if row.SheetRow() == record.RowNumber {
				if payload, marshalErr := json.Marshal(row.Fields); marshalErr == nil {
					record.RawRow = payload
				}
				break
			}
		}
	}

	return []models.BulkImportError{record}
}
