package services

import (
	"errors"
	"fmt"
	"strings"
)

// EntityType selects the schema used by the validator and writer.
type EntityType string

const (
	CompaniesEntity     EntityType = "companies"
	SellingPointsEntity EntityType = "selling-points"
	PeopleEntity        EntityType = "people"
	ActivitiesEntity    EntityType = "activities"
)

// ParseEntityType maps a URL segment to an EntityType.
func ParseEntityType(raw string) (EntityType, error) {
	switch EntityType(strings.ToLower(strings.TrimSpace(raw))) {
	case CompaniesEntity:
		return CompaniesEntity, nil
	case SellingPointsEntity:
		return SellingPointsEntity, nil
	case PeopleEntity:
		return PeopleEntity, nil
	case ActivitiesEntity:
		return ActivitiesEntity, nil
	default:
		return "", fmt.Errorf("unknown entity type %q", raw)
	}
}

// Row is one data line of an uploaded file. Index is 0-based over the data
// rows; the header occupies the logical row before the first data row.
type Row struct {
	Index  int
	Fields map[string]string
}

// SheetRow converts the parse index into the spreadsheet row number the
// uploader sees in their editor (header = row 1).
func (r Row) SheetRow() int {
	return r.Index + 2
}

// Get returns a trimmed cell value by column name.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// ImportJob owns the rows of one upload for the duration of the run.
// Nothing in a job survives it: the duplicate-tracking state the validator
// builds is scoped here, never shared across jobs.
type ImportJob struct {
	EntityType EntityType
	Rows       []Row
}

// ErrEmptyFile is returned when the uploaded file has a header but no data
// rows. It is terminal: no validation or writes happen.
var ErrEmptyFile = errors.New("file contains no data rows")

// ValidationError marks the first row that failed a schema or business rule.
// It always aborts the whole job before any write.
type ValidationError struct {
	Row     int // spreadsheet row number, header = 1
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// GeocodeFailure is raised when an address could not be resolved to
// coordinates. Row is zero when the failure came from an interactive form
// rather than a bulk row.
type GeocodeFailure struct {
	Row  int
	City string
	Err  error
}

func (e *GeocodeFailure) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: could not geocode city %q: %v", e.Row, e.City, e.Err)
	}
	return fmt.Sprintf("could not geocode city %q: %v", e.City, e.Err)
}

func (e *GeocodeFailure) Unwrap() error {
	return e.Err
}

// WriteError wraps a storage failure with the row it happened on. The whole
// batch is rolled back when one of these surfaces.
type WriteError struct {
	Row int
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("row %d: write failed: %v", e.Row, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// RowErrorDetail is the caller-facing slice of an error, keyed by the
// spreadsheet row number.
type RowErrorDetail struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// JobResult is the single outcome of an upload returned to the caller.
type JobResult struct {
	Success    bool            `json:"success"`
	Count      int             `json:"count"`
	Message    string          `json:"message,omitempty"`
	FirstError *RowErrorDetail `json:"first_error,omitempty"`
}
