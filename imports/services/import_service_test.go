package services

import (
	"context"
	"strings"
	"testing"

	"sales-ops-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestImportService(refs ReferenceChecker, store EntityStore) *ImportService {
	validator := NewValidator(refs)
	writer := NewWriter(store, NewAddressResolver(&stubGeocoder{}), zap.NewNop())
	return NewImportService(validator, writer, zap.NewNop())
}

func TestRunActivitiesEndToEnd(t *testing.T) {
	refs := newStubRefs()
	store := &recordingStore{}
	s := newTestImportService(refs, store)

	csvContent := "Name\nVisita\nTelefonata\nDegustazione\n"
	result, errRecords, err := s.Run(
		context.Background(), ActivitiesEntity, "activities.csv",
		strings.NewReader(csvContent), "ops@example.com",
	)

	require.NoError(t, err)
	assert.Empty(t, errRecords)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Count)
	assert.Len(t, store.activities, 3)
	assert.Equal(t, "Visita", store.activities[0].Name)
}

func TestRunEmptyFileIsTerminal(t *testing.T) {
	refs := newStubRefs()
	store := &recordingStore{}
	s := newTestImportService(refs, store)

	result, errRecords, err := s.Run(
		context.Background(), ActivitiesEntity, "activities.csv",
		strings.NewReader("Name\n"), "ops@example.com",
	)

	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.False(t, result.Success)
	require.Len(t, errRecords, 1)
	assert.Equal(t, models.EmptyFileErrorType, errRecords[0].ErrorType)
	assert.Zero(t, store.txCalls, "an empty file never opens a transaction")
}

func TestRunValidationFailureProducesErrorRecord(t *testing.T) {
	refs := newStubRefs()
	store := &recordingStore{}
	s := newTestImportService(refs, store)

	csvContent := "Name\nVisita\nTelefonata\nDegustazione\nVisita\n"
	result, errRecords, err := s.Run(
		context.Background(), ActivitiesEntity, "activities.csv",
		strings.NewReader(csvContent), "ops@example.com",
	)

	require.Error(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.FirstError)
	assert.Equal(t, 5, result.FirstError.Row)

	require.Len(t, errRecords, 1)
	assert.Equal(t, models.ValidationErrorType, errRecords[0].ErrorType)
	assert.Equal(t, 5, errRecords[0].RowNumber)
	assert.Contains(t, string(errRecords[0].RawRow), "Visita")
	assert.Zero(t, store.txCalls, "no write happens when validation fails")
}
