package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseUploadCSV(t *testing.T) {
	csvContent := `Name,VAT,City
Rossi Distribuzione,01234567890,Milano
Bianchi SRL,09876543210,Torino
`
	rows, err := ParseUpload(context.Background(), "upload.csv", strings.NewReader(csvContent))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Rossi Distribuzione", rows[0].Get("Name"))
	assert.Equal(t, "01234567890", rows[0].Get("VAT"))
	assert.Equal(t, 2, rows[0].SheetRow())
	assert.Equal(t, "Bianchi SRL", rows[1].Get("Name"))
	assert.Equal(t, 3, rows[1].SheetRow())
}

func TestParseUploadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Name"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "VAT"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Rossi Distribuzione"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "01234567890"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ParseUpload(context.Background(), "upload.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rossi Distribuzione", rows[0].Get("Name"))
	assert.Equal(t, "01234567890", rows[0].Get("VAT"))
}

func TestParseUploadEmptyFile(t *testing.T) {
	csvContent := "Name,VAT,City\n"
	_, err := ParseUpload(context.Background(), "upload.csv", strings.NewReader(csvContent))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseUploadBlankRowsOnly(t *testing.T) {
	csvContent := "Name,VAT,City\n,,\n  , ,\n"
	_, err := ParseUpload(context.Background(), "upload.csv", strings.NewReader(csvContent))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseUploadSkipsBlankLinesWithoutShiftingRowNumbers(t *testing.T) {
	csvContent := `Name,VAT
Rossi Distribuzione,01234567890
,
Bianchi SRL,09876543210
`
	rows, err := ParseUpload(context.Background(), "upload.csv", strings.NewReader(csvContent))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The blank line occupies row 3 in the uploader's editor, so the next
	// kept line must still report as row 4.
	assert.Equal(t, 2, rows[0].SheetRow())
	assert.Equal(t, 4, rows[1].SheetRow())
}

func TestParseUploadPadsShortRows(t *testing.T) {
	csvContent := `Name,VAT,City
Rossi Distribuzione,01234567890
`
	rows, err := ParseUpload(context.Background(), "upload.csv", strings.NewReader(csvContent))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("City"))
}

func TestParseUploadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	csvContent := "Name\nRossi Distribuzione\n"
	_, err := ParseUpload(ctx, "upload.csv", strings.NewReader(csvContent))
	assert.ErrorIs(t, err, context.Canceled)
}
