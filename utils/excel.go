package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

const reportDir = "./public/files"

// EnsureDirectoryExists ensures the specified directory exists before file saving
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}
	return nil
}

// GenerateExcel creates an Excel report from a slice of structs, one column
// per header name. Header names must match exported struct field names.
// Returns the public path used for download links.
func GenerateExcel(data interface{}, taskName string, headers []string) (string, error) {
	if err := EnsureDirectoryExists(reportDir + "/placeholder"); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected data to be a slice, got %v", dataSlice.Kind())
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := dataSlice.Index(row)
		for col, header := range headers {
			field := item.FieldByName(header)
			if !field.IsValid() {
				continue
			}
			value := field.Interface()
			if raw, ok := value.(interface{ String() string }); ok {
				value = raw.String()
			} else if raw, ok := value.([]byte); ok {
				value = string(raw)
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("error setting value for %s in row %d: %v", header, row+2, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("%s_%s.xlsx", taskName, time.Now().Format("2006-01-02_15-04-05"))
	savePath := filepath.Join(reportDir, fileName)
	if err := f.SaveAs(savePath); err != nil {
		return "", fmt.Errorf("error saving Excel file: %v", err)
	}

	return fmt.Sprintf("/public/files/%s", fileName), nil
}
