// Package export writes rename history to spreadsheets and interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"voice-renamer/internal/app/model"
)

// Supported formats, chosen by output file extension
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// SheetName is the worksheet written by ToExcel
const SheetName = "Renames"

var header = []string{
	"ID",
	"Run",
	"Source",
	"New Name",
	"Transcription",
	"Words",
	"Rung",
	"Provider",
	"Language",
	"SHA-256",
	"Created At",
	"Has Error",
	"Error Message",
}

func row(r model.RenameRecord) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.RunID,
		r.SourcePath,
		r.OutputName,
		r.Transcription,
		strconv.Itoa(r.WordCount),
		strconv.Itoa(r.Rung),
		r.Provider,
		r.Language,
		r.FileHash,
		r.CreatedAt.Format(time.RFC3339),
		strconv.Itoa(r.HasError),
		r.ErrorMessage,
	}
}

// FormatFromPath maps an output path to an export format
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case FormatXLSX, FormatCSV, FormatJSON:
		return ext, nil
	case "":
		return "", fmt.Errorf("output file %s has no extension, use .xlsx, .csv or .json", path)
	default:
		return "", fmt.Errorf("unsupported export format: %s", ext)
	}
}

// ToFile writes records to path in the format implied by its extension
func ToFile(records []model.RenameRecord, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return ToExcel(records, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if format == FormatCSV {
		err = ToCSV(records, f)
	} else {
		err = ToJSON(records, f)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// ToExcel saves records as a single-sheet workbook
func ToExcel(records []model.RenameRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range header {
		headerRow.AddCell().Value = title
	}

	for _, r := range records {
		sheetRow := sheet.AddRow()
		for _, value := range row(r) {
			sheetRow.AddCell().Value = value
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", outputFilePath, err)
	}
	return nil
}

// ToCSV writes records as CSV with a header row
func ToCSV(records []model.RenameRecord, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := csvWriter.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// ToJSON writes records as an indented JSON array
func ToJSON(records []model.RenameRecord, writer io.Writer) error {
	if records == nil {
		records = []model.RenameRecord{}
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
