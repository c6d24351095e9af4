// Package spreadsheet reads header-keyed rows out of CSV and XLSX uploads.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxUploadSize bounds bulk import files.
const MaxUploadSize = 5 << 20

// FormatError is a problem with the file itself rather than one of its rows.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

var ErrUnsupported = &FormatError{Message: "Only .csv and .xlsx files are allowed"}

// Row is one data row keyed by header. Number is the 1-based sheet row,
// so the first data row is 2.
type Row struct {
	Number int
	Values map[string]string
}

func (r Row) Get(key string) string { return r.Values[key] }

func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Read parses filename's content and checks that every required header is present.
func Read(filename string, src io.Reader, required []string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(src, required)
	case ".xlsx":
		return readXLSX(src, required)
	default:
		return nil, ErrUnsupported
	}
}

func readCSV(src io.Reader, required []string) ([]Row, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Message: fmt.Sprintf("Failed to parse CSV file: %v", err)}
	}
	if len(records) == 0 {
		return nil, &FormatError{Message: "Invalid CSV format or wrong delimiter. Could not parse headers."}
	}
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return build(records, required, "Invalid CSV format or wrong delimiter. Could not parse headers.")
}

func readXLSX(src io.Reader, required []string) ([]Row, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, &FormatError{Message: "Failed to parse Excel file"}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Message: "Invalid Excel format. headers not found."}
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &FormatError{Message: "Failed to parse Excel file"}
	}
	if len(records) == 0 {
		return nil, &FormatError{Message: "Invalid Excel format. headers not found."}
	}
	return build(records, required, "Invalid Excel format. headers not found.")
}

func build(records [][]string, required []string, headerMsg string) ([]Row, error) {
	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	if err := checkHeaders(headers, required, headerMsg); err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records[1:] {
		values := make(map[string]string, len(headers))
		blank := true
		for j, h := range headers {
			if h == "" || j >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[j])
			if v != "" {
				blank = false
			}
			values[h] = v
		}
		if blank {
			continue
		}
		rows = append(rows, Row{Number: i + 2, Values: values})
	}
	return rows, nil
}

func checkHeaders(headers, required []string, headerMsg string) error {
	if len(headers) < 2 && len(required) > 2 {
		return &FormatError{Message: headerMsg}
	}
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	var missing []string
	for _, r := range required {
		if !have[r] {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Message: "Missing required columns: " + strings.Join(missing, ", ")}
	}
	return nil
}

// IsFormatError reports whether err describes the file rather than an I/O failure.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
