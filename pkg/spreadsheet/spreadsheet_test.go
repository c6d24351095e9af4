package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var volunteerHeaders = []string{"firstName", "lastName", "email", "mobile", "hoursPerMonth"}

func TestReadCSV(t *testing.T) {
	in := "\ufefffirstName,lastName,email,mobile,hoursPerMonth\n" +
		"Ravi,Kumar,ravi@x.com,5551234567,10\n" +
		",,,,\n" +
		"Sita,Rao,sita@x.com,5557654321,4\n"

	rows, err := Read("volunteers.csv", strings.NewReader(in), volunteerHeaders)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].Number != 2 || rows[0].Get("email") != "ravi@x.com" {
		t.Errorf("first row: got %+v", rows[0])
	}
	if rows[1].Number != 4 || rows[1].Get("hoursPerMonth") != "4" {
		t.Errorf("second row: got %+v", rows[1])
	}
}

func TestReadCSVHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"wrong delimiter", "firstName;lastName;email\nA;B;C\n", "Invalid CSV format or wrong delimiter. Could not parse headers."},
		{"missing columns", "firstName,lastName,email\nA,B,C\n", "Missing required columns: mobile, hoursPerMonth"},
		{"empty", "", "Invalid CSV format or wrong delimiter. Could not parse headers."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read("x.csv", strings.NewReader(tt.in), volunteerHeaders)
			if err == nil || err.Error() != tt.want {
				t.Errorf("got %v, want %q", err, tt.want)
			}
			if !IsFormatError(err) {
				t.Error("expected a FormatError")
			}
		})
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]interface{}{
		{"firstName", "lastName", "email", "mobile", "hoursPerMonth"},
		{"Ravi", "Kumar", "ravi@x.com", "5551234567", 10},
	}
	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := Read("volunteers.XLSX", &buf, volunteerHeaders)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Get("hoursPerMonth") != "10" || rows[0].Number != 2 {
		t.Errorf("rows: got %+v", rows)
	}
}

func TestReadXLSXMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	row := []interface{}{"firstName", "lastName", "email"}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	_, err := Read("v.xlsx", &buf, volunteerHeaders)
	if err == nil || err.Error() != "Missing required columns: mobile, hoursPerMonth" {
		t.Errorf("got %v", err)
	}
}

func TestReadUnsupported(t *testing.T) {
	if _, err := Read("members.pdf", strings.NewReader(""), volunteerHeaders); err != ErrUnsupported {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
	if Supported("a.txt") || !Supported("a.CSV") {
		t.Error("Supported mismatch")
	}
}
