package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestReadExcelStream(t *testing.T) {
	buf := writeTestWorkbook(t, [][]any{
		{"Instrument", "Tradingsymbol", "Industry", "Qty.", "Avg.", "Last Price"},
		{"Infosys Ltd", "INFY", "IT Services", 10, 1450.25, 1520.50},
		{"HDFC Bank Ltd", "HDFCBANK", "Banking", 5, 1650.75, 1680.25},
	})

	holdings, err := ReadExcelStream(buf)
	if err != nil {
		t.Fatalf("ReadExcelStream: %v", err)
	}
	if len(holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(holdings))
	}

	first := holdings[0]
	if first.Name != "Infosys Ltd" || first.Ticker != "INFY" {
		t.Errorf("holding = %s (%s)", first.Name, first.Ticker)
	}
	if first.Sector == nil || *first.Sector != "IT Services" {
		t.Errorf("Sector = %v", first.Sector)
	}
	if first.AveragePrice == nil || first.AveragePrice.String() != "1450.25" {
		t.Errorf("AveragePrice = %v", first.AveragePrice)
	}
	if first.CurrentPrice == nil || first.CurrentPrice.String() != "1520.5" {
		t.Errorf("CurrentPrice = %v", first.CurrentPrice)
	}
}

func TestReadExcelStream_NoIdentityColumns(t *testing.T) {
	buf := writeTestWorkbook(t, [][]any{
		{"P&L", "Day Change"},
		{100, -2},
	})

	if _, err := ReadExcelStream(buf); err == nil {
		t.Fatal("expected an error for a sheet without name or ticker columns")
	}
}

func TestReadExcelStream_HeaderOnly(t *testing.T) {
	buf := writeTestWorkbook(t, [][]any{
		{"Name", "Ticker"},
	})

	if _, err := ReadExcelStream(buf); err == nil {
		t.Fatal("expected an error for a sheet with no data rows")
	}
}

func TestReadExcel_File(t *testing.T) {
	buf := writeTestWorkbook(t, [][]any{
		{"Name", "Ticker"},
		{"Acme Corp", "ACME"},
	})

	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	holdings, err := ReadExcel(path)
	if err != nil {
		t.Fatalf("ReadExcel: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Ticker != "ACME" {
		t.Errorf("holdings = %+v", holdings)
	}
}

func TestReadCSV(t *testing.T) {
	data := `Company Name,Symbol,Sector,Quantity,Buy Price,CMP
Acme Corp,ACME,Technology,10,95.50,110.25
Globex,GLOB,,5,,
,,,,,
`
	holdings, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(holdings) != 2 {
		t.Fatalf("got %d holdings, want 2 (blank row skipped)", len(holdings))
	}
	if holdings[0].CurrentPrice == nil || holdings[0].CurrentPrice.String() != "110.25" {
		t.Errorf("CurrentPrice = %v", holdings[0].CurrentPrice)
	}
	if holdings[1].Sector != nil || holdings[1].Quantity == nil {
		t.Errorf("holdings[1] = %+v", holdings[1])
	}
}

func TestReadCSV_NoIdentityColumns(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("A,B\n1,2\n")); err == nil {
		t.Fatal("expected an error for a csv without name or ticker columns")
	}
}

func TestReadPortfolio_UnsupportedFormat(t *testing.T) {
	if _, err := ReadPortfolio("portfolio.pdf"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}
