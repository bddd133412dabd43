package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Date", "Product", "Buying Price", "Selling Price", "Quantity", "Profit"}

// WriteReportCSV streams report rows as CSV, one line item per row.
func WriteReportCSV(w io.Writer, rows []*ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date.String(),
			row.ProductName,
			row.BuyingPrice.String(),
			row.SellingPrice.String(),
			strconv.Itoa(row.Quantity),
			row.Profit.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildReportExcel renders the same rows as an xlsx workbook.
func BuildReportExcel(rows []*ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Sheet1")
	if err != nil {
		return nil, err
	}

	// Add headers
	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue("Sheet1", cell, header)
	}

	// Add data
	for i, row := range rows {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue("Sheet1", "A"+rowNo, row.Date.String())
		f.SetCellValue("Sheet1", "B"+rowNo, row.ProductName)
		f.SetCellValue("Sheet1", "C"+rowNo, row.BuyingPrice.String())
		f.SetCellValue("Sheet1", "D"+rowNo, row.SellingPrice.String())
		f.SetCellValue("Sheet1", "E"+rowNo, row.Quantity)
		f.SetCellValue("Sheet1", "F"+rowNo, row.Profit.String())
	}

	return f, nil
}
