package output

import (
	"io"

	"github.com/xuri/excelize/v2"

	"studio-quote/core/estimator"
	"studio-quote/internal/errors"
)

// WorkbookSheet is the sheet the quote is written to
const WorkbookSheet = "Quote"

var workbookHeader = []interface{}{"Item", "Pricing", "Unit price", "Quantity", "Amount"}

// BuildWorkbook lays the quote out as a spreadsheet: one row per line item
// followed by the total. The caller must Close the returned file.
func BuildWorkbook(q *estimator.Quote) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		f.Close()
		return nil, errors.Internal("name quote sheet", err)
	}

	if err := f.SetSheetRow(WorkbookSheet, "A1", &workbookHeader); err != nil {
		f.Close()
		return nil, errors.Internal("write workbook header", err)
	}

	rowNum := 2
	for _, li := range q.LineItems {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		values := []interface{}{
			li.Label,
			li.Formula,
			li.UnitPrice.InexactFloat64(),
			li.Quantity,
			li.Amount.InexactFloat64(),
		}
		if err := f.SetSheetRow(WorkbookSheet, cell, &values); err != nil {
			f.Close()
			return nil, errors.Internal("write line item", err)
		}
		rowNum++
	}

	totalCell, _ := excelize.CoordinatesToCellName(1, rowNum)
	total := []interface{}{"Estimated total", q.Summary(), nil, nil, q.Total.InexactFloat64()}
	if err := f.SetSheetRow(WorkbookSheet, totalCell, &total); err != nil {
		f.Close()
		return nil, errors.Internal("write total", err)
	}

	noteCell, _ := excelize.CoordinatesToCellName(1, rowNum+2)
	if err := f.SetCellValue(WorkbookSheet, noteCell, Disclaimer); err != nil {
		f.Close()
		return nil, errors.Internal("write disclaimer", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(workbookHeader), rowNum)
		_ = f.SetCellStyle(WorkbookSheet, "A1", "E1", bold)
		_ = f.SetCellStyle(WorkbookSheet, totalCell, lastCol, bold)
	}
	_ = f.SetColWidth(WorkbookSheet, "A", "B", 28)

	return f, nil
}

// WriteWorkbook writes the quote as an .xlsx document to w
func WriteWorkbook(w io.Writer, q *estimator.Quote) error {
	f, err := BuildWorkbook(q)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return errors.Internal("write workbook", err)
	}
	return nil
}

// SaveWorkbook writes the quote as an .xlsx file at path
func SaveWorkbook(path string, q *estimator.Quote) error {
	f, err := BuildWorkbook(q)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "save workbook %s", path)
	}
	return nil
}
