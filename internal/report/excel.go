// Package report renders income reports as downloadable xlsx workbooks.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"github.com/xuri/excelize/v2"
)

const incomeSheet = "Income"

// BuildIncomeWorkbook lays the aggregated rows into a sheet with a title,
// per-bucket rows and a totals line, returned as an in-memory buffer for
// HTTP download.
func BuildIncomeWorkbook(rows []*queries.IncomeRow, from, to time.Time, groupBy queries.GroupBy) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(incomeSheet)
	if err != nil {
		return nil, errs.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	title := fmt.Sprintf("Income %s - %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	_ = f.SetCellValue(incomeSheet, "A1", title)
	_ = f.MergeCell(incomeSheet, "A1", "C1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(incomeSheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range []string{"Date", "Income", "Reservations"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(incomeSheet, cell, header)
		_ = f.SetCellStyle(incomeSheet, cell, cell, headerStyle)
	}

	dateFormat := "2006-01-02"
	if groupBy == queries.GroupByMonth {
		dateFormat = "2006-01"
	}

	var totalAmount int64
	var totalCount int
	for i, row := range rows {
		line := i + 3
		_ = f.SetCellValue(incomeSheet, fmt.Sprintf("A%d", line), row.Date.Format(dateFormat))
		_ = f.SetCellValue(incomeSheet, fmt.Sprintf("B%d", line), row.Amount)
		_ = f.SetCellValue(incomeSheet, fmt.Sprintf("C%d", line), row.ReservationCount)
		totalAmount += row.Amount
		totalCount += row.ReservationCount
	}

	totalLine := len(rows) + 3
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellValue(incomeSheet, fmt.Sprintf("A%d", totalLine), "Total")
	_ = f.SetCellValue(incomeSheet, fmt.Sprintf("B%d", totalLine), totalAmount)
	_ = f.SetCellValue(incomeSheet, fmt.Sprintf("C%d", totalLine), totalCount)
	_ = f.SetCellStyle(incomeSheet, fmt.Sprintf("A%d", totalLine), fmt.Sprintf("C%d", totalLine), totalStyle)

	_ = f.SetColWidth(incomeSheet, "A", "A", 15)
	_ = f.SetColWidth(incomeSheet, "B", "B", 15)
	_ = f.SetColWidth(incomeSheet, "C", "C", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errs.Wrap(err, "writing workbook")
	}
	return buf, nil
}
