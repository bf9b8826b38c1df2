package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

func TestWriteWorkbook(t *testing.T) {
	data := Data{
		Start: calendar.Date{Year: 2025, Month: 6, Day: 1},
		End:   calendar.Date{Year: 2025, Month: 6, Day: 30},
		General: model.GeneralReport{
			Sales:           model.SalesTotals{TotalSales: 12, TotalAmount: decimal.RequireFromString("840.50")},
			CompletedOrders: model.OrderTotals{TotalOrders: 3, TotalAmount: decimal.RequireFromString("1200")},
			PendingAdvances: model.AdvanceTotals{TotalOrders: 2, TotalAdvance: decimal.RequireFromString("150")},
			TotalGeneral:    decimal.RequireFromString("2190.50"),
		},
		Daily: []model.DailyIncome{
			{Day: "2025-06-02", Amount: decimal.RequireFromString("300"), Percentage: decimal.RequireFromString("25")},
			{Day: "2025-06-03", Amount: decimal.RequireFromString("900"), Percentage: decimal.RequireFromString("75")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, DailySheet}, f.GetSheetList())

	period, err := f.GetCellValue(SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01 a 2025-06-30", period)

	sales, err := f.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "12", sales)

	rows, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2025-06-03", "900", "75"}, rows[2])
}
