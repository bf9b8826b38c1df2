// Package report выгружает финансовые отчёты в xlsx.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

const (
	SummarySheet = "Resumen"
	DailySheet   = "Ingresos diarios"
)

// Data содержит данные книги отчёта.
type Data struct {
	Start   calendar.Date
	End     calendar.Date
	General model.GeneralReport
	Daily   []model.DailyIncome
}

// WriteWorkbook пишет книгу с листами сводки и дневного дохода.
func WriteWorkbook(w io.Writer, d Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSummary(f, d); err != nil {
		return err
	}

	if _, err := f.NewSheet(DailySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeDaily(f, d.Daily); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, d Data) error {
	g := d.General
	rows := [][]any{
		{"Periodo", d.Start.String() + " a " + d.End.String()},
		{},
		{"Concepto", "Cantidad", "Monto (Bs)"},
		{"Ventas", g.Sales.TotalSales, g.Sales.TotalAmount.InexactFloat64()},
		{"Pedidos finalizados", g.CompletedOrders.TotalOrders, g.CompletedOrders.TotalAmount.InexactFloat64()},
		{"Anticipos pendientes", g.PendingAdvances.TotalOrders, g.PendingAdvances.TotalAdvance.InexactFloat64()},
		{"Total general", "", g.TotalGeneral.InexactFloat64()},
	}
	return writeRows(f, SummarySheet, rows)
}

func writeDaily(f *excelize.File, days []model.DailyIncome) error {
	rows := make([][]any, 0, len(days)+1)
	rows = append(rows, []any{"Día", "Monto (Bs)", "Porcentaje"})
	for _, d := range days {
		rows = append(rows, []any{d.Day, d.Amount.InexactFloat64(), d.Percentage.InexactFloat64()})
	}
	return writeRows(f, DailySheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
