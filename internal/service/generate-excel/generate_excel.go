package generate_excel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"mes-golang/internal/service/metrics"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context, req metrics.ReportRequest) (*metrics.PerformanceReport, error)
}

type GenerateExcelService struct {
	builder ReportBuilder
}

func NewGenerateService(builder ReportBuilder) *GenerateExcelService {
	return &GenerateExcelService{builder: builder}
}

// GenerateExcel builds a performance report and renders it into an xlsx
// workbook: summary, downtime Pareto and machine ranking sheets.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, req metrics.ReportRequest) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	report, err := g.builder.BuildReport(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: build report: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	writeSummary(f, summarySheet, headerStyle, report)
	writeDowntime(f, headerStyle, report)
	writeMachines(f, headerStyle, report)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, sheet string, headerStyle int, report *metrics.PerformanceReport) {
	f.SetCellValue(sheet, "A1", "Performance Report")
	f.SetCellValue(sheet, "B1", report.DateRange.From+" — "+report.DateRange.To)
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	rows := [][2]any{
		{"Log entries", report.LogCount},
		{"Total output", report.Summary.TotalOutput},
		{"OK quantity", report.Summary.TotalOK},
		{"Target", report.Summary.TotalTarget},
		{"Rejections", report.Summary.TotalRejections},
		{"Rework", report.Summary.TotalRework},
		{"Efficiency %", report.Summary.EfficiencyPct},
		{"Rejection rate %", report.Summary.RejectionRate},
		{"Paid capacity (min)", report.Summary.TotalPaidCapacityMinutes},
		{"Runtime (min)", report.Summary.TotalRuntimeMinutes},
		{"Downtime (min)", report.Summary.TotalDowntimeMinutes},
		{"Idle time (min)", report.Summary.IdleTimeMinutes},
		{"Utilization %", report.Summary.UtilizationPct},
		{"Rejection cost", report.FinancialImpact.RejectionCost},
		{"Downtime cost", report.FinancialImpact.DowntimeCost},
		{"Rework cost", report.FinancialImpact.ReworkCost},
		{"Total loss", report.FinancialImpact.TotalLoss},
	}

	for i, row := range rows {
		rowNum := strconv.Itoa(i + 3)
		f.SetCellValue(sheet, "A"+rowNum, row[0])
		f.SetCellValue(sheet, "B"+rowNum, row[1])
	}
}

func writeDowntime(f *excelize.File, headerStyle int, report *metrics.PerformanceReport) {
	sheet := "Downtime"
	f.NewSheet(sheet)

	headers := []string{"Reason", "Category", "Minutes", "Hours", "% of Downtime", "% of Capacity", "Occurrences"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, loss := range report.DowntimeLosses {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, rowNum), loss.Reason)
		f.SetCellValue(sheet, cellName(2, rowNum), loss.Category)
		f.SetCellValue(sheet, cellName(3, rowNum), loss.Minutes)
		f.SetCellValue(sheet, cellName(4, rowNum), loss.Hours)
		f.SetCellValue(sheet, cellName(5, rowNum), loss.PctOfDowntime)
		f.SetCellValue(sheet, cellName(6, rowNum), loss.PctOfCapacity)
		f.SetCellValue(sheet, cellName(7, rowNum), loss.Occurrences)
	}
}

func writeMachines(f *excelize.File, headerStyle int, report *metrics.PerformanceReport) {
	sheet := "Machines"
	f.NewSheet(sheet)

	headers := []string{"Machine", "Name", "Output", "Rejections", "Runtime", "Downtime", "Paid Capacity", "Utilization %", "Avg Efficiency", "Rank"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, mp := range report.MachinePerformance {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, rowNum), mp.MachineID)
		f.SetCellValue(sheet, cellName(2, rowNum), mp.MachineName)
		f.SetCellValue(sheet, cellName(3, rowNum), mp.Output)
		f.SetCellValue(sheet, cellName(4, rowNum), mp.Rejections)
		f.SetCellValue(sheet, cellName(5, rowNum), mp.RuntimeMinutes)
		f.SetCellValue(sheet, cellName(6, rowNum), mp.DowntimeMinutes)
		f.SetCellValue(sheet, cellName(7, rowNum), mp.PaidCapacityMinutes)
		f.SetCellValue(sheet, cellName(8, rowNum), mp.UtilizationPct)
		f.SetCellValue(sheet, cellName(9, rowNum), mp.AvgEfficiency)
		f.SetCellValue(sheet, cellName(10, rowNum), mp.Rank)
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
