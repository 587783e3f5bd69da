package generate_excel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"mes-golang/internal/service/metrics"
)

type stubBuilder struct {
	report *metrics.PerformanceReport
	err    error
}

func (s *stubBuilder) BuildReport(ctx context.Context, req metrics.ReportRequest) (*metrics.PerformanceReport, error) {
	return s.report, s.err
}

func TestGenerateExcel_RendersSheets(t *testing.T) {
	report := &metrics.PerformanceReport{
		LogCount:  2,
		DateRange: metrics.DateRange{From: "2026-03-02", To: "2026-03-08"},
		DowntimeLosses: []metrics.DowntimeLoss{
			{Reason: "Power failure", Category: "Electrical", Minutes: 60, Hours: 1, Occurrences: 1},
		},
		MachinePerformance: []metrics.MachinePerformance{
			{MachineID: "M-1", MachineName: "Lathe 1", UtilizationPct: 80.5, Rank: "high"},
		},
	}

	service := NewGenerateService(&stubBuilder{report: report})

	data, err := service.GenerateExcel(context.Background(), metrics.ReportRequest{Range: "week"})

	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Downtime", "Machines"}, f.GetSheetList())

	reason, err := f.GetCellValue("Downtime", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "Power failure", reason)

	machine, err := f.GetCellValue("Machines", "B2")
	assert.NoError(t, err)
	assert.Equal(t, "Lathe 1", machine)
}

func TestGenerateExcel_BuilderFailure(t *testing.T) {
	service := NewGenerateService(&stubBuilder{err: errors.New("db unreachable")})

	data, err := service.GenerateExcel(context.Background(), metrics.ReportRequest{})

	assert.Error(t, err)
	assert.Nil(t, data)
}
