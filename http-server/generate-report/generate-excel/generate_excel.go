package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mes-golang/internal/service/metrics"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, req metrics.ReportRequest) ([]byte, error)
}

// GenerateReportExcel streams the performance report as an xlsx download.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.generate_report.GenerateReportExcel"

		query := r.URL.Query()

		req := metrics.ReportRequest{
			Range:       query.Get("range"),
			DateFrom:    query.Get("from"),
			DateTo:      query.Get("to"),
			MachineID:   query.Get("machine_id"),
			OperatorID:  query.Get("operator_id"),
			ProcessCode: query.Get("process"),
			ItemSearch:  query.Get("item"),
			Shift:       query.Get("shift"),
		}

		// Excel generation walks the whole window, give it more room than the
		// JSON endpoint.
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, req)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Performance_Report_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
