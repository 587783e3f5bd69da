package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"mes-golang/internal/service/metrics"
)

type ResponseReport struct {
	Report *metrics.PerformanceReport `json:"report"`
	Status string                     `json:"status"`
	Error  string                     `json:"error"`
}

type ReportBuilder interface {
	BuildReport(ctx context.Context, req metrics.ReportRequest) (*metrics.PerformanceReport, error)
}

// GetPerformanceReport serves the full performance report for a date window
// plus optional equality filters.
func GetPerformanceReport(log *slog.Logger, builder ReportBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.performance.get.GetPerformanceReport"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		report, err := builder.BuildReport(ctx, req)
		if err != nil {
			log.Error("failed to build performance report", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseReport{Error: "failed to build performance report"})
			return
		}

		render.JSON(w, r, ResponseReport{
			Report: report,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
