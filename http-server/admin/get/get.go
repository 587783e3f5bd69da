package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"mes-golang/internal/config"
	"mes-golang/internal/storage"
)

type ResponseCostRates struct {
	DefaultShiftMinutes   int     `json:"default_shift_minutes"`
	HourlyDowntimeCost    float64 `json:"hourly_downtime_cost"`
	RejectionCostPerPiece float64 `json:"rejection_cost_per_piece"`
	ReworkCostPerPiece    float64 `json:"rework_cost_per_piece"`
	Status                string  `json:"status"`
}

// GetCostRatesAdmin exposes the engine constants currently in effect so the
// admin panel can show what the financial estimates are based on.
func GetCostRatesAdmin(log *slog.Logger, perf config.Performance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, ResponseCostRates{
			DefaultShiftMinutes:   perf.DefaultShiftMinutes,
			HourlyDowntimeCost:    perf.HourlyDowntimeCost,
			RejectionCostPerPiece: perf.RejectionCostPerPiece,
			ReworkCostPerPiece:    perf.RejectionCostPerPiece * 0.5,
			Status:                strconv.Itoa(http.StatusOK),
		})
	}
}

type ResponseMachines struct {
	Machines []storage.Machine `json:"machines"`
	Status   string            `json:"status"`
	Error    string            `json:"error"`
}

type GetMachines interface {
	GetMachines(ctx context.Context) ([]storage.Machine, error)
}

func GetMachinesAdmin(log *slog.Logger, machines GetMachines) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.get.GetMachinesAdmin"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := machines.GetMachines(ctx)
		if err != nil {
			log.Error("failed to load machines", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseMachines{Error: "failed to load machines"})
			return
		}

		render.JSON(w, r, ResponseMachines{
			Machines: list,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
