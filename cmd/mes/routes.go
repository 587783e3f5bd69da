package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadmin "mes-golang/http-server/admin/get"
	generate_excel "mes-golang/http-server/generate-report/generate-excel"
	getperformance "mes-golang/http-server/performance/get"
	"mes-golang/internal/config"
	"mes-golang/internal/middleware/auth"
	generate_excel2 "mes-golang/internal/service/generate-excel"
	"mes-golang/internal/service/metrics"
	"mes-golang/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, performance *metrics.PerformanceService, genService *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Performance metrics report with optional filters
	router.Get("/api/performance/report", getperformance.GetPerformanceReport(log, performance))

	// Excel export of the same report
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, genService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/costs", getadmin.GetCostRatesAdmin(log, cfg.Performance))
	adminRouter.Get("/machines", getadmin.GetMachinesAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Static frontend, when it was built next to the binary
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); err == nil {
		fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

		router.Handle("/assets/*", fileServer)
		router.Handle("/js/*", fileServer)
		router.Handle("/css/*", fileServer)
		router.Handle("/img/*", fileServer)

		// SPA fallback: any other path serves index.html
		router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
			path := filepath.Join(frontendDir, r.URL.Path)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
			http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
		})
	}

	return router
}
