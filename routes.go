package main

import (
	"net/http"

	"github.com/ozcanhakn/retailmindai-sub000/analyze"
	"github.com/ozcanhakn/retailmindai-sub000/database"
	"github.com/ozcanhakn/retailmindai-sub000/export"
	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

type appDeps struct {
	detector  *kpi.Detector
	formatter *kpi.Formatter
	service   *report.Service
	generator *report.Generator
	analyses  *database.AnalysisStore
	session   *analyze.Session
	renderers map[string]report.Renderer
}

func SetupRoutes(mux *http.ServeMux, deps *appDeps) {
	mux.HandleFunc("/api/datasets/upload", analyze.UploadHandler(deps.detector, deps.analyses, deps.session))
	mux.HandleFunc("/api/datasets/history", analyze.HistoryHandler(deps.analyses))
	mux.HandleFunc("/api/kpis", analyze.CatalogHandler(deps.detector))

	mux.HandleFunc("/api/reports/templates", report.TemplatesHandler(deps.service))
	mux.HandleFunc("/api/reports/templates/", report.TemplateHandler(deps.service))
	mux.HandleFunc("/api/reports/schedules", report.SchedulesHandler(deps.service))
	mux.HandleFunc("/api/reports/schedules/", report.ScheduleHandler(deps.service))
	mux.HandleFunc("/api/reports/generate", report.GenerateHandler(deps.generator, deps.session))
	mux.HandleFunc("/api/reports/generated", report.HistoryHandler(deps.generator))

	mux.HandleFunc("/api/export", export.AdHocHandler(deps.session, deps.formatter, deps.renderers))
}
