package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ozcanhakn/retailmindai-sub000/analyze"
	"github.com/ozcanhakn/retailmindai-sub000/config"
	"github.com/ozcanhakn/retailmindai-sub000/database"
	"github.com/ozcanhakn/retailmindai-sub000/export"
	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/loader"
	"github.com/ozcanhakn/retailmindai-sub000/report"
	"github.com/ozcanhakn/retailmindai-sub000/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	registry := kpi.NewRegistry()
	detector := kpi.NewDetector(registry)
	formatter := kpi.NewFormatter(cfg.Locale, cfg.Currency)

	service, err := report.NewService(
		database.NewTemplateStore(dbConn),
		database.NewScheduleStore(dbConn),
	)
	if err != nil {
		log.Fatalf("Report service initialization failed: %v", err)
	}
	log.Printf("Report templates loaded (%d).", len(service.ListTemplates()))

	generator := report.NewGenerator(service, database.NewReportRecordStore(dbConn))
	renderers := map[string]report.Renderer{
		"csv":     &export.CSVRenderer{Dir: cfg.ExportFolderPath, Formatter: formatter},
		"parquet": &export.ParquetRenderer{Dir: cfg.ExportFolderPath},
		"pdf":     &export.BrowserRenderer{Dir: cfg.ExportFolderPath, Format: "pdf", Formatter: formatter},
		"png":     &export.BrowserRenderer{Dir: cfg.ExportFolderPath, Format: "png", Formatter: formatter},
	}
	for format, renderer := range renderers {
		generator.RegisterRenderer(format, renderer)
	}

	session := &analyze.Session{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched := scheduler.New(service, generator, session.Payload,
		time.Duration(cfg.ScheduleCheckMinutes)*time.Minute)
	go sched.Run(ctx)

	mux := http.NewServeMux()
	SetupRoutes(mux, &appDeps{
		detector:  detector,
		formatter: formatter,
		service:   service,
		generator: generator,
		analyses:  database.NewAnalysisStore(dbConn),
		session:   session,
		renderers: renderers,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
