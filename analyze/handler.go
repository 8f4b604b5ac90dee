// Package analyze exposes the upload → mapping → KPI detection pipeline
// over HTTP.
package analyze

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/database"
	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/parsers"
)

const maxUploadBytes = 64 << 20 // 64MB

// Session keeps the most recent dataset in memory for report generation
// and ad-hoc export. Uploads arrive on handler goroutines while the
// scheduler reads via Payload, so access goes through the mutex.
type Session struct {
	mu       sync.RWMutex
	filename string
	dataset  *parsers.Dataset
	result   model.KPIDetectionResult
}

// Store replaces the session dataset atomically.
func (s *Session) Store(filename string, dataset *parsers.Dataset, result model.KPIDetectionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
	s.dataset = dataset
	s.result = result
}

// UploadHandler はCSVアップロードを解析して検出結果を返します。
func UploadHandler(detector *kpi.Detector, store *database.AnalysisStore, session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		dataset, err := parsers.ParseCSV(file, r.FormValue("charset"))
		if err != nil {
			http.Error(w, "Failed to parse CSV: "+err.Error(), http.StatusBadRequest)
			return
		}

		result := Analyze(detector, dataset)
		session.Store(header.Filename, dataset, result)

		record := database.AnalysisRecord{
			ID:         fmt.Sprintf("an-%d", time.Now().UnixMilli()),
			Filename:   header.Filename,
			UploadedAt: time.Now(),
			TotalRows:  len(dataset.Rows),
			Result:     result,
		}
		if err := store.Insert(record); err != nil {
			log.Printf("WARN: failed to persist analysis: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Printf("Error encoding analysis response: %v", err)
		}
	}
}

// Analyze runs the column matcher and KPI detector over a parsed dataset.
func Analyze(detector *kpi.Detector, dataset *parsers.Dataset) model.KPIDetectionResult {
	sampleSize := len(dataset.Rows)
	if sampleSize > 100 {
		sampleSize = 100
	}
	mappings := mapping.DetectColumnMappings(dataset.Columns, dataset.Rows[:sampleSize])
	return detector.DetectAvailableKPIs(dataset.Rows, mappings)
}

// HistoryHandler は解析履歴を返します。
func HistoryHandler(store *database.AnalysisStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.List(20)
		if err != nil {
			http.Error(w, "Failed to load analysis history: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

// CatalogHandler はKPIカタログを返します。
func CatalogHandler(detector *kpi.Detector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detector.Registry().All())
	}
}

// Payload builds the exporter contract from the current session.
func (s *Session) Payload() (model.ExportPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dataset == nil {
		return model.ExportPayload{}, fmt.Errorf("no dataset uploaded yet")
	}
	meta := model.ExportMetadata{
		GeneratedAt: time.Now(),
		DataSource:  s.filename,
		TotalRows:   len(s.dataset.Rows),
	}
	return model.ExportPayload{
		KPIs:     s.result.AvailableKPIs,
		RawData:  s.dataset.Rows,
		Metadata: meta,
	}, nil
}
