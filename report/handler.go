package report

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// TemplatesHandler は一覧取得と作成を処理します。
func TemplatesHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, service.ListTemplates())
		case http.MethodPost:
			var t model.ReportTemplate
			if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
				http.Error(w, "invalid template payload: "+err.Error(), http.StatusBadRequest)
				return
			}
			created, err := service.CreateTemplate(t)
			if err != nil {
				http.Error(w, "Failed to create template: "+err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, created)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// TemplateHandler は /api/reports/templates/{id} を処理します。
func TemplateHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/reports/templates/")
		if id == "" {
			http.Error(w, "template id is required", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			t, ok := service.GetTemplate(id)
			if !ok {
				http.NotFound(w, r)
				return
			}
			writeJSON(w, t)
		case http.MethodPut:
			var t model.ReportTemplate
			if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
				http.Error(w, "invalid template payload: "+err.Error(), http.StatusBadRequest)
				return
			}
			t.ID = id
			updated, err := service.UpdateTemplate(t)
			if err != nil {
				http.Error(w, "Failed to update template: "+err.Error(), http.StatusNotFound)
				return
			}
			writeJSON(w, updated)
		case http.MethodDelete:
			if err := service.DeleteTemplate(id); err != nil {
				http.Error(w, "Failed to delete template: "+err.Error(), http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// SchedulesHandler は一覧取得と登録を処理します。
func SchedulesHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, service.ListSchedules())
		case http.MethodPost:
			var sched model.ScheduledReport
			if err := json.NewDecoder(r.Body).Decode(&sched); err != nil {
				http.Error(w, "invalid schedule payload: "+err.Error(), http.StatusBadRequest)
				return
			}
			created, err := service.ScheduleReport(sched)
			if err != nil {
				http.Error(w, "Failed to schedule report: "+err.Error(), http.StatusBadRequest)
				return
			}
			writeJSON(w, created)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// ScheduleHandler は /api/reports/schedules/{id} を処理します。
func ScheduleHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/reports/schedules/")
		if id == "" {
			http.Error(w, "schedule id is required", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var sched model.ScheduledReport
			if err := json.NewDecoder(r.Body).Decode(&sched); err != nil {
				http.Error(w, "invalid schedule payload: "+err.Error(), http.StatusBadRequest)
				return
			}
			sched.ID = id
			updated, err := service.UpdateSchedule(sched)
			if err != nil {
				http.Error(w, "Failed to update schedule: "+err.Error(), http.StatusBadRequest)
				return
			}
			writeJSON(w, updated)
		case http.MethodDelete:
			if err := service.DeleteSchedule(id); err != nil {
				http.Error(w, "Failed to delete schedule: "+err.Error(), http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// PayloadSource supplies the current dataset payload for generation.
type PayloadSource interface {
	Payload() (model.ExportPayload, error)
}

type generateRequest struct {
	TemplateID     string `json:"templateId"`
	Format         string `json:"format,omitempty"`
	Title          string `json:"title,omitempty"`
	Subtitle       string `json:"subtitle,omitempty"`
	IncludeRawData bool   `json:"includeRawData,omitempty"`
}

// GenerateHandler は即時レポート生成を処理します。
func GenerateHandler(generator *Generator, source PayloadSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid generate payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		payload, err := source.Payload()
		if err != nil {
			http.Error(w, "Failed to generate report: "+err.Error(), http.StatusBadRequest)
			return
		}
		record, err := generator.GenerateReport(req.TemplateID, payload, Options{
			Format:         req.Format,
			Title:          req.Title,
			Subtitle:       req.Subtitle,
			IncludeRawData: req.IncludeRawData,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if strings.Contains(err.Error(), "template not found") {
				status = http.StatusNotFound
			}
			http.Error(w, "Failed to generate report: "+err.Error(), status)
			return
		}
		writeJSON(w, record)
	}
}

// HistoryHandler は生成履歴を返します。
func HistoryHandler(generator *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := generator.History()
		if err != nil {
			http.Error(w, "Failed to load report history: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, records)
	}
}
