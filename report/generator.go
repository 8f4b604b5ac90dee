package report

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// Content is the section-ordered tree handed to a renderer: header,
// sections sorted by order, footer.
type Content struct {
	Template    model.ReportTemplate
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Sections    []model.ReportSection
	Payload     model.ExportPayload
	Footer      string
}

// Renderer serializes content to a file. Concrete renderers live in the
// export package; the generator only needs this contract.
type Renderer interface {
	Render(content Content, opts model.ExportOptions) (path string, size int64, err error)
}

// RecordStore persists immutable generation records.
type RecordStore interface {
	Insert(record model.GeneratedReport) error
	List() ([]model.GeneratedReport, error)
}

// Generator turns a template plus dataset payload into a report file and
// a GeneratedReport record. GenerateReport is called from handler
// goroutines and the scheduler; the mutex covers the id sequence.
type Generator struct {
	service   *Service
	renderers map[string]Renderer
	records   RecordStore
	now       func() time.Time

	mu      sync.Mutex
	nextSeq int
}

func NewGenerator(service *Service, records RecordStore) *Generator {
	return &Generator{
		service:   service,
		renderers: make(map[string]Renderer),
		records:   records,
		now:       time.Now,
	}
}

// RegisterRenderer binds a format name (pdf, png, csv, parquet) to its
// renderer.
func (g *Generator) RegisterRenderer(format string, r Renderer) {
	g.renderers[format] = r
}

// WithClock はテスト用に時計を差し替えます。
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Options controls one generation run.
type Options struct {
	Format            string // empty: derived from the template
	Title             string
	Subtitle          string
	ScheduledReportID string
	IncludeRawData    bool
	// RunAt, when set, is used as the run's timestamp instead of the
	// generator clock. The scheduler passes its tick time here so the
	// schedule's next-run recompute starts from the actual run, keeping
	// it strictly in the future.
	RunAt time.Time
}

// formatFor maps the template's declared format onto a renderer key.
// "excel" is served by the BOM'd CSV renderer; "both" prefers pdf.
func formatFor(t model.ReportTemplate, requested string) string {
	if requested != "" {
		return requested
	}
	switch t.Format {
	case "excel":
		return "csv"
	case "both", "":
		return "pdf"
	default:
		return t.Format
	}
}

// GenerateReport builds the content tree, delegates rendering and records
// the result. Failures surface to the caller; nothing is retried here.
func (g *Generator) GenerateReport(templateID string, payload model.ExportPayload, opts Options) (model.GeneratedReport, error) {
	template, ok := g.service.GetTemplate(templateID)
	if !ok {
		return model.GeneratedReport{}, fmt.Errorf("template not found: %s", templateID)
	}

	format := formatFor(template, opts.Format)
	renderer, ok := g.renderers[format]
	if !ok {
		return model.GeneratedReport{}, fmt.Errorf("no renderer registered for format %q", format)
	}

	now := g.now()
	if !opts.RunAt.IsZero() {
		now = opts.RunAt
	}
	title := opts.Title
	if title == "" {
		title = template.Name
	}

	sections := make([]model.ReportSection, len(template.Sections))
	copy(sections, template.Sections)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })

	content := Content{
		Template:    template,
		Title:       title,
		Subtitle:    opts.Subtitle,
		GeneratedAt: now,
		Sections:    sections,
		Payload:     payload,
		Footer:      fmt.Sprintf("Generated %s · %s", now.Format("2006-01-02 15:04"), payload.Metadata.DataSource),
	}

	renderOpts := model.ExportOptions{
		Format:         format,
		Filename:       fmt.Sprintf("%s_%s", template.ID, now.Format("20060102_150405")),
		Title:          title,
		Subtitle:       opts.Subtitle,
		IncludeRawData: opts.IncludeRawData,
		Landscape:      template.Layout == "landscape",
	}

	path, size, err := renderer.Render(content, renderOpts)
	if err != nil {
		return model.GeneratedReport{}, fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	g.mu.Lock()
	g.nextSeq++
	seq := g.nextSeq
	g.mu.Unlock()
	record := model.GeneratedReport{
		ID:                fmt.Sprintf("gen-%d-%d", now.UnixMilli(), seq),
		TemplateID:        template.ID,
		ScheduledReportID: opts.ScheduledReportID,
		Name:              title,
		GeneratedAt:       now,
		Format:            format,
		FilePath:          path,
		FileSize:          size,
		DownloadURL:       "/api/reports/download/" + renderOpts.Filename,
	}
	if err := g.records.Insert(record); err != nil {
		return model.GeneratedReport{}, fmt.Errorf("failed to record generated report: %w", err)
	}

	if opts.ScheduledReportID != "" {
		if err := g.service.MarkGenerated(opts.ScheduledReportID, now); err != nil {
			return model.GeneratedReport{}, err
		}
	}

	return record, nil
}

// History returns past generation records.
func (g *Generator) History() ([]model.GeneratedReport, error) {
	return g.records.List()
}
