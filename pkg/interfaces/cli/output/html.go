package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/planhorizon/invsim/pkg/application/dto"
	"github.com/planhorizon/invsim/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLReport generates a self-contained HTML report with two stacked
// charts: inventory against the safety-stock target, and demand against
// forecast. Projected periods are drawn dashed.
type HTMLReport struct {
	Width  int
	Height int
}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	Run         dto.RunResponse
	DataJSON    template.JS
	GeneratedAt string
}

// NewHTMLReport creates a new HTML report generator
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{
		Width:  1100,
		Height: 700,
	}
}

// GenerateHTML renders the report for one run
func (hr *HTMLReport) GenerateHTML(run *entities.SimulationRun) (string, error) {
	response := dto.NewRunResponse(run)

	jsonData, err := json.Marshal(response)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report data: %w", err)
	}

	templateData := &TemplateData{
		Run:         response,
		DataJSON:    template.JS(jsonData),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	}

	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// generateHTMLOutput creates the HTML report file
func generateHTMLOutput(run *entities.SimulationRun, config Config) error {
	report := NewHTMLReport()
	html, err := report.GenerateHTML(run)
	if err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	filename := config.ReportPath
	if filename == "" {
		filename = "simulation_report.html"
	}
	if !strings.HasSuffix(filename, ".html") {
		filename += ".html"
	}

	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("HTML report saved to: %s\n", filename)
	}

	return nil
}
