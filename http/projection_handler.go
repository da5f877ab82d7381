package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"hei-calculator/domain"
	"hei-calculator/input"
	"hei-calculator/report"
	"hei-calculator/service"
)

type ProjectionHandler struct {
	service        *service.ProjectionService
	narrative      *service.NarrativeService
	defaultHorizon int
	log            *logrus.Logger
}

func NewProjectionHandler(
	service *service.ProjectionService,
	narrative *service.NarrativeService,
	defaultHorizon int,
	log *logrus.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{
		service:        service,
		narrative:      narrative,
		defaultHorizon: defaultHorizon,
		log:            log,
	}
}

// ProjectionRequest is the POST body: the contract terms inline plus an
// optional horizon.
type ProjectionRequest struct {
	domain.ContractTerms
	HorizonYears *int `json:"horizon_years,omitempty"`
	Explain      bool `json:"explain,omitempty"`
}

type ProjectionResponse struct {
	domain.Projection
	CrossoverYear int    `json:"crossover_year"`
	Narrative     string `json:"narrative,omitempty"`
}

// CreateProjection handles POST /hei/projection.
func (h *ProjectionHandler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.log)

	var req ProjectionRequest
	if err := decodeJSON(r, &req); err != nil {
		log.WithError(err).Debug("error decoding request body")
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	horizon := h.defaultHorizon
	if req.HorizonYears != nil {
		horizon = *req.HorizonYears
	}
	h.project(w, r, log, req.ContractTerms, horizon, req.Explain)
}

// GetProjection handles GET /hei/projection. Terms arrive as display strings
// ("$1,000,000", "2%", "2.0x"); omitted fields take the default contract.
func (h *ProjectionHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.log)
	q := r.URL.Query()

	raw := input.DefaultRawTerms()
	overrides := map[string]*string{
		"home_value":         &raw.HomeValue,
		"appreciation_rate":  &raw.AppreciationRate,
		"premium_percentage": &raw.PremiumPercentage,
		"hei_multiplier":     &raw.HEIMultiplier,
		"investor_cap_rate":  &raw.InvestorCapRate,
		"horizon_years":      &raw.HorizonYears,
	}
	for name, dst := range overrides {
		if q.Has(name) {
			*dst = q.Get(name)
		}
	}

	terms, err := raw.Parse()
	if err != nil {
		writeError(w, log, err)
		return
	}
	horizon, err := raw.Horizon(h.defaultHorizon)
	if err != nil {
		writeError(w, log, err)
		return
	}
	h.project(w, r, log, terms, horizon, q.Get("explain") == "true")
}

func (h *ProjectionHandler) project(
	w http.ResponseWriter,
	r *http.Request,
	log logrus.FieldLogger,
	terms domain.ContractTerms,
	horizon int,
	explain bool,
) {
	projection, err := h.service.Project(r.Context(), terms, horizon)
	if err != nil {
		writeError(w, log, err)
		return
	}

	var narrative string
	if explain && h.narrative != nil {
		narrative = h.narrative.ExplainProjection(r.Context(), projection)
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" || format == "json" {
		writeJSON(w, log, http.StatusOK, ProjectionResponse{
			Projection:    projection,
			CrossoverYear: projection.CrossoverYear(),
			Narrative:     narrative,
		})
		return
	}

	var buf bytes.Buffer
	contentType, err := renderProjection(&buf, format, projection, narrative)
	if err != nil {
		writeError(w, log, err)
		return
	}
	if contentType == "" {
		writeJSON(w, log, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("unsupported format %q", format),
			Field: "format",
		})
		return
	}

	w.Header().Set("Content-Type", contentType)
	if format == "pdf" {
		w.Header().Set("Content-Disposition", `attachment; filename="hei-projection.pdf"`)
	}
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("error writing response")
	}
}

// renderProjection returns an empty content type for unknown formats.
func renderProjection(buf *bytes.Buffer, format string, p domain.Projection, narrative string) (string, error) {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8", report.WriteCSV(buf, p)
	case "xml":
		return "application/xml; charset=utf-8", report.WriteXML(buf, p)
	case "text":
		return "text/plain; charset=utf-8", report.WriteTable(buf, p)
	case "pdf":
		data, err := report.RenderPDF(p, report.PDFOptions{Narrative: narrative})
		if err != nil {
			return "", err
		}
		buf.Write(data)
		return "application/pdf", nil
	default:
		return "", nil
	}
}
