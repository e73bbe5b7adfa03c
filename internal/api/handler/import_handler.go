package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-system/internal/api/metrics"
	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// recentRunsLimit is how many audit entries GET /import/runs returns.
const recentRunsLimit = 20

// ImportHandler serves the spreadsheet import and the generated documents.
type ImportHandler struct {
	imports ports.ImportService
	reports ports.ReportService
	log     zerolog.Logger
}

func NewImportHandler(imports ports.ImportService, reports ports.ReportService, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{imports: imports, reports: reports, log: log}
}

// Import handles POST /v1/customers/import.
//
// @Summary      Import customers from an xlsx file
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        excel_file  formData  file  true  "Workbook laid out like the sample template"
// @Success      200         {object}  importResponse
// @Failure      400         {object}  map[string]string
// @Router       /v1/customers/import [post]
func (h *ImportHandler) Import(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("excel_file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "excel_file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer file.Close()

	result, err := h.imports.Import(c.Request().Context(), ports.ImportInput{
		File:     file,
		Filename: fh.Filename,
		Actor:    actor,
	})
	if err != nil {
		metrics.ImportRunsTotal.WithLabelValues("file_error").Inc()
		if errors.Is(err, domain.ErrInvalidSpreadsheet) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Error processing file: %v", err))
		}
		return err
	}

	metrics.ImportRunsTotal.WithLabelValues("ok").Inc()
	metrics.ImportRowsTotal.WithLabelValues(string(domain.RowSucceeded)).Add(float64(result.SuccessCount()))
	metrics.ImportRowsTotal.WithLabelValues(string(domain.RowSkipped)).Add(float64(result.SkippedCount()))
	metrics.ImportRowsTotal.WithLabelValues(string(domain.RowFailed)).Add(float64(result.ErrorCount()))
	metrics.CustomersCreatedTotal.WithLabelValues("import").Add(float64(result.SuccessCount()))

	return c.JSON(http.StatusOK, toImportResponse(result))
}

// Sample handles GET /v1/customers/import/sample.
//
// @Summary      Download the import template
// @Tags         import
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /v1/customers/import/sample [get]
func (h *ImportHandler) Sample(c echo.Context) error {
	start := time.Now()
	doc, err := h.imports.SampleTemplate(c.Request().Context())
	if err != nil {
		return err
	}
	observeDocument("xlsx", start)
	return attachment(c, doc)
}

// Runs handles GET /v1/customers/import/runs.
//
// @Summary      Recent import runs
// @Tags         import
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ImportRun
// @Router       /v1/customers/import/runs [get]
func (h *ImportHandler) Runs(c echo.Context) error {
	runs, err := h.imports.RecentRuns(c.Request().Context(), recentRunsLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runs)
}

// ExportPDF handles GET /v1/customers/export/pdf.
//
// @Summary      Download the customer report
// @Tags         import
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /v1/customers/export/pdf [get]
func (h *ImportHandler) ExportPDF(c echo.Context) error {
	start := time.Now()
	doc, err := h.reports.CustomersPDF(c.Request().Context())
	if err != nil {
		return err
	}
	observeDocument("pdf", start)
	h.log.Info().Str("filename", doc.Filename).Int("bytes", len(doc.Body)).Msg("customer report generated")
	return attachment(c, doc)
}

func observeDocument(format string, start time.Time) {
	metrics.ReportsGeneratedTotal.WithLabelValues(format).Inc()
	metrics.ReportGenerationDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

func attachment(c echo.Context, doc *ports.Document) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}
