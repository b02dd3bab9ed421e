package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler serves report templates and letter generation.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	templates := rg.Group("/report-templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:id", h.getTemplate)
		templates.PUT("/:id", h.updateTemplate)
	}

	rg.POST("/reports/generate", h.generateReport)
	rg.GET("/transactions/:id/reports", h.listGeneratedReports)
}

// createTemplate godoc
// @Summary Create a report template
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   template body dto.CreateReportTemplateRequest true "Template details"
// @Success 201 {object} dto.ReportTemplateResponse
// @Failure 409 {object} map[string]string "Template name already in use"
// @Security BearerAuth
// @Router /report-templates [post]
func (h *reportHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReportTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	tmpl, err := h.reportService.CreateTemplate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create report template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReportTemplateResponse(tmpl))
}

// getTemplate godoc
// @Summary Get a report template
// @Tags reports
// @Produce  json
// @Param   id path string true "Template ID"
// @Success 200 {object} dto.ReportTemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /report-templates/{id} [get]
func (h *reportHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tmpl, err := h.reportService.GetTemplateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve report template")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportTemplateResponse(tmpl))
}

// listTemplates godoc
// @Summary List report templates
// @Tags reports
// @Produce  json
// @Success 200 {array} dto.ReportTemplateResponse
// @Security BearerAuth
// @Router /report-templates [get]
func (h *reportHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templates, err := h.reportService.ListTemplates(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list report templates")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportTemplateResponses(templates))
}

// updateTemplate godoc
// @Summary Update a report template
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   id path string true "Template ID"
// @Param   template body dto.UpdateReportTemplateRequest true "Fields to update"
// @Success 200 {object} dto.ReportTemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /report-templates/{id} [put]
func (h *reportHandler) updateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateReportTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	tmpl, err := h.reportService.UpdateTemplate(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update report template")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportTemplateResponse(tmpl))
}

// generateReport godoc
// @Summary Generate a letter for a transaction
// @Description Renders the template against the transaction's data and stores the result
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateReportRequest true "Transaction and template"
// @Success 201 {object} dto.GeneratedReportResponse
// @Failure 403 {object} map[string]string "Missing generate capability"
// @Failure 404 {object} map[string]string "Transaction or template not found"
// @Security BearerAuth
// @Router /reports/generate [post]
func (h *reportHandler) generateReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate report")
		return
	}

	logger.Info("Report generated",
		slog.String("transaction_id", req.TransactionID),
		slog.String("template_id", req.TemplateID))
	c.JSON(http.StatusCreated, dto.ToGeneratedReportResponse(report))
}

// listGeneratedReports godoc
// @Summary List reports generated for a transaction
// @Tags reports
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {array} dto.GeneratedReportResponse
// @Security BearerAuth
// @Router /transactions/{id}/reports [get]
func (h *reportHandler) listGeneratedReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reports, err := h.reportService.ListGeneratedReports(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list generated reports")
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneratedReportResponses(reports))
}
