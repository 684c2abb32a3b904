package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superplace/growth-report-api/internal/dto"
	"github.com/superplace/growth-report-api/internal/models"
	"github.com/superplace/growth-report-api/internal/service"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
	"github.com/superplace/growth-report-api/pkg/response"
)

type publicationService interface {
	Publish(ctx context.Context, req dto.PublishReportRequest, actor *models.JWTClaims) (*dto.PublishReportResponse, error)
	List(ctx context.Context) ([]models.PublishedReport, error)
	Unpublish(ctx context.Context, publicID string, actor *models.JWTClaims) error
	Assembled(ctx context.Context, publicID string) (*models.PublishedReport, *models.AssembledReport, error)
}

type reportExporter interface {
	Generate(report *models.PublishedReport, assembled *models.AssembledReport, format string) (*service.ExportResult, error)
}

// PublicationHandler exposes the admin publishing endpoints.
type PublicationHandler struct {
	service  publicationService
	exporter reportExporter
}

// NewPublicationHandler builds a new handler.
func NewPublicationHandler(service publicationService, exporter reportExporter) *PublicationHandler {
	return &PublicationHandler{service: service, exporter: exporter}
}

// Publish godoc
// @Summary Publish a report for a student
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.PublishReportRequest true "Publish payload"
// @Success 201 {object} response.Envelope
// @Router /reports [post]
func (h *PublicationHandler) Publish(c *gin.Context) {
	var req dto.PublishReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid publish payload"))
		return
	}
	resp, err := h.service.Publish(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// List godoc
// @Summary List published reports
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *PublicationHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Unpublish godoc
// @Summary Unpublish a report
// @Tags Reports
// @Produce json
// @Param publicId path string true "Public report id"
// @Success 204
// @Router /reports/{publicId} [delete]
func (h *PublicationHandler) Unpublish(c *gin.Context) {
	if err := h.service.Unpublish(c.Request.Context(), c.Param("publicId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a published report as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Param publicId path string true "Public report id"
// @Param format query string false "Export format (csv or pdf)" default(pdf)
// @Success 200 {file} binary
// @Router /reports/{publicId}/export [get]
func (h *PublicationHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "pdf")
	report, assembled, err := h.service.Assembled(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.Generate(report, assembled, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.MIME, result.Content)
}
