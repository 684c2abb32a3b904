package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superplace/growth-report-api/internal/dto"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
	"github.com/superplace/growth-report-api/pkg/response"
)

type templateService interface {
	List(ctx context.Context) ([]models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	Create(ctx context.Context, req dto.CreateTemplateRequest, actor *models.JWTClaims) (*models.Template, error)
	Update(ctx context.Context, id string, req dto.UpdateTemplateRequest, actor *models.JWTClaims) (*models.Template, error)
	Duplicate(ctx context.Context, id string, actor *models.JWTClaims) (*models.Template, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
	SeedDefaults(ctx context.Context) (*dto.SeedResult, error)
}

type templatePreviewer interface {
	Preview(body string) string
	ScanVariables(body string) []string
}

// TemplateHandler exposes the template store endpoints.
type TemplateHandler struct {
	service   templateService
	previewer templatePreviewer
}

// NewTemplateHandler builds a new handler.
func NewTemplateHandler(service templateService, previewer templatePreviewer) *TemplateHandler {
	return &TemplateHandler{service: service, previewer: previewer}
}

// List godoc
// @Summary List report templates
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates, nil)
}

// Get godoc
// @Summary Get a template by id
// @Tags Templates
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} response.Envelope
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl, nil)
}

// Create godoc
// @Summary Create a template
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.CreateTemplateRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}
	tpl, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tpl)
}

// Update godoc
// @Summary Update a template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param payload body dto.UpdateTemplateRequest true "Template payload"
// @Success 200 {object} response.Envelope
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}
	tpl, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl, nil)
}

// Duplicate godoc
// @Summary Duplicate a template
// @Tags Templates
// @Produce json
// @Param id path string true "Template id"
// @Success 201 {object} response.Envelope
// @Router /templates/{id}/duplicate [post]
func (h *TemplateHandler) Duplicate(c *gin.Context) {
	tpl, err := h.service.Duplicate(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tpl)
}

// Delete godoc
// @Summary Delete an unused template
// @Tags Templates
// @Produce json
// @Param id path string true "Template id"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Seed godoc
// @Summary Install the starter template catalog
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates/seed [post]
func (h *TemplateHandler) Seed(c *gin.Context) {
	result, err := h.service.SeedDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Preview godoc
// @Summary Preview a template body against sample data
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.PreviewTemplateRequest true "Preview payload"
// @Success 200 {object} response.Envelope
// @Router /templates/preview [post]
func (h *TemplateHandler) Preview(c *gin.Context) {
	var req dto.PreviewTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preview payload"))
		return
	}
	resp := dto.PreviewTemplateResponse{
		HTML:      h.previewer.Preview(req.Body),
		Variables: h.previewer.ScanVariables(req.Body),
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
