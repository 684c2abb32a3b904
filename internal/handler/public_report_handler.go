package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superplace/growth-report-api/internal/dto"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
	"github.com/superplace/growth-report-api/pkg/response"
)

type publicReportFetcher interface {
	Fetch(ctx context.Context, publicID string) (*dto.PublicReportResponse, error)
}

// PublicReportHandler serves the unauthenticated share link. It is the
// only surface reachable without a bearer token.
type PublicReportHandler struct {
	service publicReportFetcher
}

// NewPublicReportHandler builds a new handler.
func NewPublicReportHandler(service publicReportFetcher) *PublicReportHandler {
	return &PublicReportHandler{service: service}
}

// Get godoc
// @Summary Fetch a shared report by its public id
// @Tags Public
// @Produce json
// @Param publicId path string true "Public report id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /r/{publicId} [get]
func (h *PublicReportHandler) Get(c *gin.Context) {
	report, err := h.service.Fetch(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		// Anything other than a render failure collapses to a plain
		// not-found: unauthenticated readers learn nothing about
		// what exists behind an id they do not hold.
		appErr := appErrors.FromError(err)
		if appErr.Code != appErrors.ErrRender.Code {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}
