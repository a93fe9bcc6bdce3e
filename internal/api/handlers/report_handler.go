package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/application"
)

type ReportHandler struct {
	svc  *application.ReportService
	auth *application.AuthService
}

func NewReportHandler(svc *application.ReportService, auth *application.AuthService) *ReportHandler {
	return &ReportHandler{svc: svc, auth: auth}
}

// Generate godoc
// @Summary Build the fully enriched attendance report for an event
// @Tags reports
// @Produce json
// @Param format query string false "json (default) or html"
// @Success 200 {object} application.Report
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /events/{eid}/report [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	sess, ok := requireSession(c, h.auth)
	if !ok {
		return
	}
	eid, ok := eventIDParam(c)
	if !ok {
		return
	}

	report, err := h.svc.Generate(c.Request.Context(), sess, eid)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	if c.Query("format") == "html" {
		body, err := report.Render()
		if err != nil {
			writeGatewayError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
		return
	}
	c.JSON(http.StatusOK, report)
}
