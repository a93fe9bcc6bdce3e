package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/pkg/response"
)

type HistoryHandler struct {
	svc  *application.HistoryService
	auth *application.AuthService
}

func NewHistoryHandler(svc *application.HistoryService, auth *application.AuthService) *HistoryHandler {
	return &HistoryHandler{svc: svc, auth: auth}
}

// Open godoc
// @Summary Open a check-in view for an event
// @Tags views
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any "View id and initial state"
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /views [post]
func (h *HistoryHandler) Open(c *gin.Context) {
	sess, ok := requireSession(c, h.auth)
	if !ok {
		return
	}

	var req struct {
		EventID int `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.EventID <= 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "event_id is required"})
		return
	}

	id, state, err := h.svc.Open(c.Request.Context(), sess, req.EventID)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"view_id": id, "state": state})
}

// Enrich godoc
// @Summary Run one enrichment pass on a view
// @Tags views
// @Produce json
// @Param batch query int false "Batch size, default 10"
// @Success 200 {object} application.ViewState
// @Failure 404 {object} response.ErrorResponse
// @Router /views/{id}/enrich [post]
func (h *HistoryHandler) Enrich(c *gin.Context) {
	batch, _ := strconv.Atoi(c.DefaultQuery("batch", "0"))
	state, err := h.svc.Enrich(c.Request.Context(), c.Param("id"), batch)
	if err != nil {
		h.writeViewError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Get godoc
// @Summary Current state of a view
// @Tags views
// @Produce json
// @Success 200 {object} application.ViewState
// @Failure 404 {object} response.ErrorResponse
// @Router /views/{id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	state, err := h.svc.Get(c.Param("id"))
	if err != nil {
		h.writeViewError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Close godoc
// @Summary Close a view
// @Tags views
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /views/{id} [delete]
func (h *HistoryHandler) Close(c *gin.Context) {
	if err := h.svc.Close(c.Param("id")); err != nil {
		h.writeViewError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "View closed"})
}

func (h *HistoryHandler) writeViewError(c *gin.Context, err error) {
	if errors.Is(err, application.ErrViewNotFound) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
}
