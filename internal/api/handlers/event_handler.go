package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/pkg/response"
)

type EventHandler struct {
	svc  *application.EventService
	auth *application.AuthService
}

func NewEventHandler(svc *application.EventService, auth *application.AuthService) *EventHandler {
	return &EventHandler{svc: svc, auth: auth}
}

// requireSession resolves the stored backend session or answers 401.
func requireSession(c *gin.Context, auth *application.AuthService) (application.SessionContext, bool) {
	sess, ok := auth.Session()
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Not logged in to a backend site"})
		return application.SessionContext{}, false
	}
	return sess, true
}

// eventIDParam parses the :eid path parameter.
func eventIDParam(c *gin.Context) (int, bool) {
	eid, err := strconv.Atoi(c.Param("eid"))
	if err != nil || eid <= 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid event id"})
		return 0, false
	}
	return eid, true
}

// writeGatewayError maps backend failures onto HTTP statuses: a domain
// rejection is the client's problem, everything else is the upstream's.
func writeGatewayError(c *gin.Context, err error) {
	var domainErr *gateway.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: domainErr.Error()})
		return
	}
	if errors.Is(err, gateway.ErrHTMLResponse) {
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "Backend returned a web page, check the site status"})
		return
	}
	c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
}

// List godoc
// @Summary Events the account may scan
// @Tags events
// @Produce json
// @Success 200 {array} gateway.EventInfo
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	sess, ok := requireSession(c, h.auth)
	if !ok {
		return
	}
	events, err := h.svc.List(c.Request.Context(), sess)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Summary godoc
// @Summary Headline counts and dates for one event
// @Tags events
// @Produce json
// @Success 200 {object} ticket.EventAggregate
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /events/{eid}/summary [get]
func (h *EventHandler) Summary(c *gin.Context) {
	sess, ok := requireSession(c, h.auth)
	if !ok {
		return
	}
	eid, ok := eventIDParam(c)
	if !ok {
		return
	}
	agg, err := h.svc.Summary(c.Request.Context(), sess, eid)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// Select godoc
// @Summary Persist the working event selection
// @Tags events
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /events/{eid}/select [post]
func (h *EventHandler) Select(c *gin.Context) {
	if _, ok := requireSession(c, h.auth); !ok {
		return
	}
	eid, ok := eventIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Select(eid); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Event selected"})
}
