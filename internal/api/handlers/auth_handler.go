package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/api/middleware"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/pkg/response"
)

const deviceTokenTTL = 12 * time.Hour

type AuthHandler struct {
	svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Operator login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.TokenResponse "Device token"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.LoginFailureResponse "Rejected credentials or forced password reset"
// @Failure 502 {object} response.ErrorResponse "Backend unreachable"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Site     string `json:"site" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "site, username and password are required"})
		return
	}

	_, err := h.svc.Login(c.Request.Context(), req.Site, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUnknownSite):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrPasswordReset):
			c.JSON(http.StatusUnauthorized, response.LoginFailureResponse{
				Error:         err.Error(),
				RequiresReset: true,
			})
		default:
			var domainErr *gateway.DomainError
			if errors.As(err, &domainErr) {
				c.JSON(http.StatusUnauthorized, response.LoginFailureResponse{Error: domainErr.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	deviceToken, err := middleware.GenerateToken(req.Username, req.Site, deviceTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:    deviceToken,
		Username: req.Username,
		Site:     req.Site,
	})
}

// Logout godoc
// @Summary Clear the device session
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logged out"})
}

// Status godoc
// @Summary Current session status
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	_, loggedIn := h.svc.Session()
	body := gin.H{
		"logged_in": loggedIn,
		"site":      h.svc.Site(),
	}
	if eid, ok := h.svc.SelectedEvent(); ok {
		body["selected_eid"] = eid
	}
	c.JSON(http.StatusOK, body)
}
