package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/session"
	"github.com/ticketwave/checkin-go/pkg/response"
)

// SettingsHandler exposes the scanner feedback preferences. Both default to
// on; they persist across restarts in the session store.
type SettingsHandler struct {
	store *session.Store
}

func NewSettingsHandler(store *session.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

type settings struct {
	Vibrate bool `json:"vibrate"`
	Beep    bool `json:"beep"`
}

// Get godoc
// @Summary Current scanner preferences
// @Tags settings
// @Produce json
// @Success 200 {object} settings
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, settings{
		Vibrate: h.store.GetDefault(session.KeyVibrate, "true") == "true",
		Beep:    h.store.GetDefault(session.KeyBeep, "true") == "true",
	})
}

// Update godoc
// @Summary Update scanner preferences
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} settings
// @Failure 400 {object} response.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid settings payload"})
		return
	}

	err := h.store.SetAll(map[string]string{
		session.KeyVibrate: boolString(req.Vibrate),
		session.KeyBeep:    boolString(req.Beep),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
