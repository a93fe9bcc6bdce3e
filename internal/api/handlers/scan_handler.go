package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/pkg/response"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ScanEvent is one entry of the live scan feed.
type ScanEvent struct {
	EventID      int    `json:"event_id"`
	Code         string `json:"code"`
	Accepted     bool   `json:"accepted"`
	CustomerName string `json:"customer_name,omitempty"`
	TicketType   string `json:"ticket_type,omitempty"`
	Seat         string `json:"seat,omitempty"`
	CheckinTime  string `json:"checkin_time,omitempty"`
	Message      string `json:"message,omitempty"`
	At           string `json:"at"`
}

// ScanFeed broadcasts scan outcomes to every connected display.
type ScanFeed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan ScanEvent
}

func NewScanFeed() *ScanFeed {
	return &ScanFeed{clients: map[*websocket.Conn]chan ScanEvent{}}
}

// Publish fans the event out. A client that cannot keep up loses events
// rather than blocking the scanner.
func (f *ScanFeed) Publish(ev ScanEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (f *ScanFeed) add(conn *websocket.Conn) chan ScanEvent {
	ch := make(chan ScanEvent, 32)
	f.mu.Lock()
	f.clients[conn] = ch
	f.mu.Unlock()
	return ch
}

func (f *ScanFeed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
}

type ScanHandler struct {
	svc  *application.ScanService
	auth *application.AuthService
	feed *ScanFeed
}

func NewScanHandler(svc *application.ScanService, auth *application.AuthService, feed *ScanFeed) *ScanHandler {
	return &ScanHandler{svc: svc, auth: auth, feed: feed}
}

// Scan godoc
// @Summary Validate one scanned code
// @Tags scan
// @Accept json
// @Produce json
// @Success 200 {object} gateway.ValidationResult
// @Failure 409 {object} response.ErrorResponse "Duplicate or in-flight scan"
// @Failure 502 {object} response.ErrorResponse
// @Router /scan [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	sess, ok := requireSession(c, h.auth)
	if !ok {
		return
	}

	var req struct {
		EventID int    `json:"event_id" binding:"required"`
		Code    string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "event_id and code are required"})
		return
	}

	res, err := h.svc.Validate(c.Request.Context(), sess, req.EventID, req.Code)
	if err != nil {
		if errors.Is(err, application.ErrScanInFlight) || errors.Is(err, application.ErrDuplicateScan) {
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
			return
		}
		writeGatewayError(c, err)
		return
	}

	h.feed.Publish(ScanEvent{
		EventID:      req.EventID,
		Code:         req.Code,
		Accepted:     res.Valid(),
		CustomerName: res.CustomerName,
		TicketType:   res.TicketType,
		Seat:         res.Seat,
		CheckinTime:  res.CheckinTime,
		Message:      res.Message,
		At:           time.Now().Format(time.RFC3339),
	})
	c.JSON(http.StatusOK, res)
}

// Reset godoc
// @Summary Rearm the scanner after a completed scan
// @Tags scan
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /scan/reset [post]
func (h *ScanHandler) Reset(c *gin.Context) {
	h.svc.Reset()
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Scanner reset"})
}

// Feed streams scan outcomes over a WebSocket.
func (h *ScanHandler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
		return
	}

	ch := h.feed.add(conn)
	defer func() {
		h.feed.remove(conn)
		_ = conn.Close()
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("Scan feed error: %v", err)
				}
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case ev := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
