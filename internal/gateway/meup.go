package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ticketwave/checkin-go/internal/domain/ticket"
)

const (
	apiPrefix     = "wp-json/meup/v1/"
	statusSuccess = "SUCCESS"
)

// MeupGateway talks to the WordPress meup plugin endpoints. Every call is a
// POST with a JSON body; success is signaled in-band by body.status.
type MeupGateway struct {
	client *http.Client
}

// NewMeupGateway builds a gateway with a bounded overall request timeout.
func NewMeupGateway(timeout time.Duration) *MeupGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MeupGateway{client: &http.Client{Timeout: timeout}}
}

// post sends one endpoint call and decodes the JSON envelope into out.
// HTML bodies (WordPress login/reset pages) surface as ErrHTMLResponse so
// callers can tell a site problem apart from a parse crash.
func (g *MeupGateway) post(ctx context.Context, baseURL, name string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{Op: name, Err: err}
	}

	url := strings.TrimSuffix(baseURL, "/") + "/" + apiPrefix + name + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: name, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return &TransportError{Op: name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: name, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: name, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || strings.HasPrefix(strings.TrimSpace(string(raw)), "<") {
		return fmt.Errorf("%s: %w", name, ErrHTMLResponse)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: name, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

type loginEnvelope struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Msg    string `json:"msg"`
}

func (g *MeupGateway) Login(ctx context.Context, baseURL, user, pass string) (string, error) {
	var env loginEnvelope
	err := g.post(ctx, baseURL, "login", map[string]string{"user": user, "pass": pass}, &env)
	if err != nil {
		return "", err
	}
	if env.Status != statusSuccess || env.Token == "" {
		return "", &DomainError{Op: "login", Message: env.Msg}
	}
	return env.Token, nil
}

type listEventsEnvelope struct {
	Status string      `json:"status"`
	Events []EventInfo `json:"events"`
	Msg    string      `json:"msg"`
}

func (g *MeupGateway) ListEvents(ctx context.Context, baseURL, token string) ([]EventInfo, error) {
	var env listEventsEnvelope
	err := g.post(ctx, baseURL, "list_events", map[string]string{"token": token}, &env)
	if err != nil {
		return nil, err
	}
	if env.Status != statusSuccess {
		return nil, &DomainError{Op: "list_events", Message: env.Msg}
	}
	return env.Events, nil
}

// wireTicket mirrors one entry of the bulk ticket list.
type wireTicket struct {
	TicketID     int    `json:"ticket_id"`
	QRCode       string `json:"qr_code"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	TicketStatus string `json:"ticket_status"`
}

type wireEvent struct {
	TotalTickets     int          `json:"total_tickets"`
	TicketsChecked   int          `json:"tickets_checked"`
	TicketsAvailable int          `json:"tickets_available"`
	EventTitle       string       `json:"event_title"`
	EventCalendar    string       `json:"event_calendar"`
	Tickets          []wireTicket `json:"tickets"`
}

type eventTicketsEnvelope struct {
	Status string      `json:"status"`
	Events []wireEvent `json:"events"`
	Msg    string      `json:"msg"`
}

func (g *MeupGateway) FetchEventTickets(ctx context.Context, baseURL, token string, eventID int) (ticket.EventAggregate, error) {
	payload := map[string]any{"eid": eventID, "token": token}

	var env eventTicketsEnvelope
	if err := g.post(ctx, baseURL, "tickets_by_events", payload, &env); err != nil {
		return ticket.EventAggregate{}, err
	}
	if env.Status != statusSuccess || len(env.Events) == 0 {
		return ticket.EventAggregate{}, &DomainError{Op: "tickets_by_events", Message: env.Msg}
	}

	ev := env.Events[0]
	agg := ticket.EventAggregate{
		EventID:          eventID,
		EventTitle:       ticket.DecodeTitle(ev.EventTitle),
		TotalTickets:     ev.TotalTickets,
		SoldTickets:      ev.TicketsChecked + ev.TicketsAvailable,
		UsedTickets:      ev.TicketsChecked,
		RemainingTickets: ev.TicketsAvailable,
		Tickets:          make([]ticket.Ticket, 0, len(ev.Tickets)),
	}
	for _, wt := range ev.Tickets {
		agg.Tickets = append(agg.Tickets, ticket.Ticket{
			TicketID:     wt.TicketID,
			QRCode:       wt.QRCode,
			CustomerName: wt.CustomerName,
			Email:        wt.Email,
			Status:       ticket.ParseStatus(wt.TicketStatus),
		})
	}
	return agg, nil
}

type eventDetailEnvelope struct {
	Status string `json:"status"`
	Event  struct {
		EventCalendar string `json:"event_calendar"`
	} `json:"event"`
	Msg string `json:"msg"`
}

func (g *MeupGateway) FetchEventDetail(ctx context.Context, baseURL string, eventID int) (ticket.DateRange, error) {
	// The backend expects event_id as a string here.
	payload := map[string]string{"event_id": strconv.Itoa(eventID)}

	var env eventDetailEnvelope
	if err := g.post(ctx, baseURL, "event_detail", payload, &env); err != nil {
		return ticket.DateRange{}, err
	}
	if env.Status != statusSuccess {
		return ticket.DateRange{}, &DomainError{Op: "event_detail", Message: env.Msg}
	}
	return splitCalendar(env.Event.EventCalendar), nil
}

// splitCalendar parses "July 10, 2025 - July 12, 2025" into a DateRange.
// A string without the separator yields an empty range rather than an error.
func splitCalendar(calendar string) ticket.DateRange {
	from, to, found := strings.Cut(calendar, " - ")
	if !found {
		return ticket.DateRange{}
	}
	return ticket.DateRange{From: strings.TrimSpace(from), To: strings.TrimSpace(to)}
}

type wireTicketDetail struct {
	TicketID     int    `json:"ticket_id"`
	QRCode       string `json:"qr_code"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	TicketStatus string `json:"ticket_status"`
	TicketType   string `json:"ticket_type"`
	CheckinTime  string `json:"checkin_time"`
	EventTitle   string `json:"event_title"`
}

type ticketDetailEnvelope struct {
	Status string            `json:"status"`
	Ticket *wireTicketDetail `json:"ticket"`
	Msg    string            `json:"msg"`
}

func (g *MeupGateway) FetchTicketDetail(ctx context.Context, baseURL, qrCode string) (ticket.Detail, error) {
	var env ticketDetailEnvelope
	if err := g.post(ctx, baseURL, "ticket_detail", map[string]string{"qrcode": qrCode}, &env); err != nil {
		return ticket.Detail{}, err
	}
	if env.Status != statusSuccess || env.Ticket == nil {
		return ticket.Detail{}, &DomainError{Op: "ticket_detail", Message: env.Msg}
	}
	d := env.Ticket
	return ticket.Detail{
		TicketID:     d.TicketID,
		QRCode:       d.QRCode,
		CustomerName: d.CustomerName,
		Email:        d.Email,
		RawStatus:    d.TicketStatus,
		TicketType:   d.TicketType,
		CheckinTime:  d.CheckinTime,
		EventTitle:   d.EventTitle,
	}, nil
}

func (g *MeupGateway) ValidateTicket(ctx context.Context, baseURL, token string, eventID int, qrCode string) (ValidationResult, error) {
	payload := map[string]any{
		"token":  token,
		"qrcode": qrCode,
		"eid":    eventID,
	}

	var res ValidationResult
	if err := g.post(ctx, baseURL, "validate_ticket", payload, &res); err != nil {
		return ValidationResult{}, err
	}
	// A rejection (status != SUCCESS) is a normal outcome: the caller shows
	// res.Message verbatim.
	return res, nil
}
