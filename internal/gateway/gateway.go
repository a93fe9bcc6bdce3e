package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketwave/checkin-go/internal/domain/ticket"
)

// ErrHTMLResponse is returned when the backend answers with a web page
// instead of JSON. For login this means the account exists but the site is
// forcing a manual password reset; it is not a credentials failure.
var ErrHTMLResponse = errors.New("backend returned an HTML page instead of JSON")

// TransportError covers network failures and non-2xx HTTP responses.
// It is never retried automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DomainError means the backend responded but flagged the request as failed
// (body status other than SUCCESS). Message carries the backend's own text
// when it supplied one; it is shown to the user verbatim.
type DomainError struct {
	Op      string
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: backend reported failure", e.Op)
}

// EventInfo is one entry of the staff account's scannable event list.
type EventInfo struct {
	EventID  int    `json:"eid"`
	Title    string `json:"event_title"`
	Calendar string `json:"event_calendar"`
}

// ValidationResult is the outcome of a live barcode validation. Status is the
// backend's raw verdict; anything other than SUCCESS is a rejection whose
// Message is displayed as-is.
type ValidationResult struct {
	Status       string `json:"status"`
	CustomerName string `json:"name_customer"`
	TicketType   string `json:"ticket_type"`
	Seat         string `json:"seat"`
	CheckinTime  string `json:"checkin_time"`
	Calendar     string `json:"e_cal"`
	Message      string `json:"msg"`
}

// Valid reports whether the scan was accepted.
func (r ValidationResult) Valid() bool { return r.Status == statusSuccess }

// Gateway is the typed client surface of the remote ticket backend
// (<baseURL>wp-json/meup/v1/...). Implementations return a *TransportError,
// *DomainError, or ErrHTMLResponse; they never panic across this boundary.
type Gateway interface {
	// Login exchanges credentials for an opaque bearer token.
	Login(ctx context.Context, baseURL, user, pass string) (string, error)

	// ListEvents returns the events the token's account may scan.
	ListEvents(ctx context.Context, baseURL, token string) ([]EventInfo, error)

	// FetchEventTickets returns the bulk aggregate for one event. The
	// aggregate's Dates field is left empty; see FetchEventDetail.
	FetchEventTickets(ctx context.Context, baseURL, token string, eventID int) (ticket.EventAggregate, error)

	// FetchEventDetail returns the event's date range, parsed out of the
	// backend's single calendar string.
	FetchEventDetail(ctx context.Context, baseURL string, eventID int) (ticket.DateRange, error)

	// FetchTicketDetail returns the authoritative record for one ticket,
	// looked up by QR code.
	FetchTicketDetail(ctx context.Context, baseURL, qrCode string) (ticket.Detail, error)

	// ValidateTicket performs a live check-in. A rejected scan is a normal
	// result, not an error; errors are transport or HTML conditions only.
	ValidateTicket(ctx context.Context, baseURL, token string, eventID int, qrCode string) (ValidationResult, error)
}
