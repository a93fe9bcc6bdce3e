package ticket

import (
	"html"
	"strings"
	"time"
)

// Status is the normalized scan state of a ticket. The backend stores it as
// free text; it is parsed into this enum once, at the gateway boundary.
type Status string

const (
	StatusUnchecked Status = "unchecked"
	StatusChecked   Status = "checked"
	StatusInvalid   Status = "invalid"
)

// ParseStatus normalizes the backend's free-text status field.
// Anything that is not recognizably checked or invalid counts as unchecked.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "checked":
		return StatusChecked
	case "invalid":
		return StatusInvalid
	default:
		return StatusUnchecked
	}
}

// Ticket is one entry of an event's ticket list. A ticket created from the
// bulk fetch carries only summary fields; Enriched flips to true once the
// per-ticket detail fetch has run (or permanently failed) for it.
type Ticket struct {
	TicketID     int    `json:"ticket_id"`
	QRCode       string `json:"qr_code"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Status       Status `json:"status"`

	TicketType  string `json:"ticket_type"`
	CheckinTime string `json:"checkin_time"`
	EventTitle  string `json:"event_title"`

	Enriched bool `json:"enriched"`
}

// Scanned reports whether the ticket has ever been through a scanner.
func (t Ticket) Scanned() bool {
	return t.Status == StatusChecked || t.Status == StatusInvalid
}

// Detail is the authoritative per-ticket record returned by the detail
// endpoint. RawStatus keeps the backend's untouched status string so a merge
// can tell "absent" apart from "present but unchecked".
type Detail struct {
	TicketID     int
	QRCode       string
	CustomerName string
	Email        string
	RawStatus    string
	TicketType   string
	CheckinTime  string
	EventTitle   string
}

// ApplyDetail merges an authoritative detail record into the ticket.
// Detail values win, with one rule: a non-empty existing value is never
// replaced by an empty one. The detail ticket id always wins when set.
func (t *Ticket) ApplyDetail(d Detail) {
	if d.TicketID != 0 {
		t.TicketID = d.TicketID
	}
	if d.QRCode != "" {
		t.QRCode = d.QRCode
	}
	if d.CustomerName != "" {
		t.CustomerName = d.CustomerName
	}
	if d.Email != "" {
		t.Email = d.Email
	}
	if d.RawStatus != "" {
		t.Status = ParseStatus(d.RawStatus)
	}
	if d.TicketType != "" {
		t.TicketType = d.TicketType
	}
	if d.CheckinTime != "" {
		t.CheckinTime = d.CheckinTime
	}
	if title := DecodeTitle(d.EventTitle); title != "" {
		t.EventTitle = title
	}
}

// DateRange is an event's human-readable start/end pair, split out of the
// backend's single "from - to" calendar string.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EventAggregate is the combined result of the bulk ticket fetch for one
// event. Sold is derived: checked plus still-available.
type EventAggregate struct {
	EventID          int       `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	TotalTickets     int       `json:"total_tickets"`
	SoldTickets      int       `json:"sold_tickets"`
	UsedTickets      int       `json:"used_tickets"`
	RemainingTickets int       `json:"remaining_tickets"`
	Tickets          []Ticket  `json:"tickets"`
	Dates            DateRange `json:"dates"`
}

// checkinLayouts are the formats the backend has been seen emitting for
// checkin_time, most common first ("July 10, 2025 2:34 pm").
var checkinLayouts = []string{
	"January 2, 2006 3:04 pm",
	"January 2, 2006 3:04 PM",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CheckinUnix parses a checkin_time string into unix milliseconds for
// ordering. Absent or unparseable values return -1 so they sort as the
// minimum, matching the display rule "unknown time goes last".
func CheckinUnix(value string) int64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return -1
	}
	for _, layout := range checkinLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UnixMilli()
		}
	}
	return -1
}

// DecodeTitle unescapes HTML entities the backend embeds in event titles
// (&#038;, &amp;, &#8211;, &nbsp;, ...) and trims the result.
func DecodeTitle(s string) string {
	if s == "" {
		return ""
	}
	decoded := html.UnescapeString(s)
	decoded = strings.ReplaceAll(decoded, "\u00a0", " ")
	return strings.TrimSpace(decoded)
}
