package application

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/ticketwave/checkin-go/internal/domain/ticket"
	"github.com/ticketwave/checkin-go/internal/gateway"
)

// ObjectStore persists a rendered report and returns a retrievable location.
type ObjectStore interface {
	PutReport(ctx context.Context, objectName string, body []byte) (string, error)
}

// Report is the fully enriched attendance summary for one event.
type Report struct {
	EventID     int              `json:"event_id"`
	EventTitle  string           `json:"event_title"`
	Dates       ticket.DateRange `json:"dates"`
	Total       int              `json:"total_tickets"`
	Sold        int              `json:"sold_tickets"`
	Used        int              `json:"used_tickets"`
	Remaining   int              `json:"remaining_tickets"`
	Scanned     int              `json:"scanned_tickets"`
	Tickets     []ticket.Ticket  `json:"tickets"`
	GeneratedAt time.Time        `json:"generated_at"`
	Location    string           `json:"location,omitempty"`
}

// ReportService builds the end-of-event report: every scanned ticket fully
// enriched, rendered as an HTML document and optionally uploaded. Never
// scanned tickets appear in the counts but not in the list.
type ReportService struct {
	gw    gateway.Gateway
	store ObjectStore
}

// NewReportService wires the report builder. store may be nil; reports are
// then returned inline only.
func NewReportService(gw gateway.Gateway, store ObjectStore) *ReportService {
	return &ReportService{gw: gw, store: store}
}

// Generate fetches the event, drives enrichment to completion, and renders
// the report. Unlike the incremental history view this blocks until every
// scanned ticket has been through its detail fetch.
func (s *ReportService) Generate(ctx context.Context, sess SessionContext, eventID int) (Report, error) {
	type detailResult struct {
		dates ticket.DateRange
		err   error
	}
	detailCh := make(chan detailResult, 1)
	go func() {
		dates, err := s.gw.FetchEventDetail(ctx, sess.BaseURL, eventID)
		detailCh <- detailResult{dates: dates, err: err}
	}()

	agg, err := s.gw.FetchEventTickets(ctx, sess.BaseURL, sess.Token, eventID)
	detail := <-detailCh
	if err != nil {
		return Report{}, err
	}
	if detail.err == nil {
		agg.Dates = detail.dates
	}

	view := NewCheckinView(s.gw, sess, eventID)
	view.InitializeWith(agg)
	state := view.State()
	for !state.FullyEnriched {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		before := enrichedCount(state.Tickets)
		state = view.EnrichNextBatch(ctx, DefaultBatchSize)
		// The cursor only advances, so a detail-driven re-sort can leave
		// unenriched entries behind it. A pass that enriched nothing will
		// never enrich anything; render with what came back so far.
		if enrichedCount(state.Tickets) == before {
			break
		}
	}

	report := Report{
		EventID:     eventID,
		EventTitle:  agg.EventTitle,
		Dates:       agg.Dates,
		Total:       agg.TotalTickets,
		Sold:        agg.SoldTickets,
		Used:        agg.UsedTickets,
		Remaining:   agg.RemainingTickets,
		Scanned:     len(state.Tickets),
		Tickets:     state.Tickets,
		GeneratedAt: time.Now(),
	}

	if s.store != nil {
		body, err := report.Render()
		if err != nil {
			return Report{}, err
		}
		objectName := fmt.Sprintf("reports/event-%d-%s.html", eventID, uuid.NewString())
		location, err := s.store.PutReport(ctx, objectName, body)
		if err != nil {
			return Report{}, fmt.Errorf("upload report: %w", err)
		}
		report.Location = location
	}
	return report, nil
}

func enrichedCount(tickets []ticket.Ticket) int {
	n := 0
	for _, t := range tickets {
		if t.Enriched {
			n++
		}
	}
	return n
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.EventTitle}} - Check-in Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #f0f0f0; }
.invalid { color: #b00; }
</style>
</head>
<body>
<h1>{{.EventTitle}}</h1>
{{if .Dates.From}}<p>{{.Dates.From}} &ndash; {{.Dates.To}}</p>{{end}}
<p>
Total: {{.Total}} &middot;
Sold: {{.Sold}} &middot;
Checked in: {{.Used}} &middot;
Remaining: {{.Remaining}} &middot;
Scanned: {{.Scanned}}
</p>
<table>
<tr><th>#</th><th>Ticket</th><th>Customer</th><th>Type</th><th>Status</th><th>Check-in time</th></tr>
{{range $i, $t := .Tickets}}
<tr{{if eq $t.Status "invalid"}} class="invalid"{{end}}>
<td>{{add $i 1}}</td>
<td>{{$t.TicketID}}</td>
<td>{{$t.CustomerName}}</td>
<td>{{$t.TicketType}}</td>
<td>{{$t.Status}}</td>
<td>{{$t.CheckinTime}}</td>
</tr>
{{end}}
</table>
<p>Generated {{.GeneratedAt.Format "January 2, 2006 3:04 pm"}}</p>
</body>
</html>
`))

// Render produces the report as a standalone HTML document.
func (r Report) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
