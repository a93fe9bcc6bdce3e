package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ticketwave/checkin-go/internal/domain/ticket"
	"github.com/ticketwave/checkin-go/internal/gateway"
)

// DefaultBatchSize bounds how many detail fetches one enrichment pass puts
// on the backend at once.
const DefaultBatchSize = 10

// SessionContext carries the backend coordinates a view needs. It is passed
// in explicitly; the engine never reads ambient session state mid-pipeline.
type SessionContext struct {
	BaseURL string
	Token   string
}

// ViewState is a read-only snapshot of a check-in view, safe to hand to
// handlers while enrichment continues.
type ViewState struct {
	EventID         int             `json:"event_id"`
	Tickets         []ticket.Ticket `json:"tickets"`
	NextEnrichIndex int             `json:"next_enrich_index"`
	Enriching       bool            `json:"enriching"`
	FullyEnriched   bool            `json:"fully_enriched"`
}

// CheckinView owns the in-memory ticket collection for one opened event
// view: the batching state machine and the canonical display order.
//
// All list mutation happens under mu. A batch's detail fetches fan out
// concurrently, but the merge-and-resort step is serialized behind the
// enriching flag, so no two passes interleave their writes.
type CheckinView struct {
	gw   gateway.Gateway
	sess SessionContext

	mu              sync.Mutex
	eventID         int
	generation      uint64
	closed          bool
	tickets         []ticket.Ticket
	nextEnrichIndex int
	enriching       bool
}

// NewCheckinView creates an empty view bound to one event.
func NewCheckinView(gw gateway.Gateway, sess SessionContext, eventID int) *CheckinView {
	return &CheckinView{gw: gw, sess: sess, eventID: eventID}
}

// Initialize performs the bulk fetch and seeds the view with the tickets
// that have been through a scanner (checked or invalid); never-scanned
// tickets are excluded from history and report views.
func (v *CheckinView) Initialize(ctx context.Context) ([]ticket.Ticket, error) {
	agg, err := v.gw.FetchEventTickets(ctx, v.sess.BaseURL, v.sess.Token, v.eventID)
	if err != nil {
		return nil, fmt.Errorf("initialize view for event %d: %w", v.eventID, err)
	}
	return v.seed(agg), nil
}

// InitializeWith seeds the view from an aggregate the caller already holds,
// skipping the bulk fetch. The report path uses this after its combined
// fetch.
func (v *CheckinView) InitializeWith(agg ticket.EventAggregate) []ticket.Ticket {
	return v.seed(agg)
}

func (v *CheckinView) seed(agg ticket.EventAggregate) []ticket.Ticket {
	scanned := make([]ticket.Ticket, 0, len(agg.Tickets))
	for _, t := range agg.Tickets {
		if !t.Scanned() {
			continue
		}
		t.Enriched = false
		scanned = append(scanned, t)
	}
	sortTickets(scanned)

	v.mu.Lock()
	defer v.mu.Unlock()
	// Re-initializing bumps the generation so a batch started against the
	// previous ticket list discards its results instead of merging them.
	v.generation++
	v.tickets = scanned
	v.nextEnrichIndex = 0
	v.enriching = false
	return snapshotTickets(scanned)
}

// EnrichNextBatch advances enrichment by at most batchSize tickets.
//
// The cursor is a lower-bound hint, not an exact pointer: because the list
// is fully re-sorted after every merge, the pass re-scans from the cursor
// for the first unenriched entry, which keeps the walk correct when sorting
// reorders elements between batches. A failed detail fetch marks its ticket
// enriched anyway; it is never retried.
func (v *CheckinView) EnrichNextBatch(ctx context.Context, batchSize int) ViewState {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	v.mu.Lock()
	if v.enriching || v.closed {
		defer v.mu.Unlock()
		return v.snapshotLocked()
	}

	start := v.nextEnrichIndex
	for start < len(v.tickets) && v.tickets[start].Enriched {
		start++
	}
	if start >= len(v.tickets) {
		defer v.mu.Unlock()
		return v.snapshotLocked()
	}

	end := start + batchSize
	if end > len(v.tickets) {
		end = len(v.tickets)
	}
	slice := make([]ticket.Ticket, end-start)
	copy(slice, v.tickets[start:end])
	gen := v.generation
	v.enriching = true
	v.mu.Unlock()

	enriched := v.fetchBatch(ctx, slice)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.enriching = false
	if v.closed || v.generation != gen {
		// The view was closed or re-initialized mid-batch; the results
		// belong to a list that no longer exists.
		return v.snapshotLocked()
	}
	copy(v.tickets[start:end], enriched)
	sortTickets(v.tickets)
	v.nextEnrichIndex = start + batchSize
	return v.snapshotLocked()
}

// fetchBatch fans the per-ticket detail fetches out concurrently and waits
// for all of them. Entries already enriched (or without a QR code to look
// up) pass through unchanged apart from the flag.
func (v *CheckinView) fetchBatch(ctx context.Context, slice []ticket.Ticket) []ticket.Ticket {
	enriched := make([]ticket.Ticket, len(slice))
	var wg sync.WaitGroup
	for i, t := range slice {
		if t.Enriched || t.QRCode == "" {
			t.Enriched = true
			enriched[i] = t
			continue
		}
		wg.Add(1)
		go func(i int, t ticket.Ticket) {
			defer wg.Done()
			detail, err := v.gw.FetchTicketDetail(ctx, v.sess.BaseURL, t.QRCode)
			if err == nil {
				t.ApplyDetail(detail)
			}
			// On failure the ticket keeps its summary data and is never
			// retried.
			t.Enriched = true
			enriched[i] = t
		}(i, t)
	}
	wg.Wait()
	return enriched
}

// State returns the current snapshot.
func (v *CheckinView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Close marks the view dead. In-flight batches finish against the gateway
// but their merge is dropped.
func (v *CheckinView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *CheckinView) snapshotLocked() ViewState {
	fully := true
	for _, t := range v.tickets {
		if !t.Enriched {
			fully = false
			break
		}
	}
	return ViewState{
		EventID:         v.eventID,
		Tickets:         snapshotTickets(v.tickets),
		NextEnrichIndex: v.nextEnrichIndex,
		Enriching:       v.enriching,
		FullyEnriched:   fully,
	}
}

func snapshotTickets(tickets []ticket.Ticket) []ticket.Ticket {
	out := make([]ticket.Ticket, len(tickets))
	copy(out, tickets)
	return out
}

// sortTickets applies the canonical display order in place: checked tickets
// first, then most recent check-in first (unknown time last), ties broken by
// descending ticket id. The order is a pure function of ticket state and is
// recomputed wholesale after every mutation.
func sortTickets(tickets []ticket.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		a, b := tickets[i], tickets[j]

		aChecked := a.Status == ticket.StatusChecked
		bChecked := b.Status == ticket.StatusChecked
		if aChecked != bChecked {
			return aChecked
		}

		at := ticket.CheckinUnix(a.CheckinTime)
		bt := ticket.CheckinUnix(b.CheckinTime)
		if at != bt {
			return at > bt
		}

		return a.TicketID > b.TicketID
	})
}
