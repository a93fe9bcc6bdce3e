package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/ticketwave/checkin-go/internal/domain/ticket"
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/internal/gateway/mock"
)

// --------------------- Setup ---------------------
func setupView(t *testing.T, eventID int) (*CheckinView, *mock.MockGateway) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockGw := mock.NewMockGateway(ctrl)
	view := NewCheckinView(mockGw, SessionContext{BaseURL: "https://site.test/", Token: "tok"}, eventID)
	return view, mockGw
}

func scannedTicket(id int, status ticket.Status, checkin string) ticket.Ticket {
	return ticket.Ticket{
		TicketID:    id,
		QRCode:      fmt.Sprintf("QR-%d", id),
		Status:      status,
		CheckinTime: checkin,
	}
}

// --------------------- Seeding ---------------------
func TestInitialize_FiltersNeverScanned(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{
			scannedTicket(1, ticket.StatusChecked, ""),
			{TicketID: 2, QRCode: "QR-2", Status: ticket.StatusUnchecked},
			scannedTicket(3, ticket.StatusInvalid, ""),
		},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), "https://site.test/", "tok", 7).Return(agg, nil)

	tickets, err := view.Initialize(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tickets, 2)
	for _, tk := range tickets {
		assert.True(t, tk.Scanned())
		assert.False(t, tk.Enriched)
	}
}

func TestInitialize_SortOrder(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{
			scannedTicket(5, ticket.StatusChecked, ""),
			scannedTicket(2, ticket.StatusChecked, "July 10, 2025 10:00 am"),
			scannedTicket(9, ticket.StatusInvalid, "July 10, 2025 9:00 am"),
		},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)

	tickets, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	// Checked before invalid; among checked, known time before unknown.
	ids := []int{tickets[0].TicketID, tickets[1].TicketID, tickets[2].TicketID}
	assert.Equal(t, []int{2, 5, 9}, ids)
}

func TestInitialize_TieBreakByTicketIDDesc(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{
			scannedTicket(3, ticket.StatusChecked, "July 10, 2025 10:00 am"),
			scannedTicket(8, ticket.StatusChecked, "July 10, 2025 10:00 am"),
		},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)

	tickets, err := view.Initialize(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 8, tickets[0].TicketID)
	assert.Equal(t, 3, tickets[1].TicketID)
}

// --------------------- Enrichment ---------------------
func TestEnrichNextBatch_MergesDetailAndResorts(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{
			scannedTicket(1, ticket.StatusChecked, ""),
			scannedTicket(2, ticket.StatusChecked, ""),
		},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)
	// Ticket 1 gets a check-in time; ticket 2's fetch returns empty fields.
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), "QR-1").Return(ticket.Detail{
		TicketID:    1,
		RawStatus:   "checked",
		TicketType:  "VIP",
		CheckinTime: "July 10, 2025 2:34 pm",
	}, nil)
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), "QR-2").Return(ticket.Detail{}, nil)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	state := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, state.FullyEnriched)
	assert.False(t, state.Enriching)

	// Ticket 1 now has a known check-in time, so it sorts first.
	assert.Equal(t, 1, state.Tickets[0].TicketID)
	assert.Equal(t, "VIP", state.Tickets[0].TicketType)
	assert.Equal(t, "July 10, 2025 2:34 pm", state.Tickets[0].CheckinTime)

	// Ticket 2's empty detail did not erase its summary fields.
	assert.Equal(t, 2, state.Tickets[1].TicketID)
	assert.Equal(t, "QR-2", state.Tickets[1].QRCode)
	assert.True(t, state.Tickets[1].Enriched)
}

func TestEnrichNextBatch_FailedFetchStillMarksEnriched(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{
			scannedTicket(1, ticket.StatusChecked, ""),
			scannedTicket(2, ticket.StatusInvalid, ""),
			scannedTicket(3, ticket.StatusChecked, ""),
		},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ticket.Detail{}, &gateway.TransportError{Op: "ticket_detail", Err: assert.AnError}).
		Times(3)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	state := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, state.FullyEnriched)
	for _, tk := range state.Tickets {
		assert.True(t, tk.Enriched)
	}
}

func TestEnrichNextBatch_NoOpWhenFullyEnriched(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{scannedTicket(1, ticket.StatusChecked, "")},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)
	// Exactly one detail fetch over both passes.
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), "QR-1").Return(ticket.Detail{}, nil).Times(1)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	first := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, first.FullyEnriched)

	second := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, second.FullyEnriched)
	assert.Equal(t, first.Tickets, second.Tickets)
}

func TestEnrichNextBatch_WalksWholeListInBatches(t *testing.T) {
	view, mockGw := setupView(t, 7)

	var all []ticket.Ticket
	for i := 1; i <= 40; i++ {
		if i <= 25 {
			all = append(all, scannedTicket(i, ticket.StatusChecked, ""))
		} else {
			all = append(all, ticket.Ticket{TicketID: i, QRCode: fmt.Sprintf("QR-%d", i)})
		}
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).
		Return(ticket.EventAggregate{Tickets: all}, nil)
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ticket.Detail{}, nil).
		Times(25)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	state := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.False(t, state.FullyEnriched)
	state = view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.False(t, state.FullyEnriched)
	state = view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, state.FullyEnriched)
	assert.Len(t, state.Tickets, 25)

	// A fourth pass touches the gateway no further.
	state = view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, state.FullyEnriched)
}

// --------------------- Concurrency ---------------------
func TestEnrichNextBatch_SecondPassBlockedWhileInFlight(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{scannedTicket(1, ticket.StatusChecked, "")},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), "QR-1").
		DoAndReturn(func(context.Context, string, string) (ticket.Detail, error) {
			close(started)
			<-release
			return ticket.Detail{}, nil
		}).
		Times(1)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	done := make(chan ViewState, 1)
	go func() {
		done <- view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	}()
	<-started

	// The overlapping pass returns immediately without touching the gateway.
	overlap := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.True(t, overlap.Enriching)
	assert.False(t, overlap.FullyEnriched)

	close(release)
	final := <-done
	assert.True(t, final.FullyEnriched)
}

func TestEnrichNextBatch_StaleBatchDiscardedAfterReseed(t *testing.T) {
	view, mockGw := setupView(t, 7)

	first := ticket.EventAggregate{
		Tickets: []ticket.Ticket{scannedTicket(1, ticket.StatusChecked, "")},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(first, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), "QR-1").
		DoAndReturn(func(context.Context, string, string) (ticket.Detail, error) {
			close(started)
			<-release
			return ticket.Detail{TicketID: 1, CheckinTime: "July 10, 2025 2:34 pm"}, nil
		}).
		Times(1)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	done := make(chan ViewState, 1)
	go func() {
		done <- view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	}()
	<-started

	// Reseed mid-batch; the running batch belongs to the old generation.
	view.InitializeWith(ticket.EventAggregate{
		Tickets: []ticket.Ticket{scannedTicket(2, ticket.StatusInvalid, "")},
	})
	close(release)
	<-done

	state := view.State()
	assert.Len(t, state.Tickets, 1)
	assert.Equal(t, 2, state.Tickets[0].TicketID)
	assert.False(t, state.Tickets[0].Enriched)
	assert.False(t, state.FullyEnriched)
}

func TestClose_DropsInFlightMerge(t *testing.T) {
	view, mockGw := setupView(t, 7)

	agg := ticket.EventAggregate{
		Tickets: []ticket.Ticket{scannedTicket(1, ticket.StatusChecked, "")},
	}
	mockGw.EXPECT().FetchEventTickets(gomock.Any(), gomock.Any(), gomock.Any(), 7).Return(agg, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	mockGw.EXPECT().FetchTicketDetail(gomock.Any(), gomock.Any(), "QR-1").
		DoAndReturn(func(context.Context, string, string) (ticket.Detail, error) {
			close(started)
			<-release
			return ticket.Detail{TicketID: 1, TicketType: "VIP"}, nil
		}).
		Times(1)

	_, err := view.Initialize(context.Background())
	assert.NoError(t, err)

	done := make(chan ViewState, 1)
	go func() {
		done <- view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	}()
	<-started
	view.Close()
	close(release)
	<-done

	state := view.State()
	assert.Empty(t, state.Tickets[0].TicketType)

	// Closed views refuse further passes.
	again := view.EnrichNextBatch(context.Background(), DefaultBatchSize)
	assert.False(t, again.Tickets[0].Enriched)
}
