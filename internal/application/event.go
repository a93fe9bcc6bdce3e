package application

import (
	"context"
	"strconv"

	"github.com/ticketwave/checkin-go/internal/domain/ticket"
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/internal/session"
)

// EventService lists the account's scannable events and builds the per-event
// headline counts shown before any ticket list is opened.
type EventService struct {
	gw    gateway.Gateway
	store *session.Store
}

func NewEventService(gw gateway.Gateway, store *session.Store) *EventService {
	return &EventService{gw: gw, store: store}
}

// List returns the events the session's account may scan, titles decoded.
func (s *EventService) List(ctx context.Context, sess SessionContext) ([]gateway.EventInfo, error) {
	events, err := s.gw.ListEvents(ctx, sess.BaseURL, sess.Token)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Title = ticket.DecodeTitle(events[i].Title)
	}
	return events, nil
}

// Summary returns the aggregate counts and date range for one event. The two
// backend calls are independent and run concurrently.
func (s *EventService) Summary(ctx context.Context, sess SessionContext, eventID int) (ticket.EventAggregate, error) {
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
		return ticket.EventAggregate{}, err
	}
	// A missing date range is cosmetic; counts still stand.
	if detail.err == nil {
		agg.Dates = detail.dates
	}
	agg.Tickets = nil
	return agg, nil
}

// Select persists the event the operator is working, so the scan screen can
// come back to it after a restart.
func (s *EventService) Select(eventID int) error {
	return s.store.Set(session.KeySelectedEID, strconv.Itoa(eventID))
}
