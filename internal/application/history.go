package application

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/ticketwave/checkin-go/internal/gateway"
)

// ErrViewNotFound is returned for an unknown or already closed view id.
var ErrViewNotFound = errors.New("view not found")

// HistoryService manages the open check-in views. At most one view exists
// per event; opening an event again closes the previous view, which also
// drops any batch it still has in flight.
type HistoryService struct {
	gw gateway.Gateway

	mu      sync.Mutex
	views   map[string]*CheckinView
	byEvent map[int]string
}

func NewHistoryService(gw gateway.Gateway) *HistoryService {
	return &HistoryService{
		gw:      gw,
		views:   map[string]*CheckinView{},
		byEvent: map[int]string{},
	}
}

// Open creates a view for the event, performs the bulk fetch, and returns
// the view id with its initial state.
func (s *HistoryService) Open(ctx context.Context, sess SessionContext, eventID int) (string, ViewState, error) {
	view := NewCheckinView(s.gw, sess, eventID)
	if _, err := view.Initialize(ctx); err != nil {
		return "", ViewState{}, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	if prev, ok := s.byEvent[eventID]; ok {
		if old := s.views[prev]; old != nil {
			old.Close()
		}
		delete(s.views, prev)
	}
	s.views[id] = view
	s.byEvent[eventID] = id
	s.mu.Unlock()

	return id, view.State(), nil
}

// Enrich runs one enrichment pass on the view.
func (s *HistoryService) Enrich(ctx context.Context, id string, batchSize int) (ViewState, error) {
	view, err := s.lookup(id)
	if err != nil {
		return ViewState{}, err
	}
	return view.EnrichNextBatch(ctx, batchSize), nil
}

// Get returns the view's current state without advancing enrichment.
func (s *HistoryService) Get(id string) (ViewState, error) {
	view, err := s.lookup(id)
	if err != nil {
		return ViewState{}, err
	}
	return view.State(), nil
}

// Close tears the view down.
func (s *HistoryService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[id]
	if !ok {
		return ErrViewNotFound
	}
	view.Close()
	delete(s.views, id)
	for eid, vid := range s.byEvent {
		if vid == id {
			delete(s.byEvent, eid)
		}
	}
	return nil
}

func (s *HistoryService) lookup(id string) (*CheckinView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}
	return view, nil
}
