package application

import (
	"context"
	"errors"
	"sync"

	"github.com/ticketwave/checkin-go/internal/gateway"
)

// ErrScanInFlight means a validation is already running; the scanner must
// wait for it to finish before submitting another code.
var ErrScanInFlight = errors.New("a scan is already being validated")

// ErrDuplicateScan means the submitted code equals the last completed one
// for the same event and the scanner has not been reset since. Camera
// scanners fire the same frame many times per second; without this guard
// one hold-up of a ticket would hit the backend dozens of times.
var ErrDuplicateScan = errors.New("code already scanned, reset the scanner first")

// ScanService validates barcodes against the backend with a two-level
// replay guard: an in-flight flag blocking every code while a validation
// runs, and a latch blocking the last (event, code) pair after completion
// until an explicit reset. Switching events rearms the scanner for the
// same code.
type ScanService struct {
	gw gateway.Gateway

	mu          sync.Mutex
	inFlight    bool
	lastEventID int
	lastCode    string
}

func NewScanService(gw gateway.Gateway) *ScanService {
	return &ScanService{gw: gw}
}

// Validate submits one code for the event. The rejection of a code by the
// backend is a normal result; only transport conditions return an error.
func (s *ScanService) Validate(ctx context.Context, sess SessionContext, eventID int, code string) (gateway.ValidationResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return gateway.ValidationResult{}, ErrScanInFlight
	}
	if code != "" && code == s.lastCode && eventID == s.lastEventID {
		s.mu.Unlock()
		return gateway.ValidationResult{}, ErrDuplicateScan
	}
	s.inFlight = true
	s.mu.Unlock()

	res, err := s.gw.ValidateTicket(ctx, sess.BaseURL, sess.Token, eventID, code)

	s.mu.Lock()
	s.inFlight = false
	// The latch is set even when the backend rejected the code, so a held-up
	// invalid ticket does not hammer the endpoint either.
	if err == nil {
		s.lastEventID = eventID
		s.lastCode = code
	}
	s.mu.Unlock()

	return res, err
}

// Reset clears the latch, rearming the scanner for the next ticket.
func (s *ScanService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEventID = 0
	s.lastCode = ""
}
