package application

import (
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/internal/session"
)

type Services struct {
	Auth    *AuthService
	Event   *EventService
	History *HistoryService
	Scan    *ScanService
	Report  *ReportService
}

func New(gw gateway.Gateway, store *session.Store, sites map[string]string, objects ObjectStore) *Services {
	return &Services{
		Auth:    NewAuthService(gw, store, sites),
		Event:   NewEventService(gw, store),
		History: NewHistoryService(gw),
		Scan:    NewScanService(gw),
		Report:  NewReportService(gw, objects),
	}
}
