package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/internal/session"
)

type Handlers struct {
	Auth     *AuthHandler
	Event    *EventHandler
	History  *HistoryHandler
	Report   *ReportHandler
	Scan     *ScanHandler
	Settings *SettingsHandler
	Feed     *ScanFeed
	Router   *gin.Engine
}

func New(svc *application.Services, store *session.Store, router *gin.Engine) *Handlers {
	feed := NewScanFeed()
	h := &Handlers{
		Auth:     NewAuthHandler(svc.Auth),
		Event:    NewEventHandler(svc.Event, svc.Auth),
		History:  NewHistoryHandler(svc.History, svc.Auth),
		Report:   NewReportHandler(svc.Report, svc.Auth),
		Scan:     NewScanHandler(svc.Scan, svc.Auth, feed),
		Settings: NewSettingsHandler(store),
		Feed:     feed,
		Router:   router,
	}
	return h
}
