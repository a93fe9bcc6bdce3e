package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/internal/session"
)

// ErrUnknownSite is returned when the requested site code is not in the
// registry.
var ErrUnknownSite = errors.New("unknown site code")

// ErrPasswordReset means the backend served its password reset page instead
// of a token. The account exists; the user has to reset on the website
// before the device can log in.
var ErrPasswordReset = errors.New("account requires a password reset on the website")

// AuthService exchanges staff credentials for a backend token and keeps the
// device session current.
type AuthService struct {
	gw    gateway.Gateway
	store *session.Store
	sites map[string]string
}

func NewAuthService(gw gateway.Gateway, store *session.Store, sites map[string]string) *AuthService {
	return &AuthService{gw: gw, store: store, sites: sites}
}

// Login resolves the site code to its backend URL, authenticates, and
// persists the session. The backend token is returned for the caller to wrap
// into a device token.
func (s *AuthService) Login(ctx context.Context, site, user, pass string) (string, error) {
	baseURL, ok := s.sites[site]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSite, site)
	}

	token, err := s.gw.Login(ctx, baseURL, user, pass)
	if errors.Is(err, gateway.ErrHTMLResponse) {
		return "", ErrPasswordReset
	}
	if err != nil {
		return "", err
	}

	err = s.store.SetAll(map[string]string{
		session.KeyToken:      token,
		session.KeyIsLoggedIn: "true",
		session.KeyURL:        baseURL,
		session.KeySite:       site,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout wipes the stored session.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// Session returns the current session context, or false when the device is
// not logged in.
func (s *AuthService) Session() (SessionContext, bool) {
	if s.store.GetDefault(session.KeyIsLoggedIn, "false") != "true" {
		return SessionContext{}, false
	}
	token, err := s.store.Get(session.KeyToken)
	if err != nil {
		return SessionContext{}, false
	}
	url, err := s.store.Get(session.KeyURL)
	if err != nil {
		return SessionContext{}, false
	}
	return SessionContext{BaseURL: url, Token: token}, true
}

// Site returns the stored site code, empty when none was saved.
func (s *AuthService) Site() string {
	return s.store.GetDefault(session.KeySite, "")
}

// SelectedEvent returns the persisted event selection, or false when none.
func (s *AuthService) SelectedEvent() (int, bool) {
	raw, err := s.store.Get(session.KeySelectedEID)
	if err != nil {
		return 0, false
	}
	eid, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return eid, true
}
