package consent

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const (
	CookieName   = "cookie_consent"
	CookieMaxAge = 365 * 24 * time.Hour
)

// Consent per category; necessary cookies cannot be refused.
type Consent struct {
	Necessary  bool      `json:"necessary"`
	Statistics bool      `json:"statistics"`
	Marketing  bool      `json:"marketing"`
	Timestamp  time.Time `json:"timestamp"`
}

// State is what a visitor decided. Without a decision nothing but the necessary scripts runs.
type State struct {
	Decided bool    `json:"decided"`
	Consent Consent `json:"consent"`
}

func (s State) HasDecision() bool {
	return s.Decided
}

func (s State) AllowsStatistics() bool {
	return s.Decided && s.Consent.Statistics
}

func (s State) AllowsMarketing() bool {
	return s.Decided && s.Consent.Marketing
}

// ConsentRecord is the audit entry of the latest decision of a visitor.
type ConsentRecord struct {
	VisitorID  string
	Necessary  bool
	Statistics bool
	Marketing  bool
	Timestamp  time.Time
	UserAgent  string `datastore:",noindex"`
}

type cookieValue struct {
	Consent
	VisitorID string `json:"visitorId,omitempty"`
}

// FromRequest reads the consent cookie; a missing or unreadable cookie means no decision.
func FromRequest(r *http.Request) State {
	value, ok := readCookie(r)
	if !ok {
		return State{}
	}
	value.Necessary = true
	return State{
		Decided: true,
		Consent: value.Consent,
	}
}

func visitorIDFromRequest(r *http.Request) string {
	value, ok := readCookie(r)
	if !ok {
		return ""
	}
	return value.VisitorID
}

func readCookie(r *http.Request) (cookieValue, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return cookieValue{}, false
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return cookieValue{}, false
	}
	value := cookieValue{}
	err = json.Unmarshal([]byte(raw), &value)
	if err != nil {
		return cookieValue{}, false
	}
	return value, true
}

func writeCookie(w http.ResponseWriter, r *http.Request, consent Consent, visitorID string) error {
	raw, err := json.Marshal(cookieValue{
		Consent:   consent,
		VisitorID: visitorID,
	})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
