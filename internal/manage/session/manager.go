package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName  = "manage_session"
	defaultCookiePath  = "/"
	defaultLifetime    = 8 * time.Hour
	defaultIdleTimeout = 30 * time.Minute
	tokenLength        = 32
)

var (
	// ErrExpired indicates the stored session passed its idle or absolute limit.
	ErrExpired = errors.New("session expired")
	// ErrInvalidConfig indicates the manager was created without a hash key.
	ErrInvalidConfig = errors.New("session: invalid config")
)

// Staff is the signed-in console operator persisted in the cookie.
type Staff struct {
	UID   string   `json:"uid"`
	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Data is the cookie payload.
type Data struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
	ExpiresAt  time.Time `json:"expiresAt,omitempty"`
	CSRFToken  string    `json:"csrfToken,omitempty"`
	Staff      *Staff    `json:"staff,omitempty"`
}

// Config controls cookie encoding and session lifetime.
type Config struct {
	CookieName   string
	CookiePath   string
	HashKey      []byte
	BlockKey     []byte
	CookieSecure bool
	Lifetime     time.Duration
	IdleTimeout  time.Duration
	Now          func() time.Time
}

// Manager stores sessions in signed (optionally encrypted) cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
}

// Session is the per-request view over Data.
type Session struct {
	data      Data
	dirty     bool
	destroyed bool
}

// NewManager validates cfg and fills defaults.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &Manager{cfg: cfg, codec: codec}, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// Load decodes the request cookie. A missing or tampered cookie yields a fresh session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	now := m.cfg.Now().UTC()
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.fresh(now), nil
	}
	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil || stored.ID == "" {
		return m.fresh(now), nil
	}
	if m.expired(stored, now) {
		return nil, ErrExpired
	}
	return &Session{data: stored}, nil
}

// New returns an empty session.
func (m *Manager) New() *Session {
	return m.fresh(m.cfg.Now().UTC())
}

// Save writes sess to the response, clearing the cookie when it was destroyed.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if sess.destroyed {
		m.Clear(w)
		return nil
	}
	now := m.cfg.Now().UTC()
	sess.touch(now)

	encoded, err := m.codec.Encode(m.cfg.CookieName, sess.data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	cookie := m.cookie(encoded)
	cookie.Expires = sess.data.ExpiresAt
	if remaining := sess.data.ExpiresAt.Sub(now); remaining > 0 {
		cookie.MaxAge = int(remaining.Round(time.Second).Seconds())
	} else {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
	return nil
}

// Clear expires the session cookie on the client.
func (m *Manager) Clear(w http.ResponseWriter) {
	cookie := m.cookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     m.cfg.CookiePath,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) fresh(now time.Time) *Session {
	return &Session{
		data: Data{
			ID:         mustToken(),
			CreatedAt:  now,
			LastActive: now,
			ExpiresAt:  now.Add(m.cfg.Lifetime),
		},
		dirty: true,
	}
}

func (m *Manager) expired(d Data, now time.Time) bool {
	if !d.ExpiresAt.IsZero() && now.After(d.ExpiresAt) {
		return true
	}
	last := d.LastActive
	if last.IsZero() {
		last = d.CreatedAt
	}
	return !last.IsZero() && now.Sub(last) > m.cfg.IdleTimeout
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.data.ID }

// ExpiresAt returns the absolute expiry.
func (s *Session) ExpiresAt() time.Time { return s.data.ExpiresAt }

// Staff returns the signed-in operator, or nil.
func (s *Session) Staff() *Staff { return s.data.Staff }

// SetStaff replaces the signed-in operator. Signing in rotates the CSRF token.
func (s *Session) SetStaff(staff *Staff) {
	if sameStaff(s.data.Staff, staff) {
		return
	}
	if staff == nil {
		s.data.Staff = nil
	} else {
		copied := *staff
		copied.Roles = slices.Clone(staff.Roles)
		s.data.Staff = &copied
	}
	s.data.CSRFToken = ""
	s.dirty = true
}

// CSRFToken returns the stored token, possibly empty.
func (s *Session) CSRFToken() string { return s.data.CSRFToken }

// EnsureCSRFToken returns the stored token, generating one if needed.
func (s *Session) EnsureCSRFToken() (string, error) {
	if s.data.CSRFToken != "" {
		return s.data.CSRFToken, nil
	}
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.data.CSRFToken = token
	s.dirty = true
	return token, nil
}

// Destroy marks the session for removal when saved.
func (s *Session) Destroy() {
	s.destroyed = true
	s.dirty = true
}

// Destroyed reports whether Destroy was called.
func (s *Session) Destroyed() bool { return s.destroyed }

// Dirty reports whether the session changed during this request.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) touch(now time.Time) {
	if now.After(s.data.LastActive) {
		s.data.LastActive = now
		s.dirty = true
	}
}

func sameStaff(a, b *Staff) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UID == b.UID && a.Email == b.Email && a.Name == b.Name && slices.Equal(a.Roles, b.Roles)
}

func mustToken() string {
	token, err := newToken()
	if err != nil {
		panic(err)
	}
	return token
}

func newToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
