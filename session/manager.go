package session

import (
	"context"
	"sync"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/Sanidhya49/binsavvy-cli/token"
	"golang.org/x/sync/singleflight"
)

// DefaultExpiryThreshold is how close to expiry a token counts as "expiring
// soon", and how far ahead of expiry the scheduler refreshes.
const DefaultExpiryThreshold = 5 * time.Minute

// Manager is the single source of truth for the current session: it owns the
// persisted token pair, answers validity queries, and keeps the access token
// fresh through a scheduled, coalesced refresh. Construct one per process and
// pass it to consumers; there is no package-level instance.
type Manager struct {
	tokens    db.TokenRepository
	users     db.UserRepository
	refresher TokenRefresher
	codec     *token.Codec

	threshold time.Duration
	now       func() time.Time
	onEnded   func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64

	refreshGroup singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

// WithCodec overrides the token codec.
func WithCodec(c *token.Codec) Option { return func(m *Manager) { m.codec = c } }

// WithExpiryThreshold overrides the "expiring soon" window and refresh lead time.
func WithExpiryThreshold(d time.Duration) Option { return func(m *Manager) { m.threshold = d } }

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithSessionEndedFunc registers a callback fired when the session is torn
// down after a failed refresh. The caller decides what "go back to login"
// means; the manager itself has no UI concerns.
func WithSessionEndedFunc(fn func()) Option { return func(m *Manager) { m.onEnded = fn } }

// NewManager is the constructor for the session manager.
func NewManager(tokens db.TokenRepository, users db.UserRepository, refresher TokenRefresher, opts ...Option) *Manager {
	m := &Manager{
		tokens:    tokens,
		users:     users,
		refresher: refresher,
		codec:     token.NewCodec(nil),
		threshold: DefaultExpiryThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetTokens persists a new token pair, replacing any previous pair wholesale,
// and reschedules the refresh timer from the new access token's expiry.
func (m *Manager) SetTokens(ctx context.Context, access, refresh string) error {
	if err := m.tokens.Upsert(ctx, &db.Token{AccessToken: access, RefreshToken: refresh}); err != nil {
		return err
	}
	m.scheduleRefresh(access)
	return nil
}

// AccessToken returns the persisted access token, or "" when none is stored.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	tok, err := m.tokens.Get(ctx)
	if err != nil || tok == nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// RefreshToken returns the persisted refresh token, or "" when none is stored.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	tok, err := m.tokens.Get(ctx)
	if err != nil || tok == nil {
		return "", err
	}
	return tok.RefreshToken, nil
}

// ClearTokens removes the stored pair and cancels any pending scheduled
// refresh. It is idempotent. A refresh exchange already in flight when this
// is called has its result discarded rather than written back.
func (m *Manager) ClearTokens(ctx context.Context) error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		return err
	}
	if m.users != nil {
		if err := m.users.Clear(ctx); err != nil {
			return err
		}
	}
	return nil
}

// IsTokenValid reports whether the token decodes and its expiry is still in
// the future. Undecodable tokens are never valid.
func (m *Manager) IsTokenValid(raw string) bool {
	p := m.codec.Decode(raw)
	if p == nil {
		return false
	}
	return p.ExpiresAt > m.now().Unix()
}

// IsTokenExpiringSoon reports whether the token expires within the given
// threshold (the manager default when zero). Undecodable tokens are treated
// as expiring, so callers refresh rather than keep using them.
func (m *Manager) IsTokenExpiringSoon(raw string, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = m.threshold
	}
	p := m.codec.Decode(raw)
	if p == nil {
		return true
	}
	return time.Duration(p.ExpiresAt-m.now().Unix())*time.Second < threshold
}

// IsAuthenticated reports whether a currently valid access token is stored.
// An expired access token does not count, even when a refresh token is
// present; refreshing is the scheduler's job, not a side effect of a read.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	access, err := m.AccessToken(ctx)
	if err != nil || access == "" {
		return false
	}
	return m.IsTokenValid(access)
}

// CurrentUser resolves the current user, preferring the locally cached record
// and falling back to the access token's claims. Returns nil when neither is
// available.
func (m *Manager) CurrentUser(ctx context.Context) (*db.User, error) {
	if m.users != nil {
		user, err := m.users.Get(ctx)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	access, err := m.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	p := m.codec.Decode(access)
	if p == nil {
		return nil, nil
	}
	return &db.User{UserID: p.Subject, Username: p.Username, Role: p.Role}, nil
}

// IsAdmin reports whether the current user's role is "admin".
func (m *Manager) IsAdmin(ctx context.Context) bool {
	user, err := m.CurrentUser(ctx)
	if err != nil || user == nil {
		return false
	}
	return user.Role == "admin"
}

func (m *Manager) generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

func (m *Manager) fireSessionEnded() {
	if m.onEnded != nil {
		m.onEnded()
	}
}
