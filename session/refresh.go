package session

import (
	"context"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/rs/zerolog/log"
)

// Refresh exchanges the stored refresh token for a new pair and persists the
// result. Concurrent callers are coalesced onto a single network exchange;
// every caller observes the same stored outcome.
//
// It returns the new token pair on success, and nil without an error for the
// expected failure modes: no refresh token stored, or the exchange being
// rejected. A rejected or failed exchange tears the whole session down
// (fail-closed) — the refresh token is the last credential we hold, and
// retrying with a revoked one indefinitely would be worse than forcing a
// fresh login.
func (m *Manager) Refresh(ctx context.Context) (*db.Token, error) {
	v, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	tok, _ := v.(*db.Token)
	return tok, nil
}

func (m *Manager) doRefresh(ctx context.Context) (*db.Token, error) {
	startGen := m.generation()

	stored, err := m.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.RefreshToken == "" {
		log.Debug().Msg("No refresh token stored, skipping refresh")
		return nil, nil
	}

	access, refresh, err := m.refresher.PerformTokenRefresh(ctx, stored.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("Token refresh failed, clearing session")
		if clearErr := m.ClearTokens(ctx); clearErr != nil {
			return nil, clearErr
		}
		m.fireSessionEnded()
		return nil, nil
	}

	// The session may have been cleared while the exchange was in flight.
	// Writing the result back would silently log the user in again.
	if m.generation() != startGen {
		log.Debug().Msg("Session cleared during refresh, discarding result")
		return nil, nil
	}

	if refresh == "" {
		refresh = stored.RefreshToken
	}
	if err := m.SetTokens(ctx, access, refresh); err != nil {
		return nil, err
	}
	log.Info().Msg("Token refreshed and saved successfully")
	return &db.Token{AccessToken: access, RefreshToken: refresh}, nil
}

// scheduleRefresh (re)arms the one-shot refresh timer to fire shortly before
// the access token expires. Any previously armed timer is cancelled first, so
// there is never more than one.
func (m *Manager) scheduleRefresh(access string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	p := m.codec.Decode(access)
	if p == nil {
		log.Debug().Msg("Access token undecodable, refresh timer not armed")
		return
	}

	delay := refreshDelay(p.ExpiresAt, m.now(), m.threshold)
	m.timer = time.AfterFunc(delay, func() {
		if _, err := m.Refresh(context.Background()); err != nil {
			log.Error().Err(err).Msg("Scheduled token refresh failed")
		}
	})
	log.Debug().Dur("delay", delay).Msg("Refresh timer armed")
}

// refreshDelay computes how long to wait before refreshing a token that
// expires at the given unix time: the lead window before expiry, clamped to
// zero when already inside it.
func refreshDelay(expiresAt int64, now time.Time, lead time.Duration) time.Duration {
	delay := time.Duration(expiresAt-now.Unix())*time.Second - lead
	if delay < 0 {
		return 0
	}
	return delay
}
