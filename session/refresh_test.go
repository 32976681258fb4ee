package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/Sanidhya49/binsavvy-cli/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresh_Success(t *testing.T) {
	m, tokens, _, refresher := newManager(t, fixedEpoch)
	ctx := context.Background()

	require.NoError(t, tokens.Upsert(ctx, &db.Token{
		AccessToken:  "access_1_1000000000",
		RefreshToken: "refresh_1_1000000000",
	}))

	tok, err := m.Refresh(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "new-access", tok.AccessToken)
	assert.Equal(t, "new-refresh", tok.RefreshToken)
	assert.Equal(t, 1, refresher.callCount())

	stored, err := tokens.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "new-access", stored.AccessToken)
}

func TestRefresh_KeepsOldRefreshTokenWhenServerOmitsIt(t *testing.T) {
	m, tokens, _, refresher := newManager(t, fixedEpoch)
	refresher.refresh = ""
	ctx := context.Background()

	require.NoError(t, tokens.Upsert(ctx, &db.Token{
		AccessToken:  "access_1_1000000000",
		RefreshToken: "old-refresh",
	}))

	tok, err := m.Refresh(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "old-refresh", tok.RefreshToken)
}

func TestRefresh_NoRefreshTokenShortCircuits(t *testing.T) {
	m, _, _, refresher := newManager(t, fixedEpoch)
	ctx := context.Background()

	tok, err := m.Refresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)
	assert.Equal(t, 0, refresher.callCount(), "no network call without a refresh token")
}

func TestRefresh_FailureTearsDownSession(t *testing.T) {
	var ended bool
	m, tokens, _, refresher := newManager(t, fixedEpoch,
		session.WithSessionEndedFunc(func() { ended = true }))
	refresher.err = errors.New("refresh token revoked")
	ctx := context.Background()

	require.NoError(t, tokens.Upsert(ctx, &db.Token{
		AccessToken:  "access_1_1000000000",
		RefreshToken: "revoked",
	}))

	tok, err := m.Refresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)
	assert.True(t, ended, "session ended callback should fire on failed refresh")

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)

	refresh, err := m.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, refresh)
}

func TestRefresh_ConcurrentCallersShareOneExchange(t *testing.T) {
	m, tokens, _, refresher := newManager(t, fixedEpoch)
	ctx := context.Background()

	require.NoError(t, tokens.Upsert(ctx, &db.Token{
		AccessToken:  "access_1_1000000000",
		RefreshToken: "refresh_1_1000000000",
	}))

	// Hold the exchange open until every caller has piled in.
	refresher.block = make(chan struct{})

	const callers = 8
	results := make([]*db.Token, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = m.Refresh(ctx)
		}(i)
	}

	// Wait for the first caller to reach the network exchange, give the rest
	// a moment to join the same flight, then release it.
	waitForCalls(t, refresher, 1)
	time.Sleep(50 * time.Millisecond)
	close(refresher.block)
	wg.Wait()

	assert.Equal(t, 1, refresher.callCount(), "all callers coalesce onto one exchange")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, "new-access", results[i].AccessToken)
	}
}

// waitForCalls polls until the refresher has seen at least n exchanges.
func waitForCalls(t *testing.T, r *stubRefresher, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for r.callCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("refresher never reached %d calls", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRefresh_ClearedDuringFlightDiscardsResult(t *testing.T) {
	m, tokens, _, refresher := newManager(t, fixedEpoch)
	ctx := context.Background()

	require.NoError(t, tokens.Upsert(ctx, &db.Token{
		AccessToken:  "access_1_1000000000",
		RefreshToken: "refresh_1_1000000000",
	}))

	refresher.block = make(chan struct{})

	type outcome struct {
		tok *db.Token
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		tok, err := m.Refresh(ctx)
		done <- outcome{tok, err}
	}()

	// Log out while the exchange is still in flight, then let it finish.
	waitForCalls(t, refresher, 1)
	require.NoError(t, m.ClearTokens(ctx))
	close(refresher.block)

	res := <-done
	require.NoError(t, res.err)
	assert.Nil(t, res.tok, "result of an exchange raced by logout is discarded")

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access, "logout must not be undone by a late refresh")
}
