package session

import "context"

// TokenRefresher defines the contract for any component that can exchange a
// refresh token for a new token pair. An empty newRefreshToken means the
// server kept the old one.
type TokenRefresher interface {
	PerformTokenRefresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
}
