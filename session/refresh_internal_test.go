package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshDelay(t *testing.T) {
	now := time.Unix(1000000000, 0)
	lead := 5 * time.Minute

	tests := []struct {
		name      string
		expiresAt int64
		want      time.Duration
	}{
		{"full day ahead", 1000000000 + 86400, 86400*time.Second - lead},
		{"exactly at the lead window", 1000000000 + 300, 0},
		{"inside the lead window", 1000000000 + 100, 0},
		{"already expired", 1000000000 - 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, refreshDelay(tt.expiresAt, now, lead))
		})
	}
}
