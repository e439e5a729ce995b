package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRevocationList_Revoke_ExpiresWithTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	list := NewSessionRevocationList(client)
	ctx := context.Background()

	require.NoError(t, list.Revoke(ctx, "sid-1", 10*time.Minute))

	revoked, err := list.IsRevoked(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(11 * time.Minute)

	revoked, err = list.IsRevoked(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionRevocationList_Revoke_NonPositiveTTL_NoOp(t *testing.T) {
	mr, client := newTestRedis(t)
	list := NewSessionRevocationList(client)

	require.NoError(t, list.Revoke(context.Background(), "sid-1", 0))

	assert.False(t, mr.Exists(RevokedSessionKey("sid-1")))
}
