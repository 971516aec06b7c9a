package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: 3, Username: "小明"})

	id, ok := auth.IdentityFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(3), id.UserID)
	assert.Equal(t, "小明", id.Username)
}

func TestIdentityAbsent(t *testing.T) {
	_, ok := auth.IdentityFromCtx(context.Background())
	assert.False(t, ok)
}

// Concurrent requests must never observe each other's identity.
func TestIdentityIsolationAcrossConcurrentContexts(t *testing.T) {
	const workers = 64

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n uint) {
			defer wg.Done()
			ctx := auth.WithIdentity(context.Background(), auth.Identity{
				UserID:   n,
				Username: fmt.Sprintf("用户%d", n),
			})
			for j := 0; j < 100; j++ {
				id, ok := auth.IdentityFromCtx(ctx)
				if !ok || id.UserID != n {
					errCh <- fmt.Errorf("worker %d observed identity %+v", n, id)
					return
				}
			}
		}(uint(i + 1))
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Error(err)
	}
}
