package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RetriesUntilSuccess(t *testing.T) {
	cfg := &RetryConfig{Attempts: 5, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := cfg.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnUnrecoverable(t *testing.T) {
	cfg := &RetryConfig{Attempts: 5, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	fatal := errors.New("fatal")

	calls := 0
	err := cfg.Do(context.Background(), func() error {
		calls++
		return retry.Unrecoverable(fatal)
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ReturnsLastError(t *testing.T) {
	cfg := &RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	boom := errors.New("boom")

	err := cfg.Do(context.Background(), func() error { return boom })

	assert.ErrorIs(t, err, boom)
}
