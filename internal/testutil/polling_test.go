package testutil

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll(t *testing.T) {
	t.Parallel()
	var n atomic.Int32
	err := Poll(context.Background(), func() bool { return n.Add(1) >= 3 }, time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n.Load())
}

func TestPoll_Timeout(t *testing.T) {
	t.Parallel()
	err := Poll(context.Background(), func() bool { return false }, 10*time.Millisecond, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestPoll_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Poll(ctx, func() bool { return false }, time.Minute, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForState(t *testing.T) {
	t.Parallel()
	var buf SyncBuffer
	go func() {
		for _, s := range []string{"a", "b", "c"} {
			_, _ = buf.Write([]byte(s))
			time.Sleep(time.Millisecond)
		}
	}()

	got, err := WaitForState(context.Background(), buf.String,
		func(s string) bool { return strings.HasSuffix(s, "c") },
		DefaultTimeout, DefaultInterval)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	_, err = WaitForState(context.Background(), buf.String,
		func(s string) bool { return s == "never" },
		10*time.Millisecond, time.Millisecond)
	assert.Error(t, err)
}
