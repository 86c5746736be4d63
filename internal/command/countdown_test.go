package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/config"
)

func countdownConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.SetGlobalOption(config.KeyCountdownStart, "2025-01-01T00:00:00Z")
	cfg.SetGlobalOption(config.KeyCountdownEnd, "2025-01-03T00:00:00Z")
	return cfg
}

func runCountdown(t *testing.T, cfg *config.Config, now time.Time, args ...string) (string, error) {
	t.Helper()
	r := NewRegistry()
	r.Register(NewCountdownCommand(cfg, clock.NewFake(now)))
	s, stdout, _ := testStreams()
	err := r.Run(context.Background(), append([]string{"countdown"}, args...), s)
	return stdout.String(), err
}

func TestCountdownCommand_UsesClock(t *testing.T) {
	t.Parallel()
	out, err := runCountdown(t, countdownConfig(), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "1d 00:00:00 (50%) development\n", out)
}

func TestCountdownCommand_AtFlag(t *testing.T) {
	t.Parallel()
	out, err := runCountdown(t, countdownConfig(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"-at", "2025-01-02T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "0d 12:00:00 (75%) testing\n", out)

	_, err = runCountdown(t, countdownConfig(), time.Time{}, "-at", "tomorrow")
	assert.ErrorContains(t, err, "invalid -at")
}

func TestCountdownCommand_AtFromConfig(t *testing.T) {
	t.Parallel()
	cfg := countdownConfig()
	cfg.SetCommandOption("countdown", "at", "2025-01-01T06:00:00Z")

	out, err := runCountdown(t, cfg, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "1d 18:00:00 (13%) planning\n", out)
}

func TestCountdownCommand_Launched(t *testing.T) {
	t.Parallel()
	out, err := runCountdown(t, countdownConfig(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "launched\n", out)
}
