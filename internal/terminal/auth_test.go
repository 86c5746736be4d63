package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtstudio/gmt-terminal/internal/codec"
)

func TestPuzzleDecryptsToPassword(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Password, codec.DecryptVigenere(PuzzleCipher, PuzzleKey))
	assert.Contains(t, PuzzlePrompt, PuzzleCipher)
}

func TestSubmitPassword_BeforePuzzle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	_, err := f.session.SubmitPassword(Password)
	assert.ErrorIs(t, err, ErrPuzzleNotVisible)

	f.session.PowerToggle()
	f.session.BootTick()
	_, err = f.session.SubmitPassword(Password)
	assert.ErrorIs(t, err, ErrPuzzleNotVisible)
	assert.Equal(t, 0, f.session.AttemptCount())
	assert.False(t, f.session.Authenticated())
}

func TestSubmitPassword_WrongGuessCountsExactlyOne(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.boot(t)
	for i, guess := range []string{"", "innovation", "INNOVATION ", "GMT", PuzzleCipher} {
		ok, err := f.session.SubmitPassword(guess)
		require.NoError(t, err)
		require.False(t, ok, "guess %q", guess)
		require.Equal(t, i+1, f.session.AttemptCount())
		require.False(t, f.session.Authenticated())
		require.Equal(t, StateLockedPuzzle, f.session.State())
	}
}

func TestSubmitPassword_CorrectRegardlessOfAttempts(t *testing.T) {
	t.Parallel()
	for attempts := 0; attempts < 5; attempts++ {
		f := newFixture(t)
		f.boot(t)
		for i := 0; i < attempts; i++ {
			_, _ = f.session.SubmitPassword("wrong")
		}
		ok, err := f.session.SubmitPassword(Password)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, StateAuthenticated, f.session.State())
		require.Equal(t, attempts, f.session.AttemptCount())

		_, err = f.session.SubmitPassword(Password)
		require.ErrorIs(t, err, ErrAlreadyAuthenticated)
	}
}

func TestErrorFlag_ClearsAfterDuration(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.boot(t)
	assert.False(t, f.session.ErrorVisible())

	_, _ = f.session.SubmitPassword("wrong")
	assert.True(t, f.session.ErrorVisible())

	f.clock.Advance(DefaultErrorDuration - time.Millisecond)
	assert.True(t, f.session.ErrorVisible())
	f.clock.Advance(time.Millisecond)
	assert.False(t, f.session.ErrorVisible())
}

func TestErrorFlag_ResetByPowerOff(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.boot(t)
	_, _ = f.session.SubmitPassword("wrong")
	f.session.PowerToggle()
	assert.False(t, f.session.ErrorVisible())
}

func TestHintVisible_AfterThirdFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.boot(t)
	for i := 0; i < 3; i++ {
		assert.False(t, f.session.HintVisible(), "after %d failures", i)
		_, _ = f.session.SubmitPassword("wrong")
	}
	assert.True(t, f.session.HintVisible())
}

func TestOpenTerminal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	assert.ErrorIs(t, f.session.OpenTerminal(), ErrNotAuthenticated)
	f.boot(t)
	assert.ErrorIs(t, f.session.OpenTerminal(), ErrNotAuthenticated)

	_, _ = f.session.SubmitPassword(Password)
	require.NoError(t, f.session.OpenTerminal())
	assert.Equal(t, StateReady, f.session.State())
	assert.Equal(t, []Line{{Role: RoleOutput, Full: WelcomeText, Visible: WelcomeText}}, f.session.Transcript())

	require.NoError(t, f.session.OpenTerminal())
	assert.Len(t, f.session.Transcript(), 1, "second open must not re-seed")
}
