package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_NotReady(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	assert.ErrorIs(t, f.session.Submit("help"), ErrTerminalNotReady)
	f.boot(t)
	assert.ErrorIs(t, f.session.Submit("help"), ErrTerminalNotReady)
	_, _ = f.session.SubmitPassword(Password)
	assert.ErrorIs(t, f.session.Submit("help"), ErrTerminalNotReady)
}

func TestSubmit_EchoThenOutput(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	lines := f.submit(t, "  About ")
	require.Len(t, lines, 3)
	assert.Equal(t, Line{Role: RoleInput, Full: "about", Visible: "about"}, lines[1])
	assert.Equal(t, AboutText, lastOutput(t, lines))
}

func TestSubmit_Vectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want string
	}{
		{"decode_vigenere LXFOPVEFRNHR LEMON", "ATTACKATDAWN"},
		{"decode_binary 01000111 01001101 01010100", "GMT"},
		{"decode_binary 0100011 1", "Invalid binary format"},
		{"foo123", "Command not found: foo123"},
		{"FOO123", "Command not found: FOO123"},
		{"decode_vigenere LXFOPVEFRNHR", "Usage: decode_vigenere <ciphertext> <key>"},
		{"cd", "cd: missing directory argument. Usage: cd <directory>"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.ready(t)
			before := len(f.session.Transcript())
			lines := f.submit(t, tt.line)
			require.Len(t, lines, before+2, "exactly one echo and one output line")
			assert.Equal(t, tt.want, lastOutput(t, lines))
		})
	}
}

func TestSubmit_InvalidBinaryLeavesNoPartialOutput(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	lines := f.submit(t, "decode_binary 0100011 1")
	for _, l := range lines {
		assert.NotContains(t, l.Full, "G")
	}
}

func TestSubmit_BlankLineIgnored(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	before := f.session.Transcript()
	require.NoError(t, f.session.Submit("   "))
	assert.Equal(t, before, f.session.Transcript())
	assert.False(t, f.session.Busy())
}

func TestSubmit_ClearIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	f.submit(t, "help")
	require.NoError(t, f.session.Submit("clear"))
	assert.Empty(t, f.session.Transcript())
	require.NoError(t, f.session.Submit("clear"))
	assert.Empty(t, f.session.Transcript())
	assert.Equal(t, StateReady, f.session.State())
}

func TestSubmit_CdHeroNavigatesAfterReveal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	require.NoError(t, f.session.Submit("cd hero"))
	h := f.session.Active()
	require.NotNil(t, h)

	for !f.session.Step(h) {
		require.Empty(t, f.nav.views, "navigated before reveal finished")
	}
	assert.Equal(t, []string{ViewHero}, f.nav.views)
	assert.Equal(t, "Navigating to hero...", lastOutput(t, f.session.Transcript()))
}

func TestSubmit_CdHeroCancelledNeverNavigates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	require.NoError(t, f.session.Submit("cd hero"))
	h := f.session.Active()
	f.session.Step(h)
	f.session.PowerToggle()
	for i := 0; i < 100; i++ {
		f.session.Step(h)
	}
	assert.Empty(t, f.nav.views)
}

func TestSubmit_QueuedWhileRevealing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	require.NoError(t, f.session.Submit("about"))
	require.NoError(t, f.session.Submit("foo"))
	require.NoError(t, f.session.Submit("decode_binary 01000111"))
	assert.True(t, f.session.Busy())

	lines := f.session.Transcript()
	require.Len(t, lines, 7, "queued commands are echoed at once")
	assert.Equal(t, Line{Role: RoleInput, Full: "foo", Visible: "foo"}, lines[3])
	assert.Equal(t, "decode_binary 01000111", lines[5].Visible)
	assert.Empty(t, lines[4].Visible, "queued output waits for the active reveal")
	assert.Empty(t, lines[6].Visible)

	f.session.Settle()
	assert.False(t, f.session.Busy())
	lines = f.session.Transcript()
	got := make([]string, 0, len(lines))
	for _, l := range lines[1:] {
		require.True(t, l.Complete())
		got = append(got, string(l.Role)+":"+l.Full)
	}
	assert.Equal(t, []string{
		"input:about",
		"output:" + AboutText,
		"input:foo",
		"output:Command not found: foo",
		"input:decode_binary 01000111",
		"output:G",
	}, got)
}

func TestSubmit_QueuedOutputRevealsInOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	require.NoError(t, f.session.Submit("decode_binary 01001111 01001011"))
	first := f.session.Active()
	require.NoError(t, f.session.Submit("decode_binary 01000111"))

	assert.False(t, f.session.Step(first))
	lines := f.session.Transcript()
	assert.Equal(t, "O", lines[2].Visible)
	assert.Equal(t, "decode_binary 01000111", lines[3].Visible)
	assert.Empty(t, lines[4].Visible)

	assert.True(t, f.session.Step(first))
	second := f.session.Active()
	require.NotNil(t, second)
	assert.True(t, f.session.Step(second))
	lines = f.session.Transcript()
	assert.Equal(t, "OK", lines[2].Visible)
	assert.Equal(t, "G", lines[4].Visible)
	assert.False(t, f.session.Busy())
}

func TestSubmit_ClearDuringRevealDropsQueue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ready(t)
	require.NoError(t, f.session.Submit("help"))
	h := f.session.Active()
	f.session.Step(h)
	require.NoError(t, f.session.Submit("about"))

	require.NoError(t, f.session.Submit("clear"))
	assert.True(t, h.Cancelled())
	assert.Nil(t, f.session.Active())
	assert.False(t, f.session.Busy())
	assert.Empty(t, f.session.Transcript())

	assert.True(t, f.session.Step(h))
	assert.Empty(t, f.session.Transcript(), "cancelled reveal must not write")
}
