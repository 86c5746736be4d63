package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtstudio/gmt-terminal/internal/codec"
)

func TestDecodeCommand(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		args []string
		want string
		err  string
	}{
		{name: "binary", args: []string{"binary", "01000111", "01001101", "01010100"}, want: "GMT\n"},
		{name: "vigenere", args: []string{"vigenere", "OZGUHTZUHT", "GMT"}, want: "INNOVATION\n"},
		{name: "bad octet", args: []string{"binary", "0100"}, err: "invalid binary format"},
		{name: "vigenere arity", args: []string{"vigenere", "ABC"}, err: "usage: decode vigenere"},
		{name: "unknown", args: []string{"rot13", "x"}, err: "unknown decoder: rot13"},
		{name: "no args", err: "usage: decode"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, stdout, _ := testStreams()
			err := NewDecodeCommand().Execute(context.Background(), tc.args, s)
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, stdout.String())
		})
	}
}

func TestEncodeCommand(t *testing.T) {
	t.Parallel()
	s, stdout, _ := testStreams()
	require.NoError(t, NewEncodeCommand().Execute(context.Background(), []string{"binary", "GMT"}, s))
	assert.Equal(t, "01000111 01001101 01010100\n", stdout.String())

	s, stdout, _ = testStreams()
	require.NoError(t, NewEncodeCommand().Execute(context.Background(), []string{"vigenere", "innovation", "gmt"}, s))
	assert.Equal(t, "OZGUHTZUHT\n", stdout.String())

	s, _, _ = testStreams()
	err := NewEncodeCommand().Execute(context.Background(), []string{"binary", "日本"}, s)
	assert.ErrorIs(t, err, codec.ErrInvalidBinary)

	assert.ErrorContains(t, NewEncodeCommand().Execute(context.Background(), []string{"binary"}, s), "usage: encode binary")
}
