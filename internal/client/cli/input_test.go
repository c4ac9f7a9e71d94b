package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func stubTerminal(t *testing.T, tty bool, pw []byte, err error) {
	t.Helper()
	origTTY, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal = origTTY
		readPassword = origRead
	})
}

func TestGetPassword(t *testing.T) {
	t.Run("terminal", func(t *testing.T) {
		stubTerminal(t, true, []byte("s3cret"), nil)
		var out bytes.Buffer
		got, err := GetPassword(rdr("ignored\n"), "Password", &out)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", got)
		assert.Equal(t, "Password: \n", out.String())
	})

	t.Run("terminal error", func(t *testing.T) {
		stubTerminal(t, true, nil, errors.New("boom"))
		var out bytes.Buffer
		_, err := GetPassword(rdr(""), "Password", &out)
		assert.Error(t, err)
	})

	t.Run("piped", func(t *testing.T) {
		stubTerminal(t, false, nil, errors.New("must not be called"))
		var out bytes.Buffer
		got, err := GetPassword(rdr("piped-pw\n"), "Password", &out)
		require.NoError(t, err)
		assert.Equal(t, "piped-pw", got)
	})
}

func TestGetKeyValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Unix newlines, stop on empty line",
			input:    "bio=Carpenter\nlocation=Riga\n\nignored=1\n",
			expected: []string{"bio=Carpenter", "location=Riga"},
		},
		{
			name:     "Windows CRLF, stop on empty line",
			input:    "a=1\r\nb=2\r\n\r\n",
			expected: []string{"a=1", "b=2"},
		},
		{
			name:     "Immediate blank line gives empty slice",
			input:    "\n",
			expected: []string{},
		},
		{
			name:     "EOF without trailing blank line",
			input:    "a=1\nb=2",
			expected: []string{"a=1", "b=2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetKeyValues(rdr(tc.input), "Fields to change", &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
