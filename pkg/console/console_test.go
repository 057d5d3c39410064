package console_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismawno/convoy/pkg/console"
	"github.com/ismawno/convoy/pkg/style"
)

func newPlain(verbose bool) (*console.Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	c := console.New(console.Options{
		Out:     &out,
		Err:     &errOut,
		NoColor: true,
		Verbose: verbose,
	})
	return c, &out, &errOut
}

func TestFormatAlignsMessages(t *testing.T) {
	c, _, _ := newPlain(false)

	tests := []struct {
		level console.Level
		want  string
	}{
		{console.LevelLog, "[CONVOY] [LOG]      hello"},
		{console.LevelWarning, "[CONVOY] [WARNING]  hello"},
		{console.LevelVerbose, "[CONVOY] [VERBOSE]  hello"},
		{console.LevelError, "[CONVOY] [ERROR]    hello"},
		{console.LevelPrompt, "[CONVOY] [PROMPT]   hello"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, c.Format(tt.level, "hello"))
		})
	}
}

func TestFormatRendersMarkup(t *testing.T) {
	var out bytes.Buffer
	c := console.New(console.Options{Out: &out, Err: &out})

	got := c.Format(console.LevelLog, "<bold>x</bold>")
	fgreen, _ := style.Lookup("fgreen")
	fblue, _ := style.Lookup("fblue")

	assert.True(t, strings.HasPrefix(got, fblue+"[CONVOY]"))
	assert.Contains(t, got, fgreen+"[LOG]")
	assert.Contains(t, got, style.Bold+"x")
	assert.True(t, strings.HasSuffix(got, style.Reset))
}

func TestIndent(t *testing.T) {
	c, _, _ := newPlain(false)

	c.PushIndent()
	c.PushIndent()
	assert.Equal(t, "[CONVOY] [LOG]        x", c.Format(console.LevelLog, "x"))

	c.PopIndent()
	c.PopIndent()
	c.PopIndent()
	assert.Equal(t, "[CONVOY] [LOG]      x", c.Format(console.LevelLog, "x"))
}

func TestProgramLabel(t *testing.T) {
	c, _, _ := newPlain(false)

	c.SetProgramLabel("ONYX")
	assert.Equal(t, "[ONYX] [LOG]      x", c.Format(console.LevelLog, "x"))

	c.SetProgramLabel("")
	assert.Equal(t, "[LOG]      x", c.Format(console.LevelLog, "x"))

	empty := ""
	c2 := console.New(console.Options{NoColor: true, ProgramLabel: &empty})
	assert.Equal(t, "[WARNING]  x", c2.Format(console.LevelWarning, "x"))
}

func TestPrintRouting(t *testing.T) {
	c, out, errOut := newPlain(false)

	c.Log("copied %d files", 3)
	c.Warning("careful")
	c.Verbose("hidden")
	c.Error("<fred>broken</fred>")

	assert.Equal(t, "[CONVOY] [LOG]      copied 3 files\n[CONVOY] [WARNING]  careful\n", out.String())
	assert.Equal(t, "[CONVOY] [ERROR]    broken\n", errOut.String())
}

func TestVerbose(t *testing.T) {
	c, out, _ := newPlain(true)
	c.Verbose("shown")
	assert.Equal(t, "[CONVOY] [VERBOSE]  shown\n", out.String())

	out.Reset()
	c.SetVerbose(false)
	c.Verbose("hidden")
	assert.Empty(t, out.String())
}

func TestFinish(t *testing.T) {
	elapsed := regexp.MustCompile(`Finished in \d+\.\d\d seconds\.`)

	t.Run("success", func(t *testing.T) {
		c, out, _ := newPlain(false)
		code := c.Finish(true, "done")

		assert.Equal(t, 0, code)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "[CONVOY] [SUCCESS]  done", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "[CONVOY] [SUCCESS]  "))
		assert.Regexp(t, elapsed, lines[1])
	})

	t.Run("failure", func(t *testing.T) {
		c, out, errOut := newPlain(false)
		code := c.Finish(false, "declined")

		assert.Equal(t, 1, code)
		assert.Empty(t, out.String())
		lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "[CONVOY] [ERROR]    declined", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "[CONVOY] [FAILURE]  "))
		assert.Regexp(t, elapsed, lines[1])
	})
}

func TestParseLevel(t *testing.T) {
	l, err := console.ParseLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, console.LevelWarning, l)

	_, err = console.ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "unknown", console.Level(99).String())
}
