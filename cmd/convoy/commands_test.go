package convoy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ismawno/convoy/pkg/errors"
	"github.com/ismawno/convoy/pkg/style"
)

// isolate keeps config lookups and the log file inside the test's temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer

	rootCmd := NewRootCmd()
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestSplitCmd(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "config defaults",
			args: []string{"split", `f(a,b),"c,d",e`},
			want: "f(a,b)\n\"c,d\"\ne\n",
		},
		{
			name: "custom pairs",
			args: []string{"split", "-d", ";", "-o", "[", "-c", "]", "a;[b;c];d"},
			want: "a\n[b;c]\nd\n",
		},
		{
			name: "max splits",
			args: []string{"split", "--max", "1", "a,b,c"},
			want: "a\nb,c\n",
		},
		{
			name: "several records",
			args: []string{"split", "a,b", "c"},
			want: "a\nb\n\nc\n",
		},
		{
			name:  "stdin lines",
			stdin: "x,(y,z)\n1,2\n",
			args:  []string{"split"},
			want:  "x\n(y,z)\n\n1\n2\n",
		},
		{
			name: "empty segments",
			args: []string{"split", "a,,b,"},
			want: "a\n\nb\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.stdin, tt.args...)
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestSplitCmdPreservesOrder(t *testing.T) {
	isolate(t)

	var in strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&in, "%d,(%d,x)\n", i, i)
	}

	r := run(t, in.String(), "split", "--format", "json")
	require.NoError(t, r.err)

	lines := strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
	require.Len(t, lines, 500)
	for i, line := range lines {
		var got []string
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, []string{fmt.Sprint(i), fmt.Sprintf("(%d,x)", i)}, got)
	}
}

func TestSplitCmdYAML(t *testing.T) {
	isolate(t)

	r := run(t, "", "split", "--format", "yaml", "a,(b;c)", "d")
	require.NoError(t, r.err)

	dec := yaml.NewDecoder(strings.NewReader(r.stdout))
	var docs [][]string
	for {
		var doc []string
		if err := dec.Decode(&doc); err != nil {
			break
		}
		docs = append(docs, doc)
	}
	assert.Equal(t, [][]string{{"a", "(b;c)"}, {"d"}}, docs)
}

func TestSplitCmdErrors(t *testing.T) {
	isolate(t)

	r := run(t, "", "split", "-o", "(", "-o", "[", "-c", ")", "a")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrPairMismatch), "got %v", r.err)

	r = run(t, "", "split", "-d", "", "a")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrDelimEmpty), "got %v", r.err)

	r = run(t, "", "split", "--format", "xml", "a")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrInvalidInput), "got %v", r.err)
}

func TestSplitCmdUsesConfigFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[split]\ndelimiter = \"|\"\nmax_splits = 1\n"), 0644))

	r := run(t, "", "--config", path, "split", "a|b|c")
	require.NoError(t, r.err)
	assert.Equal(t, "a\nb|c\n", r.stdout)
}

func TestRenderCmd(t *testing.T) {
	isolate(t)

	t.Run("void when output is not a terminal", func(t *testing.T) {
		r := run(t, "", "render", "<bold>hi</bold> <b>")
		require.NoError(t, r.err)
		assert.Equal(t, "hi <b>\n", r.stdout)
	})

	t.Run("forced color", func(t *testing.T) {
		r := run(t, "", "--color", "always", "render", "<bold>hi</bold>")
		require.NoError(t, r.err)
		assert.Equal(t, style.Bold+"hi"+style.Reset+style.Reset+"\n", r.stdout)
	})

	t.Run("color from config", func(t *testing.T) {
		t.Setenv("CONVOY_OUTPUT_COLOR", "always")
		r := run(t, "<fred>x</fred>\n", "render")
		require.NoError(t, r.err)
		assert.Equal(t, style.Expand("<fred>x</fred>")+"\n", r.stdout)
	})

	t.Run("bad color flag", func(t *testing.T) {
		r := run(t, "", "--color", "rainbow", "render", "x")
		assert.True(t, errors.IsErrorCode(r.err, errors.ErrInvalidInput), "got %v", r.err)
	})
}

func TestStripCmd(t *testing.T) {
	isolate(t)

	r := run(t, "", "--color", "always", "strip", "<fgreen>ok</fgreen>", "a < b")
	require.NoError(t, r.err)
	assert.Equal(t, "ok\na < b\n", r.stdout)
}

func TestStylesCmd(t *testing.T) {
	isolate(t)

	r := run(t, "", "styles")
	require.NoError(t, r.err)

	lines := strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
	require.Len(t, lines, 1+len(style.Names()))
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))

	// columns line up
	sampleAt := strings.Index(lines[0], "SAMPLE")
	for _, line := range lines[1:] {
		assert.Equal(t, MsgSampleText, line[sampleAt:], line)
	}
	assert.True(t, strings.HasPrefix(lines[1], "reset "))
	assert.Contains(t, r.stdout, "fbred")
	assert.Contains(t, r.stdout, "BG_BRIGHT_WHITE")
}

func TestCaseCmd(t *testing.T) {
	isolate(t)

	r := run(t, "", "case", "snake", "fooBar", "window-demo")
	require.NoError(t, r.err)
	assert.Equal(t, "foo_bar\nwindow_demo\n", r.stdout)

	r = run(t, "foo_bar\n", "case", "pascal")
	require.NoError(t, r.err)
	assert.Equal(t, "FooBar\n", r.stdout)

	r = run(t, "", "case", "title", "x")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrInvalidInput), "got %v", r.err)
}

func TestLogCmd(t *testing.T) {
	isolate(t)

	r := run(t, "", "log", "--level", "warning", "disk", "50%", "full")
	require.NoError(t, r.err)
	assert.Equal(t, "[CONVOY] [WARNING]  disk 50% full\n", r.stdout)

	r = run(t, "", "log", "--level", "error", "<bold>broken</bold>")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
	assert.Equal(t, "[CONVOY] [ERROR]    broken\n", r.stderr)

	r = run(t, "", "log", "--level", "verbose", "quiet")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)

	t.Setenv("CONVOY_OUTPUT_PROGRAM_LABEL", "ONYX")
	r = run(t, "", "log", "--indent", "2", "x")
	require.NoError(t, r.err)
	assert.Equal(t, "[ONYX] [LOG]        x\n", r.stdout)

	r = run(t, "", "log", "--level", "shout", "x")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrInvalidInput), "got %v", r.err)
}

func TestConfigCmd(t *testing.T) {
	dir := isolate(t)

	r := run(t, "", "config")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "[split]")
	assert.Contains(t, r.stdout, "program_label = 'CONVOY'")

	r = run(t, "", "config", "--path")
	require.NoError(t, r.err)
	assert.Equal(t, filepath.Join(dir, "config", "convoy", "convoy.toml")+"\n", r.stdout)

	r = run(t, "", "--config", filepath.Join(dir, "missing.toml"), "config")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrConfigLoad), "got %v", r.err)
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	r := run(t, "", "version")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "convoy version dev")
	assert.Contains(t, r.stdout, "commit: unknown")
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	r := run(t, "", "help", "topics")
	require.NoError(t, r.err)
	for _, name := range []string{"configuration", "markup", "splitting"} {
		assert.Contains(t, r.stdout, "  "+name+"\n")
	}
	assert.Contains(t, r.stdout, "--max")
	assert.Contains(t, r.stdout, "--color")

	r = run(t, "", "topics")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Available help topics:")

	// plain rendering since the output is not a terminal
	r = run(t, "", "help", "max")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "--max N"))

	r = run(t, "", "help", "markup")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "# Style markup"))
}

func TestCompletionAndMan(t *testing.T) {
	isolate(t)

	r := run(t, "", "completion", "bash")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "convoy")

	r = run(t, "", "completion", "tcsh")
	assert.Error(t, r.err)

	r = run(t, "", "man")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, ".TH")
	assert.Contains(t, r.stdout, "CONVOY")
	assert.Contains(t, r.stdout, "split")
}

func TestRootWithoutCommand(t *testing.T) {
	isolate(t)

	r := run(t, "")
	assert.True(t, errors.IsErrorCode(r.err, errors.ErrInvalidInput), "got %v", r.err)
	assert.Contains(t, r.stdout, "COMMANDS:")
	assert.Contains(t, r.stdout, "MISC:")
}

func TestMapRecordsStopsOnError(t *testing.T) {
	records := []string{"a", "b", "boom", "c"}
	_, err := mapRecords(context.Background(), records, func(s string) (int, error) {
		if s == "boom" {
			return 0, errors.New(errors.ErrInvalidInput, "boom")
		}
		return len(s), nil
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err := mapRecords(context.Background(), []string{"a", "bb", "ccc"}, func(s string) (int, error) {
		return len(s), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}
