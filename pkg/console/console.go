// Package console prints labeled, aligned status lines for command line tools.
//
// Every line starts with an optional program label and a level label, both
// written in style markup:
//
//	[CONVOY] [WARNING]  Disk is <bold>almost</bold> full
//	[CONVOY] [LOG]      Copied <underline>/etc/hosts</underline>
//
// Message text is aligned across levels regardless of label length. With
// NoColor set the markup is stripped instead of rendered, so the same calls
// work on plain pipes.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/ismawno/convoy/pkg/logging"
	"github.com/ismawno/convoy/pkg/style"
)

// Level identifies the label a line is printed with
type Level int

const (
	LevelVerbose Level = iota
	LevelLog
	LevelWarning
	LevelError
	LevelFailure
	LevelSuccess
	LevelPrompt
)

type levelInfo struct {
	name  string
	color string
}

var levels = []levelInfo{
	LevelVerbose: {"VERBOSE", "fmagenta"},
	LevelLog:     {"LOG", "fgreen"},
	LevelWarning: {"WARNING", "fyellow"},
	LevelError:   {"ERROR", "fred"},
	LevelFailure: {"FAILURE", "fred"},
	LevelSuccess: {"SUCCESS", "fgreen"},
	LevelPrompt:  {"PROMPT", "fcyan"},
}

// String returns the level name in lower case
func (l Level) String() string {
	if l < 0 || int(l) >= len(levels) {
		return "unknown"
	}
	return strings.ToLower(levels[l].name)
}

// ParseLevel parses a level name such as "warning"
func ParseLevel(s string) (Level, error) {
	for i, info := range levels {
		if strings.EqualFold(s, info.name) {
			return Level(i), nil
		}
	}
	return LevelLog, fmt.Errorf("unknown level: %s", s)
}

// DefaultProgramLabel is the program name printed before every level label
const DefaultProgramLabel = "CONVOY"

// Options configures a Console
type Options struct {
	// Out receives every level except error. Defaults to os.Stdout.
	Out io.Writer
	// Err receives error lines. Defaults to os.Stderr.
	Err io.Writer
	// NoColor strips markup instead of rendering escape codes.
	NoColor bool
	// Verbose enables LevelVerbose lines.
	Verbose bool
	// ProgramLabel overrides DefaultProgramLabel; see SetProgramLabel.
	ProgramLabel *string
}

// Console writes labeled lines. It is safe for concurrent use.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	noColor bool
	verbose bool
	indent  int
	program string
	labels  []string
	// extra padding per level so messages line up
	pads   []int
	start  time.Time
	logger zerolog.Logger
}

// New creates a Console
func New(opts Options) *Console {
	c := &Console{
		out:     opts.Out,
		errOut:  opts.Err,
		noColor: opts.NoColor,
		verbose: opts.Verbose,
		indent:  1,
		start:   time.Now(),
		logger:  logging.GetLogger("console"),
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.errOut == nil {
		c.errOut = os.Stderr
	}

	c.labels = make([]string, len(levels))
	c.pads = make([]int, len(levels))
	widest := 0
	for i, info := range levels {
		c.labels[i] = createLabel(info.name, info.color)
		if w := labelWidth(c.labels[i]); w > widest {
			widest = w
		}
	}
	for i := range levels {
		c.pads[i] = widest - labelWidth(c.labels[i])
	}

	program := DefaultProgramLabel
	if opts.ProgramLabel != nil {
		program = *opts.ProgramLabel
	}
	c.SetProgramLabel(program)
	return c
}

func createLabel(name, color string) string {
	return fmt.Sprintf("<%s>[%s]</%s> ", color, name, color)
}

// labelWidth is the number of terminal cells a label occupies once rendered
func labelWidth(label string) int {
	return runewidth.StringWidth(style.Strip(label))
}

// SetProgramLabel replaces the program label; an empty name removes it.
func (c *Console) SetProgramLabel(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == "" {
		c.program = ""
		return
	}
	c.program = createLabel(name, "fblue")
}

// SetVerbose toggles LevelVerbose output
func (c *Console) SetVerbose(verbose bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbose = verbose
}

// PushIndent moves subsequent messages one column to the right
func (c *Console) PushIndent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indent++
}

// PopIndent undoes PushIndent. The indent never drops below its initial value.
func (c *Console) PopIndent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indent > 1 {
		c.indent--
	}
}

// Format builds the final line for msg without printing it
func (c *Console) Format(level Level, msg string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format(level, msg)
}

func (c *Console) format(level Level, msg string) string {
	prefix := c.program + c.labels[level]
	line := prefix + strings.Repeat(" ", c.indent+c.pads[level]) + msg
	return style.Render(line, c.noColor)
}

// Print writes msg at the given level; args are applied with fmt.Sprintf
func (c *Console) Print(level Level, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if level == LevelVerbose && !c.verbose {
		return
	}

	w := c.out
	if level == LevelError || level == LevelFailure {
		w = c.errOut
	}

	c.logger.Debug().
		Str("level", level.String()).
		Str("message", style.Strip(msg)).
		Msg("Console line")

	if _, err := fmt.Fprintln(w, c.format(level, msg)); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to write console line")
	}
}

// Verbose prints msg only when verbose output is enabled
func (c *Console) Verbose(msg string, args ...interface{}) {
	c.Print(LevelVerbose, msg, args...)
}

// Log prints an informational line
func (c *Console) Log(msg string, args ...interface{}) {
	c.Print(LevelLog, msg, args...)
}

// Warning prints a warning line
func (c *Console) Warning(msg string, args ...interface{}) {
	c.Print(LevelWarning, msg, args...)
}

// Error prints an error line to the error writer
func (c *Console) Error(msg string, args ...interface{}) {
	c.Print(LevelError, msg, args...)
}

// Finish prints msg (if any) and the elapsed time, then returns the exit code
// the program should terminate with: 0 when ok, 1 otherwise.
func (c *Console) Finish(ok bool, msg string) int {
	level, code := LevelSuccess, 0
	if !ok {
		level, code = LevelFailure, 1
		if msg != "" {
			c.Error(msg)
		}
	} else if msg != "" {
		c.Print(level, msg)
	}

	elapsed := time.Since(c.start)
	c.Print(level, "Finished in <bold>%.2f</bold> seconds.", elapsed.Seconds())
	return code
}
