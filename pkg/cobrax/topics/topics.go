// Package topics provides a topic-based help system for Cobra CLI applications.
// It extends the default Cobra help command with arbitrary help topics read
// from an fs.FS, usually an embedded directory of markdown and text files.
package topics

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ismawno/convoy/pkg/errors"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	fsys         fs.FS
	root         string
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Format is the file extension of the topic, used to pick a rendering
func (t *Topic) Format() string {
	return path.Ext(t.Path)
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics
	// Defaults to [".txt", ".md"] if not specified
	Extensions []string

	// Renderer for formatting topic content (optional)
	// Defaults to PlainRenderer if not specified
	Renderer Renderer
}

// New creates a new TopicManager reading topics below root in fsys
func New(fsys fs.FS, root string) *TopicManager {
	return NewWithOptions(fsys, root, Options{})
}

// NewWithOptions creates a new TopicManager with custom options
func NewWithOptions(fsys fs.FS, root string, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		root:       root,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}
	if tm.root == "" {
		tm.root = "."
	}

	return tm
}

// Scan loads every topic file below the root. A missing root is not an
// error, there are simply no topics.
func (tm *TopicManager) Scan() error {
	if _, err := fs.Stat(tm.fsys, tm.root); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	return fs.WalkDir(tm.fsys, tm.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{
			Name:    name,
			Path:    p,
			Content: string(content),
		}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	// Handle flag-style topics (e.g., --max -> max)
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}

	// flag-style topics may live under an "option-" prefix
	topic, ok := tm.topics["option-"+name]
	return topic, ok
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show writes the rendered topic to w
func (tm *TopicManager) Show(w io.Writer, name string) error {
	topic, ok := tm.GetTopic(name)
	if !ok {
		return errors.Newf(errors.ErrTopicNotFound, "no help topic named %q", name).
			WithDetail("topic", name)
	}
	_, err := fmt.Fprint(w, tm.renderer.Render(topic.Content, topic.Format()))
	return err
}

// writeList prints the topics grouped into general and option topics
func (tm *TopicManager) writeList(w io.Writer, program string) {
	names := tm.ListTopics()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	_, _ = fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		_, _ = fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		_, _ = fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			_, _ = fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Initialize sets up the topic-based help system with default extensions
func Initialize(rootCmd *cobra.Command, fsys fs.FS, root string) (*TopicManager, error) {
	return InitializeWithOptions(rootCmd, fsys, root, Options{})
}

// InitializeWithOptions replaces the help command of rootCmd with one that
// also knows about topics, and returns the manager backing it.
func InitializeWithOptions(rootCmd *cobra.Command, fsys fs.FS, root string, opts Options) (*TopicManager, error) {
	tm := NewWithOptions(fsys, root, opts)
	if err := tm.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	tm.originalHelp = rootCmd.HelpFunc()
	program := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + program + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + program + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return nil
			}

			if args[0] == "topics" {
				tm.writeList(cmd.OutOrStdout(), program)
				return nil
			}

			if _, ok := tm.GetTopic(args[0]); ok {
				return tm.Show(cmd.OutOrStdout(), args[0])
			}

			// Not a topic: look for a command
			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				return errors.Newf(errors.ErrTopicNotFound, "unknown help topic %q", strings.Join(args, " ")).
					WithDetail("topic", args[0])
			}
			tm.originalHelp(target, nil)
			return nil
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)

	// --help with a topic argument
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if _, ok := tm.GetTopic(args[0]); ok {
				_ = tm.Show(cmd.OutOrStdout(), args[0])
				return
			}
		}
		tm.originalHelp(cmd, args)
	})

	return tm, nil
}
