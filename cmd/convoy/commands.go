package convoy

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/ismawno/convoy/internal/version"
	"github.com/ismawno/convoy/pkg/config"
	"github.com/ismawno/convoy/pkg/console"
	"github.com/ismawno/convoy/pkg/errors"
	"github.com/ismawno/convoy/pkg/logging"
	"github.com/ismawno/convoy/pkg/split"
	"github.com/ismawno/convoy/pkg/style"
	"github.com/ismawno/convoy/pkg/textcase"
	"github.com/ismawno/convoy/pkg/ui"
)

func newSplitCmd(a *app) *cobra.Command {
	var (
		delim     string
		openers   []string
		closers   []string
		maxSplits int
		format    string
	)

	cmd := &cobra.Command{
		Use:     "split [records...]",
		Short:   MsgSplitShort,
		Long:    MsgSplitLong,
		Example: MsgSplitExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.split")
			defer logging.LogOperationStart(logger, "split")()

			// unset flags fall back to the configuration
			settings := a.cfg.Split
			if cmd.Flags().Changed("delim") {
				settings.Delimiter = delim
			}
			if cmd.Flags().Changed("opener") || cmd.Flags().Changed("closer") {
				settings.Openers = openers
				settings.Closers = closers
			}
			if cmd.Flags().Changed("max") {
				settings.MaxSplits = maxSplits
			}

			splitter, err := split.New(settings.Delimiter, settings.Openers, settings.Closers)
			if err != nil {
				return err
			}

			f, err := ui.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, MsgErrFormatFlag)
			}
			w, err := ui.NewSegmentWriter(cmd.OutOrStdout(), f)
			if err != nil {
				return err
			}

			records, err := readRecords(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			logger.Info().
				Str("delimiter", settings.Delimiter).
				Int("pairs", len(splitter.Pairs())).
				Int("max_splits", settings.MaxSplits).
				Int("records", len(records)).
				Msg("Splitting records")

			results, err := mapRecords(cmd.Context(), records, func(record string) ([]string, error) {
				return splitter.SplitN(record, settings.MaxSplits), nil
			})
			if err != nil {
				return err
			}

			for _, segments := range results {
				if err := w.Write(segments); err != nil {
					return err
				}
			}
			return w.Close()
		},
	}

	cmd.Flags().StringVarP(&delim, "delim", "d", ",", MsgFlagDelim)
	cmd.Flags().StringArrayVarP(&openers, "opener", "o", nil, MsgFlagOpener)
	cmd.Flags().StringArrayVarP(&closers, "closer", "c", nil, MsgFlagCloser)
	cmd.Flags().IntVarP(&maxSplits, "max", "n", -1, MsgFlagMax)
	cmd.Flags().StringVarP(&format, "format", "f", "lines", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"lines", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// renderRecords prints every record through render, one per line
func renderRecords(cmd *cobra.Command, args []string, render func(string) string) error {
	records, err := readRecords(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	results, err := mapRecords(cmd.Context(), records, func(record string) (string, error) {
		return render(record), nil
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range results {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return errors.Wrap(err, errors.ErrOutputWrite, "failed to write output")
		}
	}
	return nil
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "render [text...]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			void := !a.color
			return renderRecords(cmd, args, func(s string) string {
				return style.Render(s, void)
			})
		},
	}
}

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "strip [text...]",
		Short:   MsgStripShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRecords(cmd, args, style.Strip)
		},
	}
}

func newStylesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "styles",
		Short:   MsgStylesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := style.Identifiers()

			nameWidth := lipgloss.Width(MsgStylesHeader)
			identWidth := lipgloss.Width(MsgStylesIdent)
			for _, id := range ids {
				nameWidth = max(nameWidth, lipgloss.Width(style.TagName(id)))
				identWidth = max(identWidth, lipgloss.Width(string(id)))
			}
			nameCol := lipgloss.NewStyle().Width(nameWidth + 2)
			identCol := lipgloss.NewStyle().Width(identWidth + 2)

			out := cmd.OutOrStdout()
			header := nameCol.Render(MsgStylesHeader) + identCol.Render(MsgStylesIdent) + MsgStylesSample
			if _, err := fmt.Fprintln(out, formatBold(header)); err != nil {
				return errors.Wrap(err, errors.ErrOutputWrite, "failed to write styles")
			}

			for _, id := range ids {
				name := style.TagName(id)
				sample := style.Render(fmt.Sprintf("<%s>%s</%s>", name, MsgSampleText, name), !a.color)
				line := nameCol.Render(name) + identCol.Render(string(id)) + sample
				if _, err := fmt.Fprintln(out, line); err != nil {
					return errors.Wrap(err, errors.ErrOutputWrite, "failed to write styles")
				}
			}
			return nil
		},
	}
}

var caseFuncs = map[string]func(string) string{
	"snake":  textcase.Snake,
	"kebab":  textcase.Kebab,
	"camel":  textcase.Camel,
	"pascal": textcase.Pascal,
}

func newCaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "case <snake|kebab|camel|pascal> [text...]",
		Short:     MsgCaseShort,
		GroupID:   "core",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"snake", "kebab", "camel", "pascal"},
		RunE: func(cmd *cobra.Command, args []string) error {
			convert, ok := caseFuncs[strings.ToLower(args[0])]
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, MsgErrCaseName, args[0]).
					WithDetail("case", args[0])
			}
			return renderRecords(cmd, args[1:], convert)
		},
	}
}

func newLogCmd(a *app) *cobra.Command {
	var (
		level  string
		indent int
	)

	cmd := &cobra.Command{
		Use:     "log <message...>",
		Short:   MsgLogShort,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := console.ParseLevel(level)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, MsgErrLevelFlag)
			}

			label := a.cfg.Output.ProgramLabel
			c := console.New(console.Options{
				Out:          cmd.OutOrStdout(),
				Err:          cmd.ErrOrStderr(),
				NoColor:      !a.color,
				Verbose:      a.cfg.Output.Verbose || a.verbosity > 0,
				ProgramLabel: &label,
			})
			for i := 0; i < indent; i++ {
				c.PushIndent()
			}

			// the message is printed as is, never used as a format string
			c.Print(l, "%s", strings.Join(args, " "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "log", MsgFlagLevel)
	cmd.Flags().IntVar(&indent, "indent", 0, MsgFlagIndent)
	_ = cmd.RegisterFlagCompletionFunc("level", cobra.FixedCompletions(
		[]string{"verbose", "log", "warning", "error", "failure", "success", "prompt"},
		cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var path bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if path {
				_, err := fmt.Fprintln(out, config.UserConfigPath())
				return err
			}

			data, err := a.cfg.Dump()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&path, "path", false, MsgFlagPath)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintf(out, "convoy version %s\n  commit: %s\n  built:  %s\n",
				info.Version, info.Commit, info.Date)
			return err
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.RunE != nil {
				return helpCmd.RunE(helpCmd, []string{"topics"})
			}
			return errors.New(errors.ErrInternal, "help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return genCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func genCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown shell: %s", shell)
}

func newManCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   title,
				Section: "1",
				Source:  "convoy " + version.Version,
				Manual:  "convoy manual",
			}
			if err := doc.GenMan(cmd.Root(), header, cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate man page")
				return errors.Wrap(err, errors.ErrOutputWrite, "failed to generate man page")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "CONVOY", MsgFlagManTitle)
	return cmd
}
