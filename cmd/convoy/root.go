package convoy

import (
	"embed"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ismawno/convoy/internal/version"
	"github.com/ismawno/convoy/pkg/cobrax/topics"
	"github.com/ismawno/convoy/pkg/config"
	"github.com/ismawno/convoy/pkg/errors"
	"github.com/ismawno/convoy/pkg/logging"
	"github.com/ismawno/convoy/pkg/ui"
)

//go:embed topics
var topicsFS embed.FS

// app holds the state shared by every command of one invocation
type app struct {
	verbosity  int
	colorFlag  string
	configFile string

	cfg   *config.Config
	color bool
}

// topicRenderer defers the glamour/plain choice until a topic is shown, after
// the color flags have been resolved.
type topicRenderer struct{ app *app }

func (r topicRenderer) Render(content, format string) string {
	return topics.RendererFor(r.app.color).Render(content, format)
}

// setup runs before every command: logging, configuration, color resolution
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.verbosity, !ui.DetectColor(os.Stderr))
	log.Debug().Str("command", cmd.Name()).Msg("Command started")

	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile})
	if err != nil {
		return err
	}
	a.cfg = cfg

	mode, err := cfg.ColorMode()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("color") {
		mode, err = ui.ParseColorMode(a.colorFlag)
		if err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, MsgErrColorFlag)
		}
	}
	a.color = ui.UseColor(mode, cmd.OutOrStdout())

	log.Debug().
		Str("color_mode", mode.String()).
		Bool("color", a.color).
		Msg("Output configured")
	return nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{color: stdoutIsTerminal()}

	rootCmd := &cobra.Command{
		Use:     "convoy",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.colorFlag, "color", "auto", MsgFlagColor)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSplitCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newStripCmd())
	rootCmd.AddCommand(newStylesCmd(a))
	rootCmd.AddCommand(newCaseCmd())
	rootCmd.AddCommand(newLogCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topicRenderer{app: a},
	}
	if _, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}
