package convoy

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Split nested text and render inline style markup"
	MsgSplitShort      = "Split records on a delimiter outside of groups"
	MsgRenderShort     = "Render style tags as terminal escape codes"
	MsgStripShort      = "Remove style tags, keeping the text"
	MsgStylesShort     = "List the available style names"
	MsgCaseShort       = "Convert identifiers between snake, kebab, camel and pascal case"
	MsgLogShort        = "Print a labeled status line"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagColor    = "Render style markup: auto, always or never"
	MsgFlagConfig   = "Config file loaded on top of the user configuration"
	MsgFlagDelim    = "Delimiter to split on"
	MsgFlagOpener   = "Group opener, repeat for several (pairs with --closer)"
	MsgFlagCloser   = "Group closer, repeat for several (pairs with --opener)"
	MsgFlagMax      = "Maximum number of splits, negative for no limit"
	MsgFlagFormat   = "Output format: lines, json or yaml"
	MsgFlagLevel    = "Label: verbose, log, warning, error, failure, success or prompt"
	MsgFlagIndent   = "Extra indentation of the message"
	MsgFlagPath     = "Print the user config file location instead"
	MsgFlagManTitle = "Title of the man page"

	// Output
	MsgStylesHeader = "NAME"
	MsgStylesIdent  = "IDENTIFIER"
	MsgStylesSample = "SAMPLE"
	MsgSampleText   = "The quick brown fox"

	// Error messages
	MsgErrReadInput  = "failed to read input"
	MsgErrColorFlag  = "invalid --color value"
	MsgErrFormatFlag = "invalid --format value"
	MsgErrLevelFlag  = "invalid --level value"
	MsgErrCaseName   = "unknown case %q, expected snake, kebab, camel or pascal"
	MsgErrNoCommand  = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/split-long.txt
	msgSplitLongRaw string
	MsgSplitLong    = strings.TrimSpace(msgSplitLongRaw)

	//go:embed msgs/split-example.txt
	msgSplitExampleRaw string
	MsgSplitExample    = strings.TrimRight(msgSplitExampleRaw, "\n")

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
