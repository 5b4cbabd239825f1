// Package cli provides the command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/treepick/internal/utils"
)

const (
	rootUse              = "treepick"
	rootShortDescription = "treepick exports selected project files as one document"
	rootLongDescription  = `treepick materializes a selection of files and directories into a single
formatted document and delivers it to the clipboard or a file.
Use --format to choose markdown or plaintext, --sink to choose the destination.`

	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "treepick version: %s\n"

	configFlagName        = "config"
	configFlagDescription = "path to a configuration file"

	exportUse              = "export [paths...]"
	exportAlias            = "x"
	exportShortDescription = "export selected paths as one document (" + exportAlias + ")"
	exportLongDescription  = `Export the given files and directories as one formatted document.
Directories are expanded into the files they contain. Binary files and
paths matching the exclude patterns are dropped.`
	exportUsageExample = `  # Copy the src tree and the readme to the clipboard as Markdown
  treepick export src README.md

  # Write a plain text export to a file
  treepick export --format plaintext --sink file --out export.txt src`

	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "display the file structure of a path (" + treeAlias + ")"

	initUse              = "init"
	initShortDescription = "write a default configuration file"

	formatFlagName            = "format"
	formatFlagDescription     = "output format: markdown or plaintext"
	sinkFlagName              = "sink"
	sinkFlagDescription       = "destination: clipboard or file"
	outFlagName               = "out"
	outFlagDescription        = "destination path for the file sink"
	structureFlagName         = "structure"
	structureFlagDescription  = "include a structure block in the export"
	maxFileBytesFlagName      = "max-file-bytes"
	maxFileBytesDescription   = "maximum bytes per exported file before truncation"
	truncateThresholdFlagName = "truncate-threshold"
	truncateThresholdUsage    = "byte threshold used by truncation bookkeeping"
	excludeFlagName           = "exclude"
	excludeFlagShorthand      = "e"
	excludeFlagDescription    = "glob pattern to exclude (repeatable)"
	includeFlagName           = "include"
	includeFlagDescription    = "glob pattern to include (repeatable; empty means everything)"
	tokensFlagName            = "tokens"
	tokensFlagDescription     = "include an estimated token count in the summary"
	modelFlagName             = "model"
	modelFlagDescription      = "tokenizer model to use for token counting"
	globalFlagName            = "global"
	globalFlagDescription     = "write the configuration to the home directory"
	forceFlagName             = "force"
	forceFlagDescription      = "overwrite an existing configuration file"

	defaultFormatValue      = "markdown"
	defaultSinkValue        = "clipboard"
	defaultMaxFileBytes     = 100 * 1024
	defaultTokenizerModel   = "gpt-4o"
	defaultOutFileName      = "export.md"
	defaultPlainOutFileName = "export.txt"
)

// Execute builds the command tree and runs it.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand constructs the treepick root command.
func NewRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return command.Help()
		},
	}
	rootCommand.PersistentFlags().String(configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(newExportCommand())
	rootCommand.AddCommand(newTreeCommand())
	rootCommand.AddCommand(newInitCommand())
	return rootCommand
}
