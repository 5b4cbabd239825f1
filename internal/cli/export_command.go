package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/treepick/internal/config"
	"github.com/temirov/treepick/internal/export"
	"github.com/temirov/treepick/internal/host"
	"github.com/temirov/treepick/internal/services/clipboard"
	"github.com/temirov/treepick/internal/sink"
	"github.com/temirov/treepick/internal/tokenizer"
)

// exportFlags carries the flag values of one export invocation.
type exportFlags struct {
	format            string
	sinkKind          string
	outPath           string
	structure         bool
	maxFileBytes      int
	truncateThreshold int
	excludePatterns   []string
	includePatterns   []string
	countTokens       bool
	tokenModel        string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	exportCommand := &cobra.Command{
		Use:     exportUse,
		Aliases: []string{exportAlias},
		Short:   exportShortDescription,
		Long:    exportLongDescription,
		Example: exportUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configPath, _ := command.Flags().GetString(configFlagName)
			return runExport(command, arguments, flags, configPath)
		},
	}

	exportCommand.Flags().StringVar(&flags.format, formatFlagName, "", formatFlagDescription)
	exportCommand.Flags().StringVar(&flags.sinkKind, sinkFlagName, "", sinkFlagDescription)
	exportCommand.Flags().StringVar(&flags.outPath, outFlagName, "", outFlagDescription)
	exportCommand.Flags().BoolVar(&flags.structure, structureFlagName, true, structureFlagDescription)
	exportCommand.Flags().IntVar(&flags.maxFileBytes, maxFileBytesFlagName, 0, maxFileBytesDescription)
	exportCommand.Flags().IntVar(&flags.truncateThreshold, truncateThresholdFlagName, 0, truncateThresholdUsage)
	exportCommand.Flags().StringArrayVarP(&flags.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	exportCommand.Flags().StringArrayVar(&flags.includePatterns, includeFlagName, nil, includeFlagDescription)
	exportCommand.Flags().BoolVar(&flags.countTokens, tokensFlagName, false, tokensFlagDescription)
	exportCommand.Flags().StringVar(&flags.tokenModel, modelFlagName, "", modelFlagDescription)
	return exportCommand
}

func runExport(command *cobra.Command, arguments []string, flags *exportFlags, configPath string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf("determine working directory: %w", workingDirectoryError)
	}

	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configPath,
	})
	if loadError != nil {
		return loadError
	}

	exportConfiguration := resolveExportConfiguration(command, flags, applicationConfiguration.Export)

	fileHost := host.NewFilesystemHost(workingDirectory)
	engine, engineError := buildSelectionEngine(fileHost)
	if engineError != nil {
		return engineError
	}
	if selectError := selectRequestedPaths(engine, fileHost, arguments); selectError != nil {
		return selectError
	}
	selectedPaths := engine.SelectedFiles()
	if len(selectedPaths) == 0 {
		return fmt.Errorf("nothing to export: no files selected")
	}

	pipelineOptions := []export.Option{}
	if tokensEnabled(command, flags, applicationConfiguration.Export) {
		modelName := flags.tokenModel
		if modelName == "" {
			modelName = applicationConfiguration.Export.Tokens.Model
		}
		if modelName == "" {
			modelName = defaultTokenizerModel
		}
		tokenCounter, counterError := tokenizer.NewOpenAICounter(modelName)
		if counterError != nil {
			return counterError
		}
		pipelineOptions = append(pipelineOptions, export.WithTokenCounter(tokenCounter))
	}

	result, generateError := generateWithProgress(command, fileHost, selectedPaths, exportConfiguration, pipelineOptions)
	if generateError != nil {
		return generateError
	}

	return dispatchResult(command, flags, exportConfiguration, result)
}

// resolveExportConfiguration layers configuration-file defaults under
// explicit flags. Unset values fall back to the built-in defaults; unknown
// enum values still fail pipeline validation.
func resolveExportConfiguration(command *cobra.Command, flags *exportFlags, defaults config.ExportConfiguration) export.Configuration {
	format := firstNonEmpty(flags.format, defaults.Format, defaultFormatValue)
	sinkKind := firstNonEmpty(flags.sinkKind, defaults.Sink, defaultSinkValue)

	structure := flags.structure
	if !command.Flags().Changed(structureFlagName) && defaults.Structure != nil {
		structure = *defaults.Structure
	}

	maxFileBytes := flags.maxFileBytes
	if maxFileBytes == 0 && defaults.MaxFileBytes != nil {
		maxFileBytes = *defaults.MaxFileBytes
	}
	if maxFileBytes == 0 {
		maxFileBytes = defaultMaxFileBytes
	}

	truncateThreshold := flags.truncateThreshold
	if truncateThreshold == 0 && defaults.TruncateThresholdBytes != nil {
		truncateThreshold = *defaults.TruncateThresholdBytes
	}
	if truncateThreshold == 0 {
		truncateThreshold = maxFileBytes
	}

	return export.Configuration{
		Format:                 export.Format(format),
		Sink:                   export.SinkKind(sinkKind),
		IncludeStructure:       structure,
		MaxFileBytes:           maxFileBytes,
		TruncateThresholdBytes: truncateThreshold,
		ExcludePatterns:        append(append([]string{}, defaults.Exclude...), flags.excludePatterns...),
		IncludePatterns:        append(append([]string{}, defaults.Include...), flags.includePatterns...),
	}
}

func tokensEnabled(command *cobra.Command, flags *exportFlags, defaults config.ExportConfiguration) bool {
	if command.Flags().Changed(tokensFlagName) {
		return flags.countTokens
	}
	return defaults.Tokens.Enabled != nil && *defaults.Tokens.Enabled
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// progressUpdate is one progress report bridged from the pipeline callback
// to the rendering goroutine.
type progressUpdate struct {
	percent int
	message string
}

// generateWithProgress runs the pipeline in one goroutine while a second
// renders progress to stderr, the way long-running commands stream here.
func generateWithProgress(command *cobra.Command, fileHost host.Host, selectedPaths []string, configuration export.Configuration, options []export.Option) (export.Result, error) {
	progressUpdates := make(chan progressUpdate, 64)
	var result export.Result

	group, _ := errgroup.WithContext(context.Background())
	group.Go(func() error {
		defer close(progressUpdates)
		pipelineOptions := append([]export.Option{
			export.WithProgress(func(percent int, message string) {
				progressUpdates <- progressUpdate{percent: percent, message: message}
			}),
		}, options...)
		pipeline := export.NewPipeline(fileHost, pipelineOptions...)
		generated, generateError := pipeline.Generate(selectedPaths, configuration)
		if generateError != nil {
			return generateError
		}
		result = generated
		return nil
	})
	group.Go(func() error {
		for update := range progressUpdates {
			fmt.Fprintf(command.ErrOrStderr(), "\r[%3d%%] %s", update.percent, update.message)
		}
		fmt.Fprintln(command.ErrOrStderr())
		return nil
	})
	if waitError := group.Wait(); waitError != nil {
		return export.Result{}, waitError
	}
	return result, nil
}

// dispatchResult delivers the generated document to the configured sink and
// reports the outcome.
func dispatchResult(command *cobra.Command, flags *exportFlags, configuration export.Configuration, result export.Result) error {
	dispatcher := sink.NewDispatcher(clipboard.NewService(), filesystemSinkWriter{}, newConsoleInteractor())

	var outcome sink.Outcome
	if configuration.Sink == export.SinkFile {
		destination := flags.outPath
		if destination == "" {
			destination = defaultOutFileName
			if configuration.Format == export.FormatPlainText {
				destination = defaultPlainOutFileName
			}
		}
		outcome = dispatcher.DispatchFile(destination, result.Content)
	} else {
		outcome = dispatcher.DispatchClipboard(result.Content)
	}

	switch outcome.Kind {
	case sink.OutcomeCancelled:
		fmt.Fprintln(command.OutOrStdout(), outcome.Message)
		return nil
	case sink.OutcomeFailure:
		if outcome.Cause != nil {
			return fmt.Errorf("%s: %w", outcome.Message, outcome.Cause)
		}
		return fmt.Errorf("%s", outcome.Message)
	default:
		fmt.Fprintf(command.OutOrStdout(), "%s (%d files, %d bytes)\n", outcome.Message, result.TotalFiles, result.TotalBytes)
		if len(result.TruncatedFiles) > 0 {
			fmt.Fprintf(command.OutOrStdout(), "truncated: %v\n", result.TruncatedFiles)
		}
		return nil
	}
}
