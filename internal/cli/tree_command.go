package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/temirov/treepick/internal/export"
	"github.com/temirov/treepick/internal/host"
	"github.com/temirov/treepick/internal/types"
)

func newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			requestedPath := types.RootPath
			if len(arguments) == 1 {
				requestedPath = arguments[0]
			}
			return runTree(command, requestedPath)
		},
	}
}

// runTree loads the subtree below requestedPath and prints its structure.
func runTree(command *cobra.Command, requestedPath string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf("determine working directory: %w", workingDirectoryError)
	}

	fileHost := host.NewFilesystemHost(workingDirectory)
	engine, engineError := buildSelectionEngine(fileHost)
	if engineError != nil {
		return engineError
	}
	if selectError := selectRequestedPaths(engine, fileHost, []string{requestedPath}); selectError != nil {
		return selectError
	}

	filePaths := engine.SelectedFiles()
	if len(filePaths) == 0 {
		fmt.Fprintln(command.OutOrStdout(), types.RootPath)
		return nil
	}
	fmt.Fprint(command.OutOrStdout(), export.RenderStructure(filePaths))
	return nil
}
