// Package config loads the layered application configuration: a global file
// under the user's home directory overlaid by a local file in the working
// directory. Values here are defaults for the CLI; flags take precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/treepick/internal/utils"
)

const (
	// ConfigFileName is the local configuration file name.
	ConfigFileName = ".treepick.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory
	// holding the global configuration.
	GlobalConfigDirectoryName = ".treepick"
	// GlobalConfigFileName is the global configuration file name.
	GlobalConfigFileName = "config.yaml"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Export ExportConfiguration `mapstructure:"export"`
}

// ExportConfiguration defines defaults for the export command. Pointer
// fields distinguish "absent" from an explicit zero value during merging.
type ExportConfiguration struct {
	Format                 string             `mapstructure:"format"`
	Sink                   string             `mapstructure:"sink"`
	Structure              *bool              `mapstructure:"structure"`
	MaxFileBytes           *int               `mapstructure:"max_file_bytes"`
	TruncateThresholdBytes *int               `mapstructure:"truncate_threshold_bytes"`
	Exclude                []string           `mapstructure:"exclude"`
	Include                []string           `mapstructure:"include"`
	Tokens                 TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	merged.Export.Exclude = utils.DeduplicatePatterns(merged.Export.Exclude)
	merged.Export.Include = utils.DeduplicatePatterns(merged.Export.Include)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if fileInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	merged := configuration
	merged.Export = merged.Export.merge(override.Export)
	return merged
}

func (configuration ExportConfiguration) merge(override ExportConfiguration) ExportConfiguration {
	merged := configuration
	if override.Format != "" {
		merged.Format = override.Format
	}
	if override.Sink != "" {
		merged.Sink = override.Sink
	}
	if override.Structure != nil {
		merged.Structure = override.Structure
	}
	if override.MaxFileBytes != nil {
		merged.MaxFileBytes = override.MaxFileBytes
	}
	if override.TruncateThresholdBytes != nil {
		merged.TruncateThresholdBytes = override.TruncateThresholdBytes
	}
	if len(override.Exclude) > 0 {
		merged.Exclude = append(merged.Exclude, override.Exclude...)
	}
	if len(override.Include) > 0 {
		merged.Include = append(merged.Include, override.Include...)
	}
	if override.Tokens.Enabled != nil {
		merged.Tokens.Enabled = override.Tokens.Enabled
	}
	if override.Tokens.Model != "" {
		merged.Tokens.Model = override.Tokens.Model
	}
	return merged
}
