package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/temirov/treepick/internal/classify"
	"github.com/temirov/treepick/internal/utils"
)

const (
	markdownHeaderTitle   = "# File Export"
	markdownStructureHead = "## Structure"
	markdownFilesHead     = "## Files"
	markdownSummaryHead   = "## Summary"
	markdownFence         = "```"

	plainTextHeaderTitle   = "FILE EXPORT"
	plainTextStructureHead = "STRUCTURE"
	plainTextSummaryHead   = "SUMMARY"
	plainTextBannerRule    = "----------------------------------------"
	plainTextSectionRule   = "========================================"

	generatedAtLabel = "Generated: "
)

// summaryData carries the footer figures.
type summaryData struct {
	totalFiles     int
	totalBytes     int64
	truncatedPaths []string
	tokenCount     int
	tokenModel     string
}

// documentFormatter renders the format-specific framing of every document
// section. Implementations write into the pipeline's chunk builder and hold
// no state of their own.
type documentFormatter interface {
	header(generatedAt time.Time) string
	structureSection(renderedTree string) string
	fileSection(path string, content string) string
	errorSection(path string, readFailure error) string
	footer(summary summaryData) string
}

func formatterFor(format Format) documentFormatter {
	if format == FormatPlainText {
		return plainTextFormatter{}
	}
	return markdownFormatter{}
}

type markdownFormatter struct{}

func (markdownFormatter) header(generatedAt time.Time) string {
	return fmt.Sprintf("%s\n\n%s%s\n\n", markdownHeaderTitle, generatedAtLabel, generatedAt.Format(time.RFC3339))
}

func (markdownFormatter) structureSection(renderedTree string) string {
	var section strings.Builder
	section.WriteString(markdownStructureHead + "\n\n")
	section.WriteString(markdownFence + "\n")
	section.WriteString(renderedTree)
	section.WriteString(markdownFence + "\n\n")
	return section.String()
}

func (markdownFormatter) fileSection(path string, content string) string {
	var section strings.Builder
	section.WriteString(fmt.Sprintf("### %s\n\n", path))
	section.WriteString(markdownFence + classify.LanguageHint(path) + "\n")
	section.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		section.WriteString("\n")
	}
	section.WriteString(markdownFence + "\n\n")
	return section.String()
}

func (markdownFormatter) errorSection(path string, readFailure error) string {
	return fmt.Sprintf("### %s\n\n> Error reading file: %v\n\n", path, readFailure)
}

func (markdownFormatter) footer(summary summaryData) string {
	var section strings.Builder
	section.WriteString(markdownSummaryHead + "\n\n")
	section.WriteString(fmt.Sprintf("- Total files: %d\n", summary.totalFiles))
	section.WriteString(fmt.Sprintf("- Total size: %s (%d bytes)\n", utils.FormatFileSize(summary.totalBytes), summary.totalBytes))
	if summary.tokenCount > 0 {
		section.WriteString(fmt.Sprintf("- Estimated tokens: %d (%s)\n", summary.tokenCount, summary.tokenModel))
	}
	if len(summary.truncatedPaths) > 0 {
		section.WriteString("- Truncated files:\n")
		for _, truncatedPath := range summary.truncatedPaths {
			section.WriteString(fmt.Sprintf("  - %s\n", truncatedPath))
		}
	}
	return section.String()
}

type plainTextFormatter struct{}

func (plainTextFormatter) header(generatedAt time.Time) string {
	var section strings.Builder
	section.WriteString(plainTextHeaderTitle + "\n")
	section.WriteString(generatedAtLabel + generatedAt.Format(time.RFC3339) + "\n")
	section.WriteString(plainTextSectionRule + "\n\n")
	return section.String()
}

func (plainTextFormatter) structureSection(renderedTree string) string {
	var section strings.Builder
	section.WriteString(plainTextStructureHead + "\n")
	section.WriteString(plainTextBannerRule + "\n")
	section.WriteString(renderedTree)
	section.WriteString("\n")
	return section.String()
}

func (plainTextFormatter) fileSection(path string, content string) string {
	var section strings.Builder
	section.WriteString(fmt.Sprintf("FILE: %s\n", path))
	section.WriteString(plainTextBannerRule + "\n")
	section.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		section.WriteString("\n")
	}
	section.WriteString("\n")
	return section.String()
}

func (plainTextFormatter) errorSection(path string, readFailure error) string {
	var section strings.Builder
	section.WriteString(fmt.Sprintf("FILE: %s\n", path))
	section.WriteString(plainTextBannerRule + "\n")
	section.WriteString(fmt.Sprintf("ERROR reading file: %v\n\n", readFailure))
	return section.String()
}

func (plainTextFormatter) footer(summary summaryData) string {
	var section strings.Builder
	section.WriteString(plainTextSectionRule + "\n")
	section.WriteString(plainTextSummaryHead + "\n")
	section.WriteString(fmt.Sprintf("Total files: %d\n", summary.totalFiles))
	section.WriteString(fmt.Sprintf("Total size: %s (%d bytes)\n", utils.FormatFileSize(summary.totalBytes), summary.totalBytes))
	if summary.tokenCount > 0 {
		section.WriteString(fmt.Sprintf("Estimated tokens: %d (%s)\n", summary.tokenCount, summary.tokenModel))
	}
	if len(summary.truncatedPaths) > 0 {
		section.WriteString("Truncated files:\n")
		for _, truncatedPath := range summary.truncatedPaths {
			section.WriteString(fmt.Sprintf("  %s\n", truncatedPath))
		}
	}
	return section.String()
}
