// Package export turns a list of selected paths into one formatted document
// without ever holding unbounded intermediate state: files are processed in
// fixed-size batches and output accumulates in bounded chunks.
package export

import (
	"errors"
	"time"

	"github.com/temirov/treepick/internal/classify"
	"github.com/temirov/treepick/internal/host"
	"github.com/temirov/treepick/internal/pattern"
	"github.com/temirov/treepick/internal/tokenizer"
	"github.com/temirov/treepick/internal/types"
)

const (
	// batchSizeFiles is the number of eligible files processed per batch.
	batchSizeFiles = 10

	// truncationMarker terminates every truncated file body.
	truncationMarker = "\n... [truncated]"

	progressValidated     = 5
	progressStructureDone = 10
	progressFilesBegin    = 20
	progressFilesEnd      = 90
	progressFinalizing    = 95
	progressComplete      = 100
)

// Result is the outcome of one export run.
type Result struct {
	Content        string
	TotalFiles     int
	TotalBytes     int64
	GeneratedAt    time.Time
	TruncatedFiles []string
	TokenCount     int
	TokenModel     string
}

// ProgressFunc receives monotonically non-decreasing progress in [0,100].
// It is a plain synchronous callback and must not block the pipeline.
type ProgressFunc func(percent int, message string)

// Pipeline generates export documents from selected paths. The zero value
// is not usable; construct with NewPipeline.
type Pipeline struct {
	fileHost     host.Host
	tokenCounter tokenizer.Counter
	progress     ProgressFunc
	clock        func() time.Time
}

// Option adjusts a Pipeline during construction.
type Option func(*Pipeline)

// WithTokenCounter enables token totals in the summary footer.
func WithTokenCounter(counter tokenizer.Counter) Option {
	return func(pipeline *Pipeline) { pipeline.tokenCounter = counter }
}

// WithProgress installs the progress callback.
func WithProgress(progress ProgressFunc) Option {
	return func(pipeline *Pipeline) { pipeline.progress = progress }
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(pipeline *Pipeline) { pipeline.clock = clock }
}

// NewPipeline constructs a pipeline over the given host.
func NewPipeline(fileHost host.Host, options ...Option) *Pipeline {
	pipeline := &Pipeline{
		fileHost: fileHost,
		clock:    time.Now,
	}
	for _, option := range options {
		option(pipeline)
	}
	return pipeline
}

// Generate runs one export over selectedPaths. Directories among the
// selected paths are dropped, not expanded: the caller expands directory
// selections into concrete file paths beforehand. An unreadable file yields
// an inline error block and is excluded from the counts; only an invalid
// configuration fails the run.
func (pipeline *Pipeline) Generate(selectedPaths []string, configuration Configuration) (Result, error) {
	if validationError := configuration.Validate(); validationError != nil {
		return Result{}, validationError
	}

	reporter := newProgressReporter(pipeline.progress)
	reporter.report(progressValidated, "configuration validated")

	eligiblePaths := pipeline.collectEligibleFiles(selectedPaths, configuration)

	generatedAt := pipeline.clock().UTC()
	formatter := formatterFor(configuration.Format)
	builder := &chunkBuilder{}
	builder.write(formatter.header(generatedAt))

	if configuration.IncludeStructure {
		builder.write(formatter.structureSection(RenderStructure(eligiblePaths)))
	}
	reporter.report(progressStructureDone, "structure generated")

	if configuration.Format == FormatMarkdown && len(eligiblePaths) > 0 {
		builder.write(markdownFilesHead + "\n\n")
	}

	result := Result{GeneratedAt: generatedAt}
	processedCount := 0
	for batchStart := 0; batchStart < len(eligiblePaths); batchStart += batchSizeFiles {
		batchEnd := min(batchStart+batchSizeFiles, len(eligiblePaths))
		for _, path := range eligiblePaths[batchStart:batchEnd] {
			pipeline.processFile(path, configuration, formatter, builder, &result)
			processedCount++
			reporter.report(interpolateFileProgress(processedCount, len(eligiblePaths)), path)
		}
	}

	reporter.report(progressFinalizing, "finalizing")

	summary := summaryData{
		totalFiles:     result.TotalFiles,
		totalBytes:     result.TotalBytes,
		truncatedPaths: result.TruncatedFiles,
	}
	if pipeline.tokenCounter != nil {
		if tokenCount, countError := pipeline.tokenCounter.CountString(builder.content()); countError == nil {
			summary.tokenCount = tokenCount
			summary.tokenModel = pipeline.tokenCounter.Name()
			result.TokenCount = tokenCount
			result.TokenModel = summary.tokenModel
		}
	}
	builder.write(formatter.footer(summary))
	result.Content = builder.content()

	reporter.report(progressComplete, "export complete")
	return result, nil
}

// collectEligibleFiles applies the eligibility rules: files only, not
// binary by extension, not excluded, and matching the include patterns when
// any are configured. Stale paths are skipped without counting.
func (pipeline *Pipeline) collectEligibleFiles(selectedPaths []string, configuration Configuration) []string {
	eligiblePaths := make([]string, 0, len(selectedPaths))
	for _, path := range selectedPaths {
		pathInfo, statError := pipeline.fileHost.StatPath(path)
		if statError != nil {
			continue
		}
		if pathInfo.Kind != types.NodeKindFile {
			continue
		}
		if classify.IsBinaryByExtension(path) {
			continue
		}
		if pattern.MatchesAny(path, configuration.ExcludePatterns) {
			continue
		}
		if len(configuration.IncludePatterns) > 0 && !pattern.MatchesAny(path, configuration.IncludePatterns) {
			continue
		}
		eligiblePaths = append(eligiblePaths, path)
	}
	return eligiblePaths
}

// processFile reads, truncates, and formats one file into the builder. A
// read failure becomes an inline error block; sniffed binary content is
// skipped entirely.
func (pipeline *Pipeline) processFile(path string, configuration Configuration, formatter documentFormatter, builder *chunkBuilder, result *Result) {
	content, readFailure := pipeline.fileHost.ReadFileBytes(path)
	if readFailure != nil {
		var readError *types.ReadError
		if !errors.As(readFailure, &readError) {
			readFailure = &types.ReadError{Path: path, Err: readFailure}
		}
		builder.write(formatter.errorSection(path, readFailure))
		return
	}
	if classify.IsBinaryData(content) {
		return
	}

	body := string(content)
	if len(content) > configuration.MaxFileBytes {
		keepBytes := configuration.MaxFileBytes * 8 / 10
		body = truncateAtRuneBoundary(body, keepBytes) + truncationMarker
		result.TruncatedFiles = append(result.TruncatedFiles, path)
	}

	builder.write(formatter.fileSection(path, body))
	result.TotalFiles++
	result.TotalBytes += int64(len(content))
}

// truncateAtRuneBoundary cuts text to at most limit bytes without splitting
// a UTF-8 sequence.
func truncateAtRuneBoundary(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut]
}

// interpolateFileProgress maps the processed-file count into the file phase
// of the progress range.
func interpolateFileProgress(processedCount int, totalCount int) int {
	if totalCount == 0 {
		return progressFilesBegin
	}
	span := progressFilesEnd - progressFilesBegin
	return progressFilesBegin + processedCount*span/totalCount
}

// progressReporter guarantees monotonically non-decreasing progress.
type progressReporter struct {
	callback    ProgressFunc
	lastPercent int
}

func newProgressReporter(callback ProgressFunc) *progressReporter {
	return &progressReporter{callback: callback, lastPercent: -1}
}

func (reporter *progressReporter) report(percent int, message string) {
	if reporter.callback == nil {
		return
	}
	if percent < reporter.lastPercent {
		percent = reporter.lastPercent
	}
	reporter.lastPercent = percent
	reporter.callback(percent, message)
}
