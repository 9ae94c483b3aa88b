// Package report assembles the folder content report: header, directory
// tree, and one detail block per collected file.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dirscribe/dirscribe/internal/extract"
	"github.com/dirscribe/dirscribe/internal/scan"
	"github.com/dirscribe/dirscribe/internal/tokenizer"
	"github.com/dirscribe/dirscribe/internal/types"
	"github.com/dirscribe/dirscribe/internal/utils"
)

const (
	reportTitle       = "FOLDER CONTENT REPORT"
	wideSeparatorRule = "================================================================================"
	entrySeparator    = "------------------------------------------------------------"

	detailSectionHeader = "DETAILED FILE INFORMATION:"
	noExclusionsLabel   = "None"
	noFilesFoundLine    = "No files found in the specified directory (after exclusions)."

	entryHeaderFormat     = "--- File #%d ---\n"
	filenameLineFormat    = "Filename: %s\n"
	typeLineFormat        = "Type: %s\n"
	locationLineFormat    = "Location: %s\n"
	tokensLineFormat      = "Estimated Tokens: %d\n"
	titleLineFormat       = "Extracted Title(s)/Heading(s): %s\n"
	notesLineFormat       = "Notes: %s\n"
	tokenSummaryFormat    = "Estimated preview tokens (%s): %d\n"
	previewBlockOpening   = "Content Preview:\n\"\"\"\n"
	previewBlockClosing   = "\n\"\"\"\n"
	previewUnavailable    = "Content Preview: [Not available, file might be empty, or an issue occurred during extraction]\n"
	errorWriteReportBlock = "writing report block for %s: %w"
)

// previewSuppressionMarkers are note fragments that already explain an
// empty preview, so the generic unavailable line is not added after them.
var previewSuppressionMarkers = []string{
	"[Empty text file]",
	"appears empty",
	"Binary",
	"not yet implemented",
	"support unavailable",
}

// Assembler writes the full report. It is an orchestration layer over the
// tree renderer, the file collector's output, and the content extractor.
type Assembler struct {
	Extractor *extract.Extractor
	// TokenCounter, when set, adds an estimated token line per non-empty
	// preview and a trailing total.
	TokenCounter tokenizer.Counter
	// Clock supplies the scan date for the header; nil means time.Now.
	Clock func() time.Time
	// Progress, when set, is invoked before each file is processed.
	Progress func(index int, total int, fileName string)
}

// Write produces the complete report for the collected file paths.
func (assembler *Assembler) Write(writer io.Writer, rootPath string, exclusions types.ExclusionSet, filePaths []string) error {
	assembler.writeHeader(writer, rootPath, len(filePaths), exclusions)

	if treeError := scan.WriteTree(writer, rootPath, exclusions); treeError != nil {
		return treeError
	}

	fmt.Fprintln(writer, detailSectionHeader)
	fmt.Fprint(writer, wideSeparatorRule+"\n\n")

	totalTokens := 0
	for fileIndex, filePath := range filePaths {
		if assembler.Progress != nil {
			assembler.Progress(fileIndex+1, len(filePaths), filepath.Base(filePath))
		}
		entryTokens, blockError := assembler.writeFileBlock(writer, fileIndex+1, filePath)
		if blockError != nil {
			return blockError
		}
		totalTokens += entryTokens
	}

	if assembler.TokenCounter != nil {
		fmt.Fprintln(writer, wideSeparatorRule)
		fmt.Fprintf(writer, tokenSummaryFormat, assembler.TokenCounter.Name(), totalTokens)
	}
	return nil
}

// WriteEmpty produces the short report used when no files survive the
// exclusion rules.
func (assembler *Assembler) WriteEmpty(writer io.Writer, rootPath string) error {
	fmt.Fprintln(writer, reportTitle)
	fmt.Fprintf(writer, "Source Folder: %s\n", rootPath)
	fmt.Fprintf(writer, "Scan Date: %s\n", utils.FormatScanTimestamp(assembler.now()))
	fmt.Fprintln(writer, noFilesFoundLine)
	return nil
}

func (assembler *Assembler) now() time.Time {
	if assembler.Clock != nil {
		return assembler.Clock()
	}
	return time.Now()
}

func (assembler *Assembler) writeHeader(writer io.Writer, rootPath string, fileCount int, exclusions types.ExclusionSet) {
	excludedNames := noExclusionsLabel
	if exclusions.Len() > 0 {
		excludedNames = strings.Join(exclusions.Names(), ", ")
	}
	fmt.Fprintln(writer, reportTitle)
	fmt.Fprintf(writer, "Source Folder: %s\n", rootPath)
	fmt.Fprintf(writer, "Scan Date: %s\n", utils.FormatScanTimestamp(assembler.now()))
	fmt.Fprintf(writer, "Total files processed: %d\n", fileCount)
	fmt.Fprintf(writer, "(Excluded folders: %s)\n", excludedNames)
	fmt.Fprint(writer, wideSeparatorRule+"\n\n")
}

// writeFileBlock writes one numbered detail block and returns the token
// estimate recorded for it.
func (assembler *Assembler) writeFileBlock(writer io.Writer, entryIndex int, filePath string) (int, error) {
	result := assembler.Extractor.Extract(filePath)

	var block strings.Builder
	block.WriteString(fmt.Sprintf(entryHeaderFormat, entryIndex))
	block.WriteString(fmt.Sprintf(filenameLineFormat, filepath.Base(filePath)))
	block.WriteString(fmt.Sprintf(typeLineFormat, extract.ExtensionLabel(filePath)))
	block.WriteString(fmt.Sprintf(locationLineFormat, filePath))

	entryTokens := 0
	if assembler.TokenCounter != nil && strings.TrimSpace(result.Preview) != "" {
		tokenCount, countError := assembler.TokenCounter.CountString(result.Preview)
		if countError == nil {
			entryTokens = tokenCount
			block.WriteString(fmt.Sprintf(tokensLineFormat, tokenCount))
		}
	}

	if result.HasTitle() {
		block.WriteString(fmt.Sprintf(titleLineFormat, result.Title))
	}
	if result.Notes != "" {
		block.WriteString(fmt.Sprintf(notesLineFormat, result.Notes))
	}

	trimmedPreview := strings.TrimSpace(result.Preview)
	if trimmedPreview != "" {
		block.WriteString(previewBlockOpening)
		block.WriteString(trimmedPreview)
		block.WriteString(previewBlockClosing)
	} else if needsUnavailableLine(result.Notes) {
		block.WriteString(previewUnavailable)
	}

	block.WriteString("\n" + entrySeparator + "\n\n")

	if _, writeError := io.WriteString(writer, block.String()); writeError != nil {
		return 0, fmt.Errorf(errorWriteReportBlock, filePath, writeError)
	}
	return entryTokens, nil
}

// needsUnavailableLine reports whether the fallback preview line should be
// written: always when there are no notes, otherwise only when the notes
// do not already explain the missing preview.
func needsUnavailableLine(notes string) bool {
	if notes == "" {
		return true
	}
	for _, marker := range previewSuppressionMarkers {
		if strings.Contains(notes, marker) {
			return false
		}
	}
	return true
}
