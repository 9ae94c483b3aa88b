package report_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dirscribe/dirscribe/internal/extract"
	"github.com/dirscribe/dirscribe/internal/report"
	"github.com/dirscribe/dirscribe/internal/scan"
	"github.com/dirscribe/dirscribe/internal/types"
)

var fixedScanTime = time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)

// newTestAssembler builds an assembler with default limits and a fixed clock.
func newTestAssembler() report.Assembler {
	return report.Assembler{
		Extractor: extract.NewExtractor(types.DefaultPreviewLimits(), extract.NewWordDocumentParser()),
		Clock:     func() time.Time { return fixedScanTime },
	}
}

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create directory for %s: %v", filePath, makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// renderReport collects files under the root and assembles the full report.
func renderReport(testingHandle *testing.T, assembler report.Assembler, rootDirectory string, exclusions types.ExclusionSet) string {
	testingHandle.Helper()
	collectedPaths, collectError := scan.CollectFiles(rootDirectory, exclusions)
	if collectError != nil {
		testingHandle.Fatalf("CollectFiles failed: %v", collectError)
	}
	var buffer bytes.Buffer
	if writeError := assembler.Write(&buffer, rootDirectory, exclusions, collectedPaths); writeError != nil {
		testingHandle.Fatalf("Write failed: %v", writeError)
	}
	return buffer.String()
}

// TestWriteReportLayout verifies the header, tree section, and detail block
// layout of a small scan.
func TestWriteReportLayout(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "b.txt"), "Hello\nWorld")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "skip", "c.txt"), "hidden")

	rendered := renderReport(testingHandle, newTestAssembler(), rootDirectory, types.NewExclusionSet("skip"))

	expectedHeaderLines := []string{
		"FOLDER CONTENT REPORT",
		"Source Folder: " + rootDirectory,
		"Total files processed: 1",
		"(Excluded folders: skip)",
	}
	for _, expectedLine := range expectedHeaderLines {
		if !strings.Contains(rendered, expectedLine+"\n") {
			testingHandle.Fatalf("missing header line %q in report:\n%s", expectedLine, rendered)
		}
	}
	if !strings.Contains(rendered, "Scan Date: ") {
		testingHandle.Fatalf("missing scan date line:\n%s", rendered)
	}

	if !strings.Contains(rendered, "Directory Tree for: "+rootDirectory+"\n") {
		testingHandle.Fatalf("missing tree header:\n%s", rendered)
	}
	if strings.Contains(rendered, "skip") == false {
		// "skip" appears once in the header exclusion listing.
		testingHandle.Fatalf("expected exclusion listing in header:\n%s", rendered)
	}
	if strings.Contains(rendered, "c.txt") {
		testingHandle.Fatalf("excluded file leaked into report:\n%s", rendered)
	}

	expectedBlock := "--- File #1 ---\n" +
		"Filename: b.txt\n" +
		"Type: .txt\n" +
		"Location: " + filepath.Join(rootDirectory, "a", "b.txt") + "\n" +
		"Extracted Title(s)/Heading(s): Hello\n" +
		"Content Preview:\n\"\"\"\nHello\nWorld\n\"\"\"\n"
	if !strings.Contains(rendered, expectedBlock) {
		testingHandle.Fatalf("missing detail block:\ngot:\n%s\nwant fragment:\n%s", rendered, expectedBlock)
	}
	if !strings.Contains(rendered, "DETAILED FILE INFORMATION:\n") {
		testingHandle.Fatalf("missing detail section header:\n%s", rendered)
	}
}

// TestWriteReportHeaderListsExclusionsInDeclarationOrder verifies the
// excluded-folders header line keeps the configured order of the names.
func TestWriteReportHeaderListsExclusionsInDeclarationOrder(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.txt"), "alpha")

	rendered := renderReport(testingHandle, newTestAssembler(), rootDirectory, types.NewExclusionSet("temp", "backups", ".git"))

	if !strings.Contains(rendered, "(Excluded folders: temp, backups, .git)\n") {
		testingHandle.Fatalf("exclusions not listed in declaration order:\n%s", rendered)
	}
}

// TestWriteReportEntriesNumberedInOrder verifies entries are numbered from
// one following collection order.
func TestWriteReportEntriesNumberedInOrder(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "first.txt"), "one")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "second.txt"), "two")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "third.txt"), "three")

	rendered := renderReport(testingHandle, newTestAssembler(), rootDirectory, types.NewExclusionSet())

	firstIndex := strings.Index(rendered, "--- File #1 ---\nFilename: first.txt\n")
	secondIndex := strings.Index(rendered, "--- File #2 ---\nFilename: second.txt\n")
	thirdIndex := strings.Index(rendered, "--- File #3 ---\nFilename: third.txt\n")
	if firstIndex < 0 || secondIndex < 0 || thirdIndex < 0 {
		testingHandle.Fatalf("missing numbered entries:\n%s", rendered)
	}
	if !(firstIndex < secondIndex && secondIndex < thirdIndex) {
		testingHandle.Fatalf("entries out of order:\n%s", rendered)
	}
}

// TestWriteReportIsDeterministic verifies two runs over an unchanged tree
// produce byte-identical reports when the clock is fixed.
func TestWriteReportIsDeterministic(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.txt"), "alpha")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "nested", "b.txt"), "beta")

	assembler := newTestAssembler()
	firstRendering := renderReport(testingHandle, assembler, rootDirectory, types.NewExclusionSet())
	secondRendering := renderReport(testingHandle, assembler, rootDirectory, types.NewExclusionSet())
	if firstRendering != secondRendering {
		testingHandle.Fatalf("report not deterministic:\nfirst:\n%s\nsecond:\n%s", firstRendering, secondRendering)
	}
}

// TestWriteReportUnavailablePreviewLine verifies the fallback preview line
// appears for a whitespace-only text file and is suppressed when the notes
// already explain the missing preview.
func TestWriteReportUnavailablePreviewLine(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "blank.txt"), "   \n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "empty.txt"), "")

	rendered := renderReport(testingHandle, newTestAssembler(), rootDirectory, types.NewExclusionSet())

	blankBlockStart := strings.Index(rendered, "Filename: blank.txt")
	emptyBlockStart := strings.Index(rendered, "Filename: empty.txt")
	if blankBlockStart < 0 || emptyBlockStart < 0 {
		testingHandle.Fatalf("missing expected blocks:\n%s", rendered)
	}
	blankBlock := rendered[blankBlockStart:emptyBlockStart]
	emptyBlock := rendered[emptyBlockStart:]

	if !strings.Contains(blankBlock, "Content Preview: [Not available") {
		testingHandle.Fatalf("expected unavailable line for whitespace-only file:\n%s", blankBlock)
	}
	if !strings.Contains(emptyBlock, "Notes: [Empty text file]\n") {
		testingHandle.Fatalf("expected empty file note:\n%s", emptyBlock)
	}
	if strings.Contains(emptyBlock, "Content Preview:") {
		testingHandle.Fatalf("unavailable line must be suppressed for the empty file note:\n%s", emptyBlock)
	}
}

// TestWriteEmptyReport verifies the short report used when no files survive
// the exclusion rules.
func TestWriteEmptyReport(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	assembler := newTestAssembler()
	var buffer bytes.Buffer
	if writeError := assembler.WriteEmpty(&buffer, rootDirectory); writeError != nil {
		testingHandle.Fatalf("WriteEmpty failed: %v", writeError)
	}

	rendered := buffer.String()
	if !strings.HasPrefix(rendered, "FOLDER CONTENT REPORT\nSource Folder: "+rootDirectory+"\n") {
		testingHandle.Fatalf("unexpected empty report header:\n%s", rendered)
	}
	if !strings.Contains(rendered, "No files found in the specified directory (after exclusions).\n") {
		testingHandle.Fatalf("missing no-files line:\n%s", rendered)
	}
}

// wordCountCounter is a deterministic token counter for tests.
type wordCountCounter struct{}

func (wordCountCounter) Name() string { return "word-count" }

func (wordCountCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}

// TestWriteReportTokenEstimates verifies per-entry token lines and the
// trailing total when a counter is configured.
func TestWriteReportTokenEstimates(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.txt"), "one two three")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.txt"), "four five")

	assembler := newTestAssembler()
	assembler.TokenCounter = wordCountCounter{}
	rendered := renderReport(testingHandle, assembler, rootDirectory, types.NewExclusionSet())

	if !strings.Contains(rendered, "Estimated Tokens: 3\n") {
		testingHandle.Fatalf("missing first token line:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Estimated Tokens: 2\n") {
		testingHandle.Fatalf("missing second token line:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Estimated preview tokens (word-count): 5\n") {
		testingHandle.Fatalf("missing token summary line:\n%s", rendered)
	}
}

// TestWriteReportProgressCallback verifies the progress callback receives
// one call per file in collection order.
func TestWriteReportProgressCallback(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.txt"), "alpha")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.txt"), "beta")

	var progressLines []string
	assembler := newTestAssembler()
	assembler.Progress = func(index int, total int, fileName string) {
		progressLines = append(progressLines, fmt.Sprintf("%d/%d %s", index, total, fileName))
	}
	renderReport(testingHandle, assembler, rootDirectory, types.NewExclusionSet())

	expectedProgress := []string{"1/2 a.txt", "2/2 b.txt"}
	if len(progressLines) != len(expectedProgress) {
		testingHandle.Fatalf("unexpected progress calls: %v", progressLines)
	}
	for lineIndex, expectedLine := range expectedProgress {
		if progressLines[lineIndex] != expectedLine {
			testingHandle.Fatalf("unexpected progress line %d: got %q want %q", lineIndex, progressLines[lineIndex], expectedLine)
		}
	}
}
