// Package extract implements per-file-type content extraction: a title
// heuristic, a bounded content preview, and notes describing the outcome.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dirscribe/dirscribe/internal/types"
)

// Extractor dispatches content extraction by file extension. Extraction
// never returns an error to the caller; failures are downgraded to a notes
// annotation with title and preview cleared.
type Extractor struct {
	limits         types.PreviewLimits
	documentParser DocumentParser
}

// NewExtractor constructs an Extractor with the given preview limits.
// documentParser may be nil; .docx files then report a deterministic
// unavailable note instead of being parsed.
func NewExtractor(limits types.PreviewLimits, documentParser DocumentParser) *Extractor {
	return &Extractor{
		limits:         limits,
		documentParser: documentParser,
	}
}

// DocumentParserAvailable reports whether .docx extraction is enabled.
func (extractor *Extractor) DocumentParserAvailable() bool {
	return extractor.documentParser != nil
}

// ExtensionLabel returns the lowercased extension of the path, or the
// no-extension sentinel when the file name has no extension.
func ExtensionLabel(filePath string) string {
	extension := strings.ToLower(filepath.Ext(filePath))
	if extension == "" {
		return types.NoExtensionLabel
	}
	return extension
}

// Extract derives a title, bounded preview, and notes for the file.
func (extractor *Extractor) Extract(filePath string) types.ExtractionResult {
	extension := strings.ToLower(filepath.Ext(filePath))

	switch {
	case isTextExtension(extension):
		return extractor.extractText(filePath, extension)
	case extension == wordDocumentExtension:
		return extractor.extractWordDocument(filePath)
	case isBinaryExtension(extension):
		return types.ExtractionResult{Notes: fmt.Sprintf(noteBinaryFormat, extension)}
	case isUnimplementedExtension(extension):
		return types.ExtractionResult{Notes: fmt.Sprintf(noteNotImplementedFormat, extension)}
	default:
		return extractor.extractUnknown(filePath, extension)
	}
}

func isTextExtension(extension string) bool {
	_, present := textExtensions[extension]
	return present
}

func isBinaryExtension(extension string) bool {
	_, present := binaryExtensions[extension]
	return present
}

func isUnimplementedExtension(extension string) bool {
	_, present := unimplementedExtensions[extension]
	return present
}

// extractText handles the explicit text category. The title is the first
// non-blank line, except for Markdown where the first heading wins.
func (extractor *Extractor) extractText(filePath string, extension string) types.ExtractionResult {
	content, readError := readTextPermissive(filePath)
	if readError != nil {
		return errorResult(filePath, "read", readError)
	}
	if content == "" {
		return types.ExtractionResult{Notes: noteEmptyTextFile}
	}

	title := ""
	if extension == ".md" {
		title = markdownTitle([]byte(content))
	}
	if title == "" {
		title = firstNonBlankLine(content)
	}
	title = capTitle(title, titleMaxChars)

	return types.ExtractionResult{
		Title:   title,
		Preview: truncatePreview(content, extractor.limits),
	}
}

// extractWordDocument handles the structured document category. The title
// joins up to three heading-styled paragraphs; without headings it falls
// back to the first non-blank paragraph.
func (extractor *Extractor) extractWordDocument(filePath string) types.ExtractionResult {
	if extractor.documentParser == nil {
		return types.ExtractionResult{Notes: noteDocxUnavailable}
	}

	paragraphs, parseError := extractor.documentParser.Parse(filePath)
	if parseError != nil {
		return errorResult(filePath, "parse", parseError)
	}

	var headingTexts []string
	for _, paragraph := range paragraphs {
		if len(headingTexts) == 3 {
			break
		}
		if strings.HasPrefix(strings.ToLower(paragraph.StyleName), "heading") && strings.TrimSpace(paragraph.Text) != "" {
			headingTexts = append(headingTexts, strings.TrimSpace(paragraph.Text))
		}
	}

	title := ""
	if len(headingTexts) > 0 {
		title = capTitle(strings.Join(headingTexts, "; "), titleMaxChars)
	} else {
		for _, paragraph := range paragraphs {
			if strings.TrimSpace(paragraph.Text) != "" {
				title = capTitle(strings.TrimSpace(paragraph.Text), fallbackTitleMaxChars)
				break
			}
		}
	}

	paragraphTexts := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		paragraphTexts = append(paragraphTexts, paragraph.Text)
	}
	fullText := strings.Join(paragraphTexts, "\n")
	preview := truncatePreviewByDecodedLines(fullText, extractor.limits)

	notes := ""
	if strings.TrimSpace(preview) == "" {
		if title == "" {
			notes = noteDocxEmpty
		} else {
			notes = noteDocxHeadingsOnly
		}
	}

	return types.ExtractionResult{
		Title:   title,
		Preview: preview,
		Notes:   notes,
	}
}

// extractUnknown attempts a permissive text read for unrecognized
// extensions. It never produces a title.
func (extractor *Extractor) extractUnknown(filePath string, extension string) types.ExtractionResult {
	extensionLabel := extension
	if extensionLabel == "" {
		extensionLabel = types.NoExtensionLabel
	}

	content, readError := readTextPermissive(filePath)
	if readError != nil {
		return types.ExtractionResult{Notes: fmt.Sprintf(noteUnknownBinaryFormat, extensionLabel)}
	}
	if content == "" {
		return types.ExtractionResult{Notes: fmt.Sprintf(noteUnknownEmptyFormat, extensionLabel)}
	}

	preview := truncatePreview(content, extractor.limits)
	notes := fmt.Sprintf(noteUnknownEmptyFormat, extensionLabel)
	if strings.TrimSpace(preview) != "" {
		notes = fmt.Sprintf(noteAttemptedFormat, extensionLabel)
	}

	return types.ExtractionResult{
		Preview: preview,
		Notes:   notes,
	}
}

// errorResult converts an internal failure into the annotated, non-raising
// form: notes set, title and preview cleared.
func errorResult(filePath string, failureKind string, failure error) types.ExtractionResult {
	return types.ExtractionResult{
		Notes: fmt.Sprintf(noteErrorFormat, filepath.Base(filePath), failureKind, failure),
	}
}
