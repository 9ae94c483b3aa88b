package extract

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dirscribe/dirscribe/internal/types"
)

const (
	titleMaxChars         = 200
	fallbackTitleMaxChars = 150
	titleEllipsis         = "..."
)

// readTextPermissive reads the file as UTF-8 text, dropping invalid byte
// sequences instead of failing. Only the open or read itself can error.
func readTextPermissive(filePath string) (string, error) {
	rawBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return "", readError
	}
	content := string(rawBytes)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	return content, nil
}

// splitPreservingLineEndings breaks content into lines that keep their
// trailing newline, with no phantom empty final line.
func splitPreservingLineEndings(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// firstNonBlankLine returns the trimmed first line containing non-whitespace
// content, or "" if every line is blank.
func firstNonBlankLine(content string) string {
	for _, line := range splitPreservingLineEndings(content) {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine != "" {
			return trimmedLine
		}
	}
	return ""
}

// capTitle bounds a title to maxChars characters, appending an ellipsis
// when the title was longer. Counting is by runes, not bytes.
func capTitle(title string, maxChars int) string {
	titleRunes := []rune(title)
	if len(titleRunes) > maxChars {
		return string(titleRunes[:maxChars]) + titleEllipsis
	}
	return title
}

// truncatePreview applies the dual-cap truncation rule: if the content
// exceeds the character cap, the first MaxChars characters are kept;
// otherwise if it exceeds the line cap, the first MaxLines lines are kept.
// Either truncation appends the truncation marker. Untruncated content is
// returned unmodified.
func truncatePreview(content string, limits types.PreviewLimits) string {
	contentRunes := []rune(content)
	if len(contentRunes) > limits.MaxChars {
		return string(contentRunes[:limits.MaxChars]) + types.TruncationMarker
	}
	lines := splitPreservingLineEndings(content)
	if len(lines) > limits.MaxLines {
		return strings.Join(lines[:limits.MaxLines], "") + types.TruncationMarker
	}
	return content
}

// truncatePreviewByDecodedLines is the variant used for paragraph-joined
// content, where lines are separated (not terminated) by newlines.
func truncatePreviewByDecodedLines(content string, limits types.PreviewLimits) string {
	contentRunes := []rune(content)
	if len(contentRunes) > limits.MaxChars {
		return string(contentRunes[:limits.MaxChars]) + types.TruncationMarker
	}
	lines := strings.Split(content, "\n")
	if len(lines) > limits.MaxLines {
		return strings.Join(lines[:limits.MaxLines], "\n") + types.TruncationMarker
	}
	return content
}
