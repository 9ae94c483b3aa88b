// Package types defines the cross-package data structures used by the dirscribe CLI.
package types

const (
	// DefaultMaxPreviewChars is the default character cap applied to content previews.
	DefaultMaxPreviewChars = 2000
	// DefaultMaxPreviewLines is the default line cap applied to content previews.
	DefaultMaxPreviewLines = 50

	// TruncationMarker is appended to a preview that was cut short by either cap.
	TruncationMarker = "\n... (content truncated)"

	// NoExtensionLabel is the type label reported for files without an extension.
	NoExtensionLabel = "[no extension]"
)

// PreviewLimits bounds a content preview by characters and by lines.
// Whichever cap is exceeded first truncates the preview.
type PreviewLimits struct {
	MaxChars int
	MaxLines int
}

// DefaultPreviewLimits returns the preview caps used when no configuration overrides them.
func DefaultPreviewLimits() PreviewLimits {
	return PreviewLimits{
		MaxChars: DefaultMaxPreviewChars,
		MaxLines: DefaultMaxPreviewLines,
	}
}

// ExclusionSet holds folder names pruned from both collection and tree rendering.
// Matching is exact and case-sensitive against the final path component only.
// Declaration order is preserved so report output can list the names the way
// they were configured.
type ExclusionSet struct {
	orderedNames []string
	members      map[string]struct{}
}

// NewExclusionSet builds an ExclusionSet from the provided folder names.
// Empty and repeated names are ignored; first occurrence order is kept.
func NewExclusionSet(folderNames ...string) ExclusionSet {
	exclusionSet := ExclusionSet{members: make(map[string]struct{}, len(folderNames))}
	for _, folderName := range folderNames {
		if folderName == "" {
			continue
		}
		if _, present := exclusionSet.members[folderName]; present {
			continue
		}
		exclusionSet.members[folderName] = struct{}{}
		exclusionSet.orderedNames = append(exclusionSet.orderedNames, folderName)
	}
	return exclusionSet
}

// Contains reports whether the given folder name is excluded.
func (exclusionSet ExclusionSet) Contains(folderName string) bool {
	_, present := exclusionSet.members[folderName]
	return present
}

// Len returns the number of excluded folder names.
func (exclusionSet ExclusionSet) Len() int {
	return len(exclusionSet.orderedNames)
}

// Names returns the excluded folder names in declaration order.
func (exclusionSet ExclusionSet) Names() []string {
	names := make([]string, len(exclusionSet.orderedNames))
	copy(names, exclusionSet.orderedNames)
	return names
}

// ExtractionResult carries the outcome of content extraction for a single file.
// A failed extraction never surfaces as an error; it is downgraded to Notes
// with Title and Preview cleared.
type ExtractionResult struct {
	// Title is the extracted title or heading text; empty when no title was found.
	Title string
	// Preview is the bounded content excerpt; may be empty.
	Preview string
	// Notes annotates the extraction outcome (empty file, binary type, errors).
	Notes string
}

// HasTitle reports whether a title was extracted.
func (result ExtractionResult) HasTitle() bool {
	return result.Title != ""
}
