package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dirscribe/dirscribe/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	treeHeaderFormat     = "Directory Tree for: %s\n"
	treeSeparatorRule    = "=================================================="
	treePermissionDenied = "[Error: Permission Denied]"
	directoryNameSuffix  = "/"
	errorWriteTreeFormat = "writing tree for %s: %w"
)

// WriteTree renders the directory tree block for rootPath to the writer:
// a header naming the root, a separator rule, the root name, the indented
// entries, and a closing separator. Folders named in the exclusion set are
// pruned together with their entire subtrees.
func WriteTree(writer io.Writer, rootPath string, exclusions types.ExclusionSet) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(treeHeaderFormat, rootPath))
	builder.WriteString(treeSeparatorRule + "\n")
	builder.WriteString(filepath.Base(rootPath) + directoryNameSuffix + "\n")
	writeTreeLevel(&builder, rootPath, "", exclusions)
	builder.WriteString(treeSeparatorRule + "\n\n")

	if _, writeError := io.WriteString(writer, builder.String()); writeError != nil {
		return fmt.Errorf(errorWriteTreeFormat, rootPath, writeError)
	}
	return nil
}

// treeEntry is one renderable child of a directory.
type treeEntry struct {
	name        string
	isDirectory bool
}

// writeTreeLevel recursively renders one directory level. Within a level,
// non-excluded subdirectories come first sorted by name, then files sorted
// by name; the two groups are never merged into a single alphabetical order.
func writeTreeLevel(builder *strings.Builder, directoryPath string, prefix string, exclusions types.ExclusionSet) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		builder.WriteString(prefix + treeLastConnector + treePermissionDenied + "\n")
		return
	}

	var subdirectories []treeEntry
	var files []treeEntry
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			if exclusions.Contains(directoryEntry.Name()) {
				continue
			}
			subdirectories = append(subdirectories, treeEntry{name: directoryEntry.Name(), isDirectory: true})
		} else {
			files = append(files, treeEntry{name: directoryEntry.Name()})
		}
	}
	sort.Slice(subdirectories, func(first, second int) bool {
		return subdirectories[first].name < subdirectories[second].name
	})
	sort.Slice(files, func(first, second int) bool {
		return files[first].name < files[second].name
	})
	orderedEntries := append(subdirectories, files...)

	for entryIndex, entry := range orderedEntries {
		isLastEntry := entryIndex == len(orderedEntries)-1
		connector := treeBranchConnector
		if isLastEntry {
			connector = treeLastConnector
		}

		if entry.isDirectory {
			builder.WriteString(prefix + connector + entry.name + directoryNameSuffix + "\n")
			childPrefix := prefix + treeBranchPadding
			if isLastEntry {
				childPrefix = prefix + treeLastPadding
			}
			writeTreeLevel(builder, filepath.Join(directoryPath, entry.name), childPrefix, exclusions)
		} else {
			builder.WriteString(prefix + connector + entry.name + "\n")
		}
	}
}
