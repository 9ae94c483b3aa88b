// Package scan walks a directory tree, collecting file paths and rendering
// the tree structure while honoring an exclusion set of folder names.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dirscribe/dirscribe/internal/types"
)

var (
	// ErrRootNotFound indicates the scan root does not exist.
	ErrRootNotFound = errors.New("root path does not exist")
	// ErrRootNotDirectory indicates the scan root is not a directory.
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

const (
	errorRootMissingFormat  = "checking root %s: %w"
	errorWalkFailureFormat  = "walking %s: %w"
	errorRootNotExistFormat = "%w: %s"
)

// ValidateRoot confirms the root path exists and is a directory.
// Failures here are fatal to the whole scan.
func ValidateRoot(rootPath string) error {
	rootInformation, statError := os.Stat(rootPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorRootNotExistFormat, ErrRootNotFound, rootPath)
		}
		return fmt.Errorf(errorRootMissingFormat, rootPath, statError)
	}
	if !rootInformation.IsDir() {
		return fmt.Errorf(errorRootNotExistFormat, ErrRootNotDirectory, rootPath)
	}
	return nil
}

// CollectFiles recursively enumerates every file under rootPath, pruning
// directories whose name appears in the exclusion set before descending.
// The returned paths are sorted lexicographically by full path string so
// reports are reproducible regardless of traversal order.
func CollectFiles(rootPath string, exclusions types.ExclusionSet) ([]string, error) {
	if validationError := ValidateRoot(rootPath); validationError != nil {
		return nil, validationError
	}

	var collectedPaths []string
	walkError := filepath.WalkDir(rootPath, func(currentPath string, directoryEntry fs.DirEntry, visitError error) error {
		if visitError != nil {
			// Unreadable subtrees are skipped, not fatal. The root itself
			// was validated above.
			if currentPath == rootPath {
				return visitError
			}
			return nil
		}
		if directoryEntry.IsDir() {
			if currentPath != rootPath && exclusions.Contains(directoryEntry.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		collectedPaths = append(collectedPaths, currentPath)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorWalkFailureFormat, rootPath, walkError)
	}

	sort.Strings(collectedPaths)
	return collectedPaths, nil
}
