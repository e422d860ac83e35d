package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// importExtensions lists the plaintext file types accepted by notes import.
var importExtensions = []string{".txt", ".md", ".markdown"}

// ResolveFiles expands patterns into a sorted, de-duplicated list of importable files.
//
// Each pattern may be a literal file, a directory (searched recursively), or a
// glob supporting ** via doublestar. Relative patterns are resolved against baseDir.
// Returns ErrNoFilesFound when nothing matches.
func ResolveFiles(patterns []string, baseDir string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := resolvePattern(pattern, baseDir)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	sort.Strings(files)
	return files, nil
}

func resolvePattern(pattern string, baseDir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	if containsGlobChars(pattern) {
		return expandGlob(pattern, absPattern)
	}

	info, err := os.Stat(absPattern)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", pattern, err)
	}

	if info.IsDir() {
		return findFilesInDir(absPattern)
	}

	if !IsImportableFile(absPattern) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidFileType, pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(pattern, absPattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if IsImportableFile(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findFilesInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsImportableFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}

// IsImportableFile reports whether path has a plaintext note extension.
func IsImportableFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range importExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func containsGlobChars(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
