package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PolarWolf314/kanote/internal/audit"
	"github.com/PolarWolf314/kanote/internal/utils"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	StoreOptions

	// Patterns are files, directories, or doublestar globs.
	Patterns []string

	// BaseDir resolves relative patterns. If empty, uses the current
	// working directory.
	BaseDir string

	// DryRun resolves and reads the files without creating notes.
	DryRun bool
}

// ImportedFile describes one file considered by an import.
type ImportedFile struct {
	// Path is the absolute path of the source file.
	Path string

	// Title is the note title derived from the file name.
	Title string

	// NoteID is empty for dry runs and skipped files.
	NoteID string

	// SkipReason is set when the file was not imported.
	SkipReason string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Files    []ImportedFile
	Imported int
	Skipped  int
	DryRun   bool
}

// Import creates one note per matched plaintext file. The title is the file
// name without its extension and the body is the file content. Source files
// are left in place.
//
// Returns ErrNoFilesFound if no pattern matched an importable file.
// Returns ErrFileNotFound if a literal path does not exist.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		baseDir = wd
	}

	paths, err := utils.ResolveFiles(opts.Patterns, baseDir)
	if err != nil {
		return nil, err
	}

	// Unlock before touching any content so a wrong password fails fast.
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result := &ImportResult{DryRun: opts.DryRun}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := ImportedFile{Path: path, Title: titleFromPath(path)}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !utf8.Valid(content) {
			file.SkipReason = "not valid UTF-8 text"
			result.Skipped++
			result.Files = append(result.Files, file)
			continue
		}

		if !opts.DryRun {
			note, err := session.Create(file.Title, string(content))
			if err != nil {
				return nil, err
			}
			file.NoteID = note.ID
			result.Imported++
		}

		result.Files = append(result.Files, file)
	}

	if !opts.DryRun && result.Imported > 0 {
		audit.Log(opts.Root, audit.Entry{Operation: "import", FilesCount: result.Imported})
	}

	return result, nil
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
