package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// LogFileName is the audit log inside a store root.
const LogFileName = "audit.jsonl"

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
//
// Entries never carry note titles, bodies, or passwords.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	NoteID     string `json:"note_id,omitempty"`     // For add/show/edit/rm.
	NotesCount int    `json:"notes_count,omitempty"` // For list/search/passwd.
	QueryLen   int    `json:"query_len,omitempty"`   // For search.
	FilesCount int    `json:"files_count,omitempty"` // For import.
	Skipped    int    `json:"skipped,omitempty"`     // For passwd.
}

// Log appends an entry to the audit log of the store at root.
// Failures are swallowed: operations should not fail just because audit
// logging failed.
func Log(root string, entry Entry) {
	if root == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	f, err := os.OpenFile(LogPath(root), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log of the store at root.
func LogPath(root string) string {
	return filepath.Join(root, LogFileName)
}

// ReadEntries reads all entries from the audit log of the store at root.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(root string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(root))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Partial writes leave truncated lines.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Filter returns the entries whose operation is op. An empty op matches all.
func Filter(entries []Entry, op string) []Entry {
	if op == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if e.Operation == op {
			out = append(out, e)
		}
	}
	return out
}
