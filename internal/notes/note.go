package notes

import (
	"time"

	"github.com/google/uuid"
)

// NoteFileSuffix is appended to a note id to form its file name.
const NoteFileSuffix = ".json.enc"

// NoteMeta is everything about a note except its body.
type NoteMeta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Note is the unit that gets serialized, encrypted and written to one file.
type Note struct {
	NoteMeta
	Body string `json:"body"`
}

// NewNoteID returns a random UUID v4 string.
func NewNoteID() string {
	return uuid.New().String()
}

// ValidNoteID reports whether id is a canonical UUID string. Anything else
// can never name a note file, which also keeps ids from escaping the notes
// directory.
func ValidNoteID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.String() == id
}
