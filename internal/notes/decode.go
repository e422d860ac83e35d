package notes

import (
	"encoding/json"

	"github.com/PolarWolf314/kanote/internal/secrets"
)

// decodeOrSkip turns the raw bytes of a note file into a Note.
//
// It returns false, never an error, for anything that does not decode to a
// note with the expected id under key. Callers treat false as "absent".
func decodeOrSkip(raw []byte, key *secrets.MasterKey, expectedID string) (*Note, bool) {
	var payload secrets.EncryptedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}

	plaintext, err := key.Open(&payload)
	if err != nil {
		return nil, false
	}

	var note Note
	if err := json.Unmarshal(plaintext, &note); err != nil {
		return nil, false
	}

	if note.ID != expectedID || !ValidNoteID(note.ID) {
		return nil, false
	}

	return &note, true
}

// encodeNote seals note under key and returns the file contents.
func encodeNote(note *Note, key *secrets.MasterKey) ([]byte, error) {
	plaintext, err := json.Marshal(note)
	if err != nil {
		return nil, err
	}

	payload, err := key.Seal(plaintext)
	if err != nil {
		return nil, err
	}

	return json.Marshal(payload)
}
