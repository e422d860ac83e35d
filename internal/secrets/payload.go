package secrets

// EncryptedPayload is a sealed message with its parts kept separate.
//
// The JSON form encodes each field independently as standard base64, so no
// binary concatenation format is needed to store or move a payload.
type EncryptedPayload struct {
	Nonce      []byte `json:"nonce"`
	CipherText []byte `json:"cipherText"`
	MAC        []byte `json:"mac"`
}

// Clone returns a deep copy of the payload.
func (p *EncryptedPayload) Clone() *EncryptedPayload {
	if p == nil {
		return nil
	}
	return &EncryptedPayload{
		Nonce:      append([]byte(nil), p.Nonce...),
		CipherText: append([]byte(nil), p.CipherText...),
		MAC:        append([]byte(nil), p.MAC...),
	}
}
