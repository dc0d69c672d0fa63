package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
)

// GenerateSessionID generates a cryptographically secure session ID
// Uses 32 bytes of random data encoded as base64 URL-safe string
func GenerateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// sessionData is the JSON document stored on a session row. The cart map is
// keyed by product ID and holds quantities; it only exists for anonymous
// sessions and is discarded on merge.
type sessionData struct {
	Cart map[string]int `json:"cart,omitempty"`
}

// decodeSessionData parses a session's data column. Empty or corrupt data
// yields a fresh document rather than an error; the session cart is not worth
// failing a request over.
func decodeSessionData(raw []byte) sessionData {
	var d sessionData
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &d)
	}
	if d.Cart == nil {
		d.Cart = map[string]int{}
	}
	return d
}

func encodeSessionData(d sessionData) []byte {
	if len(d.Cart) == 0 {
		d.Cart = nil
	}
	raw, _ := json.Marshal(d)
	return raw
}

// cartLines flattens the session cart map into lines, skipping malformed
// keys and non-positive quantities.
func (d sessionData) cartLines() []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(d.Cart))
	for key, qty := range d.Cart {
		id, err := uuid.Parse(key)
		if err != nil || qty <= 0 {
			continue
		}
		lines = append(lines, domain.CartLine{ProductID: id, Quantity: qty})
	}
	return lines
}
