// Package cursor provides opaque page tokens for message listings.
package cursor

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Cursor is the state carried between two pages of one listing.
type Cursor struct {
	// Position is the document position of the last message already returned.
	Position int `json:"pos"`
	// ScopeHash ties the token to the listing it came from, such as one locale.
	ScopeHash string `json:"scope,omitempty"`
}

// After returns the cursor that continues scope past position.
func After(position int, scope string) Cursor {
	return Cursor{Position: position, ScopeHash: HashScope(scope)}
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque base64 string to a cursor.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.Position < 0 {
		return Cursor{}, fmt.Errorf("invalid cursor position: %d", c.Position)
	}
	return c, nil
}

// HashScope computes a short hash of the listing scope. Empty scope hashes to
// the empty string.
func HashScope(scope string) string {
	if scope == "" {
		return ""
	}
	h := sha256.Sum256([]byte(scope))
	return hex.EncodeToString(h[:8])
}

// ValidateScope checks that c was issued for the same listing scope.
func ValidateScope(c Cursor, scope string) error {
	if c.ScopeHash != HashScope(scope) {
		return fmt.Errorf("page token belongs to a different listing")
	}
	return nil
}
