package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeNoteCursor creates an opaque token for the position just after a note in a
// newest-first listing.
func EncodeNoteCursor(createdAt time.Time, noteID string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.UTC().Format(timeFormat), noteID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeNoteCursor parses a token produced by EncodeNoteCursor.
func DecodeNoteCursor(token string) (*domain.NoteCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return &domain.NoteCursor{CreatedAt: createdAt, NoteID: parts[1]}, nil
}
