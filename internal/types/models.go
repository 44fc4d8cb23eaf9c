// internal/types/models.go
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SpaceType is the room kind understood by the rooms endpoint. The empty
// value asks the API for both kinds.
type SpaceType string

const (
	SpaceTypeAny    SpaceType = ""
	SpaceTypeDirect SpaceType = "direct"
	SpaceTypeGroup  SpaceType = "group"
)

type Space struct {
	ID           SpaceID   `json:"id"`
	Title        string    `json:"title"`
	Type         SpaceType `json:"type"`
	LastActivity Timestamp `json:"lastActivity"`
}

type Attachment struct {
	ContentType string          `json:"contentType"`
	Content     json.RawMessage `json:"content"`
}

type Message struct {
	ID          MessageID    `json:"id"`
	RoomID      SpaceID      `json:"roomId,omitempty"`
	Created     Timestamp    `json:"created"`
	PersonEmail string       `json:"personEmail"`
	Text        string       `json:"text,omitempty"`
	HTML        string       `json:"html,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`

	// RoomTitle is filled in locally by the aggregator; the API never sends it.
	RoomTitle string `json:"roomTitle,omitempty"`
}

// HasAttachments reports whether the message carries at least one attachment.
func (m *Message) HasAttachments() bool {
	return len(m.Attachments) > 0
}

// FavoriteEntry is one row of favorites.json. Value holds a space ID.
type FavoriteEntry struct {
	Name  string  `json:"name"`
	Value SpaceID `json:"value"`
}

// Choice is a single option offered to the user by a prompt. Separator
// entries are drawn as dividers and can never be selected.
type Choice struct {
	Name      string
	Value     string
	Separator bool
}

// Timestamp decodes either an RFC 3339 string (what the API sends) or a
// number of Unix milliseconds.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse timestamp %s: %w", data, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
