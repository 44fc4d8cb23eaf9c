package cards

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/pkg/webex"
)

// FallbackMarkdown is shown by clients that cannot render adaptive cards.
const FallbackMarkdown = "Card could not render"

// Poster delivers a message to the API.
type Poster interface {
	PostCardMessage(ctx context.Context, req webex.MessageRequest) (*webex.StatusResult, error)
}

// BuildPayload wraps card as the single adaptive-card attachment of a
// message for roomID.
func BuildPayload(roomID types.SpaceID, card json.RawMessage) webex.MessageRequest {
	return webex.MessageRequest{
		RoomID:   roomID,
		Markdown: FallbackMarkdown,
		Attachments: []types.Attachment{
			{ContentType: webex.AdaptiveCardContentType, Content: card},
		},
	}
}

// Sender posts cards into rooms.
type Sender struct {
	poster Poster
}

// NewSender creates a Sender that posts through poster.
func NewSender(poster Poster) *Sender {
	return &Sender{poster: poster}
}

// Send posts card to roomID and returns the upstream status text.
func (s *Sender) Send(ctx context.Context, roomID types.SpaceID, card json.RawMessage) (string, error) {
	result, err := s.poster.PostCardMessage(ctx, BuildPayload(roomID, card))
	if err != nil {
		return "", fmt.Errorf("send card: %w", err)
	}
	return result.StatusText, nil
}
