package webex

import (
	"time"

	"github.com/user/cardcourier/internal/types"
)

// DefaultBaseURL is the public Webex API host. The client appends /v1/... paths.
const DefaultBaseURL = "https://webexapis.com"

// AdaptiveCardContentType marks an attachment as an adaptive card.
const AdaptiveCardContentType = "application/vnd.microsoft.card.adaptive"

// Config holds the settings for a Client.
type Config struct {
	BaseURL string
	Token   string
	// Timeout bounds each HTTP call. Zero means no timeout.
	Timeout time.Duration
}

// SpaceQuery selects which rooms ListSpaces returns.
type SpaceQuery struct {
	Type   types.SpaceType
	Max    int
	SortBy string
}

// MessageRequest is the body of POST /v1/messages.
type MessageRequest struct {
	RoomID      types.SpaceID      `json:"roomId"`
	Markdown    string             `json:"markdown,omitempty"`
	Attachments []types.Attachment `json:"attachments,omitempty"`
}

// StatusResult reports the outcome of a successful write.
type StatusResult struct {
	StatusCode int
	StatusText string
	MessageID  types.MessageID
}

// listResponse is the envelope used by every list endpoint.
type listResponse[T any] struct {
	Items []T `json:"items"`
}

// createdMessage is the subset of the POST /v1/messages response we keep.
type createdMessage struct {
	ID types.MessageID `json:"id"`
}
