package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/user/cardcourier/internal/aggregate"
	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/pkg/webex"
)

const maxPreviewChars = 40

// FindOptions controls the find-cards flow.
type FindOptions struct {
	MaxSpaces int
	// MessageID skips the selection prompt when set.
	MessageID types.MessageID
}

// FindResult is the card the user picked.
type FindResult struct {
	Message types.Message
	Card    json.RawMessage
}

// FindCards gathers card messages from the most recently active group
// rooms, lets the user pick one, and writes its card JSON to r.Out.
func (r *Runner) FindCards(ctx context.Context, opts FindOptions) (*FindResult, error) {
	spaces, err := r.API.ListSpaces(ctx, webex.SpaceQuery{Type: types.SpaceTypeGroup, Max: opts.MaxSpaces})
	if err != nil {
		return nil, err
	}

	collected, err := aggregate.New(r.API, r.Policy).Collect(ctx, aggregate.SourcesFromSpaces(spaces))
	if err != nil {
		return nil, err
	}
	if len(collected.Messages) == 0 {
		return nil, fmt.Errorf("no cards found in the %d most recent rooms", len(spaces))
	}

	id := opts.MessageID
	if id == "" {
		picked, err := r.Prompt.Select("Choose the card to copy:", messageChoices(collected.Messages))
		if err != nil {
			return nil, err
		}
		id = types.MessageID(picked)
	}

	var selected *types.Message
	for i := range collected.Messages {
		if collected.Messages[i].ID == id {
			selected = &collected.Messages[i]
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("message %s not found among recent cards", id)
	}

	card := selected.Attachments[0].Content
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, card, "", "  "); err != nil {
		return nil, fmt.Errorf("format card: %w", err)
	}
	pretty.WriteByte('\n')
	if _, err := r.Out.Write(pretty.Bytes()); err != nil {
		return nil, fmt.Errorf("write card: %w", err)
	}

	return &FindResult{Message: *selected, Card: card}, nil
}

func messageChoices(messages []types.Message) []types.Choice {
	choices := make([]types.Choice, len(messages))
	for i, m := range messages {
		name := fmt.Sprintf("%s by %s", m.Created.Format(time.RFC3339), m.PersonEmail)
		if m.RoomTitle != "" {
			name += " in " + m.RoomTitle
		}
		if preview := messagePreview(m); preview != "" {
			name += " | " + preview
		}
		choices[i] = types.Choice{Name: name, Value: string(m.ID)}
	}
	return choices
}

// messagePreview returns the first line of the message body as plain
// markdown, shortened for display.
func messagePreview(m types.Message) string {
	text := m.Text
	if m.HTML != "" {
		md, err := htmltomarkdown.ConvertString(m.HTML)
		if err == nil {
			text = md
		}
	}
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if runes := []rune(text); len(runes) > maxPreviewChars {
		text = string(runes[:maxPreviewChars]) + "…"
	}
	return text
}
