package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/user/cardcourier/internal/cards"
	"github.com/user/cardcourier/internal/prompt"
	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/pkg/webex"
)

// SendOptions controls the send flow. RoomID and File skip their prompts
// when set.
type SendOptions struct {
	CardsDir       string
	Extensions     []string
	MaxSpaces      int
	RoomID         types.SpaceID
	File           string
	TrackFavorites bool
	// AllowComments accepts card files with comments and trailing commas.
	AllowComments bool
}

// SendResult describes a completed send.
type SendResult struct {
	RoomID        types.SpaceID
	File          string
	Status        string
	FavoriteAdded bool
}

// InvalidCardMessage is what the user is told when the chosen file is not
// JSON. The command layer prints it in place of the error text.
const InvalidCardMessage = "Cannot send. The file does not contain valid JSON."

// Send picks a card file and a room, posts the card, and records the room
// as a favorite. Any failure ends the flow; nothing is retried.
func (r *Runner) Send(ctx context.Context, opts SendOptions) (*SendResult, error) {
	spaces, err := r.API.ListSpaces(ctx, webex.SpaceQuery{Type: types.SpaceTypeGroup, Max: opts.MaxSpaces})
	if err != nil {
		return nil, err
	}

	file := opts.File
	if file == "" {
		files, err := cards.ListFiles(opts.CardsDir, opts.Extensions)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no card files found in %s", opts.CardsDir)
		}
		file, err = r.Prompt.Select("Which card do you want to send?", files)
		if err != nil {
			return nil, err
		}
	}

	var favs []types.FavoriteEntry
	if r.Favorites != nil {
		favs, err = r.Favorites.Load()
		if err != nil {
			return nil, err
		}
	}

	roomID := opts.RoomID
	if roomID == "" {
		choices := prompt.Grouped(favs, spaceChoices(spaces))
		picked, err := r.Prompt.Select("Where do you want to send the card?", choices)
		if err != nil {
			return nil, err
		}
		roomID = types.SpaceID(picked)
	}

	var loadOpts []cards.LoadOption
	if opts.AllowComments {
		loadOpts = append(loadOpts, cards.AllowComments())
	}
	card, err := cards.Load(file, loadOpts...)
	if err != nil {
		return nil, err
	}

	status, err := cards.NewSender(r.API).Send(ctx, roomID, card)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(r.Out, status)
	slog.Info("card sent", "room_id", string(roomID), "file", file, "status", status)

	result := &SendResult{RoomID: roomID, File: file, Status: status}
	if opts.TrackFavorites && r.Favorites != nil {
		entry := types.FavoriteEntry{Name: roomTitle(spaces, favs, roomID), Value: roomID}
		added, err := r.Favorites.PrependIfAbsent(entry)
		if err != nil {
			return result, fmt.Errorf("update favorites: %w", err)
		}
		result.FavoriteAdded = added
	}
	return result, nil
}

// roomTitle finds a display name for id, falling back to the id itself.
func roomTitle(spaces []types.Space, favs []types.FavoriteEntry, id types.SpaceID) string {
	for _, s := range spaces {
		if s.ID == id {
			return s.Title
		}
	}
	for _, f := range favs {
		if f.Value == id {
			return f.Name
		}
	}
	return string(id)
}
