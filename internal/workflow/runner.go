// Package workflow implements the interactive flows behind each command:
// sending a card, finding cards already posted, and searching rooms.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/user/cardcourier/internal/aggregate"
	"github.com/user/cardcourier/internal/cards"
	"github.com/user/cardcourier/internal/favorites"
	"github.com/user/cardcourier/internal/prompt"
	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/pkg/webex"
)

// API is the subset of the Webex client the workflows use.
type API interface {
	ListSpaces(ctx context.Context, q webex.SpaceQuery) ([]types.Space, error)
	aggregate.MessageLister
	cards.Poster
}

// Runner wires the workflows to their collaborators.
type Runner struct {
	API       API
	Prompt    prompt.Provider
	Favorites *favorites.Store
	Policy    aggregate.Policy
	Out       io.Writer
}

// TokenPrompt is shown when no token is configured.
const TokenPrompt = "Enter your Webex token:"

// ResolveToken returns configured, or asks for a token when it is empty.
func ResolveToken(configured string, p prompt.Provider) (string, error) {
	if configured != "" {
		return configured, nil
	}
	token, err := p.Password(TokenPrompt)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", errors.New("a Webex token is required (set TOKEN or enter one at the prompt)")
	}
	return token, nil
}

// spaceChoices lists rooms as prompt choices, title shown, id returned.
func spaceChoices(spaces []types.Space) []types.Choice {
	choices := make([]types.Choice, len(spaces))
	for i, s := range spaces {
		choices[i] = types.Choice{Name: s.Title, Value: string(s.ID)}
	}
	return choices
}
