package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/cardcourier/internal/search"
	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/pkg/webex"
)

// SearchOptions controls the space search flow. Nil Type and Term are
// asked for interactively.
type SearchOptions struct {
	Type      *types.SpaceType
	Term      *string
	Mode      search.Mode
	MaxSpaces int
	// Save appends every match to favorites, without de-duplication.
	Save bool
}

var spaceTypeChoices = []types.Choice{
	{Name: "direct", Value: string(types.SpaceTypeDirect)},
	{Name: "group", Value: string(types.SpaceTypeGroup)},
	{Name: "both", Value: string(types.SpaceTypeAny)},
}

// SearchSpaces lists rooms whose title matches a term and prints them as
// favorites entries, ready to paste into favorites.json.
func (r *Runner) SearchSpaces(ctx context.Context, opts SearchOptions) ([]types.FavoriteEntry, error) {
	var spaceType types.SpaceType
	if opts.Type != nil {
		spaceType = *opts.Type
	} else {
		picked, err := r.Prompt.Select("What type of space", spaceTypeChoices)
		if err != nil {
			return nil, err
		}
		spaceType = types.SpaceType(picked)
	}

	var term string
	if opts.Term != nil {
		term = *opts.Term
	} else {
		input, err := r.Prompt.Input("What do you want to search for")
		if err != nil {
			return nil, err
		}
		term = input
	}

	spaces, err := r.API.ListSpaces(ctx, webex.SpaceQuery{Type: spaceType, Max: opts.MaxSpaces})
	if err != nil {
		return nil, err
	}
	matches := search.Favorites(search.Spaces(spaces, term, opts.Mode))

	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal matches: %w", err)
	}
	fmt.Fprintln(r.Out, string(data))

	if opts.Save && r.Favorites != nil && len(matches) > 0 {
		if err := r.Favorites.Append(matches...); err != nil {
			return matches, fmt.Errorf("save favorites: %w", err)
		}
	}
	return matches, nil
}
