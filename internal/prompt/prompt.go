// Package prompt asks the user for a token, free text, or one item from a
// list. Workflows depend on the Provider interface so they can run without
// a terminal in tests.
package prompt

import (
	"errors"

	"github.com/user/cardcourier/internal/types"
)

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("prompt cancelled")
	// ErrNoChoices is returned by Select when nothing is selectable.
	ErrNoChoices = errors.New("no choices to select from")
)

// Provider presents questions to a human.
type Provider interface {
	// Password reads a secret without echoing it.
	Password(message string) (string, error)
	// Input reads one line of free text.
	Input(message string) (string, error)
	// Select returns the Value of exactly one non-separator choice.
	Select(message string, choices []types.Choice) (string, error)
}

// Grouped puts favorites above the general list with a separator between
// them. Without favorites the general list is returned unchanged.
func Grouped(favorites []types.FavoriteEntry, general []types.Choice) []types.Choice {
	if len(favorites) == 0 {
		return general
	}
	choices := make([]types.Choice, 0, len(favorites)+1+len(general))
	for _, f := range favorites {
		choices = append(choices, types.Choice{Name: f.Name, Value: string(f.Value)})
	}
	choices = append(choices, types.Choice{Separator: true})
	return append(choices, general...)
}

// Selectable reports whether at least one choice can be picked.
func Selectable(choices []types.Choice) bool {
	for _, c := range choices {
		if !c.Separator {
			return true
		}
	}
	return false
}
