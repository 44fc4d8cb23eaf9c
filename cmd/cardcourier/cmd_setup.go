package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/cardcourier/internal/config"
	"github.com/user/cardcourier/internal/prompt"
	"github.com/user/cardcourier/internal/types"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var fanOutChoices = []types.Choice{
	{Name: "fail-fast (stop on the first room that cannot be read)", Value: "fail-fast"},
	{Name: "best-effort (skip rooms that cannot be read)", Value: "best-effort"},
}

// ask shows current in brackets and keeps it when the answer is empty.
func ask(p prompt.Provider, label, current string) (string, error) {
	answer, err := p.Input(fmt.Sprintf("%s [%s]:", label, current))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Start from the file alone so env-only values are not persisted.
		cfg, err := config.LoadFile(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		term := prompt.NewTerminal()

		fmt.Println("cardcourier setup")
		fmt.Println("Press Enter to accept the value shown in brackets.")
		fmt.Println()

		token, err := term.Password("Webex token (leave empty to keep the current one):")
		if err != nil {
			return err
		}
		if token != "" {
			cfg.Token = token
		}

		if cfg.Cards.Dir, err = ask(term, "Cards directory", cfg.Cards.Dir); err != nil {
			return err
		}
		if cfg.Favorites.Path, err = ask(term, "Favorites file", cfg.Favorites.Path); err != nil {
			return err
		}

		fanOut, err := term.Select("When a room cannot be read while finding cards:", fanOutChoices)
		switch {
		case err == nil:
			cfg.FanOut = fanOut
		case !errors.Is(err, prompt.ErrCancelled):
			return err
		}

		if err := config.Save(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println()
		fmt.Println("Configuration saved to", cfgPath)
		return nil
	},
}
