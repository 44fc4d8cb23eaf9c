package main

import (
	"github.com/spf13/cobra"

	"github.com/user/cardcourier/internal/aggregate"
	"github.com/user/cardcourier/internal/config"
	"github.com/user/cardcourier/internal/favorites"
	"github.com/user/cardcourier/internal/prompt"
	"github.com/user/cardcourier/internal/workflow"
	"github.com/user/cardcourier/pkg/webex"
)

// favoritesStore opens the favorites file named by the config.
func favoritesStore(cfg *config.Config) *favorites.Store {
	var opts []favorites.Option
	if cfg.Favorites.AsyncWrites {
		opts = append(opts, favorites.WithAsyncWrites())
	}
	return favorites.NewStore(cfg.Favorites.Path, opts...)
}

// newRunner loads config, sets up logging, resolves the token and wires a
// workflow runner that writes to the command's output.
func newRunner(cmd *cobra.Command) (*workflow.Runner, *config.Config, error) {
	cfg := loadConfig()
	setupLogging(cfg)

	policy, err := aggregate.ParsePolicy(cfg.FanOut)
	if err != nil {
		return nil, nil, err
	}

	term := prompt.NewTerminal()
	token, err := workflow.ResolveToken(cfg.Token, term)
	if err != nil {
		return nil, nil, err
	}

	client := webex.New(&webex.Config{
		BaseURL: cfg.BaseURL,
		Token:   token,
		Timeout: cfg.HTTPTimeout(),
	})

	return &workflow.Runner{
		API:       client,
		Prompt:    term,
		Favorites: favoritesStore(cfg),
		Policy:    policy,
		Out:       cmd.OutOrStdout(),
	}, cfg, nil
}

// finish waits for pending favorites writes. The flow's own error wins.
func finish(r *workflow.Runner, err error) error {
	if flushErr := r.Favorites.Flush(); err == nil {
		return flushErr
	}
	return err
}
