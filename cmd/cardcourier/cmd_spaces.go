package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/cardcourier/internal/search"
	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/internal/workflow"
)

func init() {
	rootCmd.AddCommand(spacesCmd)

	spacesCmd.Flags().String("type", "", "room type: direct, group or both (prompted when omitted)")
	spacesCmd.Flags().String("term", "", "text to look for in room titles (prompted when omitted)")
	spacesCmd.Flags().Bool("fuzzy", false, "fuzzy match titles instead of substring")
	spacesCmd.Flags().Bool("save", false, "append every match to favorites")
	spacesCmd.Flags().Int("max", 0, "number of rooms to fetch (default from config, 0 for the API default)")
}

// parseSpaceType maps the --type flag to a room type.
func parseSpaceType(s string) (types.SpaceType, error) {
	switch s {
	case "direct":
		return types.SpaceTypeDirect, nil
	case "group":
		return types.SpaceTypeGroup, nil
	case "both", "":
		return types.SpaceTypeAny, nil
	default:
		return "", fmt.Errorf("unknown room type %q (want direct, group or both)", s)
	}
}

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "Search rooms by title and print them as favorites entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cfg, err := newRunner(cmd)
		if err != nil {
			return err
		}

		opts := workflow.SearchOptions{MaxSpaces: cfg.Spaces.SearchMax}
		if cmd.Flags().Changed("type") {
			raw, _ := cmd.Flags().GetString("type")
			spaceType, err := parseSpaceType(raw)
			if err != nil {
				return err
			}
			opts.Type = &spaceType
		}
		if cmd.Flags().Changed("term") {
			term, _ := cmd.Flags().GetString("term")
			opts.Term = &term
		}
		if fuzzy, _ := cmd.Flags().GetBool("fuzzy"); fuzzy {
			opts.Mode = search.Fuzzy
		}
		if maxSpaces, _ := cmd.Flags().GetInt("max"); maxSpaces > 0 {
			opts.MaxSpaces = maxSpaces
		}
		opts.Save, _ = cmd.Flags().GetBool("save")

		_, err = runner.SearchSpaces(cmd.Context(), opts)
		return finish(runner, err)
	},
}
