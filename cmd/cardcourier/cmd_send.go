package main

import (
	"github.com/spf13/cobra"

	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/internal/workflow"
)

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("room", "", "room id to send to (skips the room prompt)")
	sendCmd.Flags().String("file", "", "card file to send (skips the file prompt)")
	sendCmd.Flags().Int("max", 0, "number of recent rooms to offer (default from config)")
	sendCmd.Flags().Bool("no-favorites", false, "do not record the room in favorites")
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post a card file to a room",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cfg, err := newRunner(cmd)
		if err != nil {
			return err
		}

		room, _ := cmd.Flags().GetString("room")
		file, _ := cmd.Flags().GetString("file")
		maxSpaces, _ := cmd.Flags().GetInt("max")
		noFavorites, _ := cmd.Flags().GetBool("no-favorites")
		if maxSpaces == 0 {
			maxSpaces = cfg.Spaces.SendMax
		}

		_, err = runner.Send(cmd.Context(), workflow.SendOptions{
			CardsDir:       cfg.Cards.Dir,
			Extensions:     cfg.Cards.Extensions,
			MaxSpaces:      maxSpaces,
			RoomID:         types.SpaceID(room),
			File:           file,
			TrackFavorites: !noFavorites,
			AllowComments:  cfg.Cards.AllowComments,
		})
		return finish(runner, err)
	},
}
