package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/cardcourier/internal/types"
	"github.com/user/cardcourier/internal/workflow"
)

func init() {
	rootCmd.AddCommand(cardsCmd)

	cardsCmd.Flags().StringP("out", "o", "", "write the card to this file instead of stdout")
	cardsCmd.Flags().String("message", "", "message id to copy (skips the prompt)")
	cardsCmd.Flags().Int("max", 0, "number of recent rooms to scan (default from config)")
}

// writeOutput runs render into memory and writes the result to path only
// when render succeeds, so a failed run leaves no file behind.
func writeOutput(path string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Find a card posted in a recent room and print its JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cfg, err := newRunner(cmd)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		messageID, _ := cmd.Flags().GetString("message")
		maxSpaces, _ := cmd.Flags().GetInt("max")
		if maxSpaces == 0 {
			maxSpaces = cfg.Spaces.FindMax
		}
		opts := workflow.FindOptions{
			MaxSpaces: maxSpaces,
			MessageID: types.MessageID(messageID),
		}

		if out == "" {
			_, err = runner.FindCards(cmd.Context(), opts)
			return finish(runner, err)
		}

		var result *workflow.FindResult
		err = writeOutput(out, func(w io.Writer) error {
			runner.Out = w
			var err error
			result, err = runner.FindCards(cmd.Context(), opts)
			return err
		})
		if err != nil {
			return finish(runner, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Card from %s written to %s\n", result.Message.RoomTitle, out)
		return finish(runner, nil)
	},
}
