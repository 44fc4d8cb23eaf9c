package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/cardcourier/internal/types"
)

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesClearCmd)
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite rooms",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite rooms, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		entries, err := favoritesStore(cfg).Load()
		if err != nil {
			return fmt.Errorf("load favorites: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tROOM ID")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Value)
		}
		return w.Flush()
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <room-id> <name>",
	Short: "Add a room to the top of the favorites",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		store := favoritesStore(cfg)
		added, err := store.PrependIfAbsent(types.FavoriteEntry{Name: args[1], Value: types.SpaceID(args[0])})
		if err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		if err := store.Flush(); err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		if !added {
			fmt.Fprintf(os.Stdout, "Room %s is already a favorite.\n", args[0])
			return nil
		}
		fmt.Fprintf(os.Stdout, "Added %q.\n", args[1])
		return nil
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		store := favoritesStore(cfg)
		if err := store.Save([]types.FavoriteEntry{}); err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
		if err := store.Flush(); err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
		fmt.Println("Favorites cleared.")
		return nil
	},
}
