package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "Kelola resep favorit",
	}
	favorites.AddCommand(newFavoritesListCmd(), newFavoritesToggleCmd())
	return favorites
}

func newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Tampilkan resep favorit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.favorites.ListFavorites()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Belum ada resep favorit.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAMA\tKATEGORI\tWAKTU")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d min\n", e.RecipeID, e.Name, e.CategoryLabel(), e.PrepTime)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d Resep Favorit\n", len(entries))
			return nil
		},
	}
}

func newFavoritesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Tambah atau hapus resep dari favorit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			recipe, err := a.recipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			favorited, err := a.favorites.ToggleFavorite(cmd.Context(), *recipe)
			if err != nil {
				return err
			}

			if favorited {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ditambahkan ke favorit (%d)\n", recipe.Name, a.favorites.Count())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s dihapus dari favorit (%d)\n", recipe.Name, a.favorites.Count())
			}
			return nil
		},
	}
}
