package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/resep-nusantara/internal/service"
)

func newShareCmd() *cobra.Command {
	var (
		via      string
		copyLink bool
	)
	share := &cobra.Command{
		Use:   "share <id>",
		Short: "Bagikan link resep",
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
			link := service.BuildShareLink(a.origin(), *recipe)
			out := cmd.OutOrStdout()

			var sharers []service.Sharer
			if via != "" {
				sharers = append(sharers, service.NewBrowserSharer(via))
			}
			res := a.shares.Share(cmd.Context(), link, sharers...)
			switch {
			case res.Method == service.MethodNative && res.Cancelled:
				fmt.Fprintln(out, "Share dibatalkan.")
			case res.Method == service.MethodNative:
				fmt.Fprintf(out, "Dibagikan via %s\n", res.Via)
			default:
				fmt.Fprintf(out, "Share %s\n%s\n", link.Title, link.URL)
				for _, t := range link.Targets {
					fmt.Fprintf(out, "  %-9s %s\n", t.Name, t.URL)
				}
			}

			if !copyLink {
				return nil
			}
			copied := a.shares.CopyLink(cmd.Context(), link.URL, clipboard(), service.ManualCopy{W: out})
			switch {
			case !copied.Copied:
				return errors.New("link tidak dapat disalin")
			case copied.Method != "manual":
				fmt.Fprintln(out, "✓ Link berhasil disalin!")
			}
			return nil
		},
	}
	share.Flags().StringVar(&via, "via", "", "buka target share (WhatsApp, Facebook, Twitter)")
	share.Flags().BoolVar(&copyLink, "copy", false, "salin link ke clipboard")
	return share
}
