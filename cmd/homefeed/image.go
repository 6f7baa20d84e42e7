package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/homefeed/pkg/imageref"
)

var imageCmd = &cobra.Command{
	Use:   "image <item-id>",
	Short: "Resolve the artwork for one item",
	Long: `Looks an item up in offline storage, then on the media server, and
prints which image it should show for the given orientation.

Examples:
  homefeed image 0123456789abcdef0123456789abcdef
  homefeed image 0123456789abcdef0123456789abcdef --orientation tall`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().StringP("orientation", "o", "wide", "Tile orientation (wide, tall)")
}

type imageResult struct {
	ItemID      string             `json:"item_id"`
	Orientation string             `json:"orientation"`
	Reference   imageref.Reference `json:"reference"`
	URL         string             `json:"url"`
}

func runImage(cmd *cobra.Command, args []string) error {
	flag, _ := cmd.Flags().GetString("orientation")
	o, err := imageref.ParseOrientation(flag)
	if err != nil {
		return err
	}

	a, err := stderrApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	item, err := a.lookup().LookupItem(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ref := imageref.Resolve(item, o)
	res := imageResult{
		ItemID:      item.ID,
		Orientation: o.String(),
		Reference:   ref,
		URL:         ref.URL(a.client.BaseURL()),
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), res)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Item:      %s (%s)\n", item.Name, item.Kind)
	fmt.Fprintf(w, "Target:    %s\n", ref.TargetID)
	fmt.Fprintf(w, "Category:  %s\n", ref.Category)
	fmt.Fprintf(w, "URL:       %s\n", res.URL)
	return nil
}
