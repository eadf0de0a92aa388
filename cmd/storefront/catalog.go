package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect product seed files",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a product seed file and list its products",
	Long: `Parses a YAML seed file with a top-level "products" list and validates every
entry. Falls back to the --catalog flag when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("catalog")
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no seed file given")
		}

		c, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE")
		for _, p := range c.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.PriceLabel())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %d products OK\n", c.Len())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(catalogCmd)
}
