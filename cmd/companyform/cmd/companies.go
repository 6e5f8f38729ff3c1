package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var companiesJSON bool

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List catalog companies in catalog order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if companiesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(appCatalog.Companies())
		}
		for _, key := range appCatalog.Companies() {
			fields, _ := appCatalog.Normalized(key)
			fmt.Fprintf(out, "%s\t%d fields\n", key, len(fields))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(companiesCmd)
	companiesCmd.Flags().BoolVar(&companiesJSON, "json", false, "print a JSON array")
}
