package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var fieldsJSON bool

var fieldsCmd = &cobra.Command{
	Use:   "fields <company>",
	Short: "Show the normalized fields of a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCompany(args[0]); err != nil {
			return err
		}
		fields, _ := appCatalog.Normalized(args[0])
		out := cmd.OutOrStdout()

		if fieldsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(fields)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tLABEL\tTYPE\tREQUIRED\tOPTIONS")
		for _, field := range fields {
			labels := make([]string, 0, len(field.Options))
			for _, opt := range field.Options {
				labels = append(labels, opt.Label())
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
				field.Name, field.Label, field.Type, field.Required(), strings.Join(labels, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "print the fields as JSON")
}
