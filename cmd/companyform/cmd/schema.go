package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-companyform/pkg/openapi"
)

var (
	schemaFormat  string
	schemaTitle   string
	schemaVersion string
)

var schemaCmd = &cobra.Command{
	Use:   "schema [company]",
	Short: "Export submission schemas as OpenAPI",
	Long: `Without a company, schema prints an OpenAPI 3 document with one
POST operation per company. With a company it prints that company's
submission schema as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			payload []byte
			err     error
		)
		if len(args) == 1 {
			payload, err = openapi.CompanySchemaJSON(appCatalog, args[0])
		} else {
			format := openapi.Format(schemaFormat)
			if format != openapi.FormatJSON && format != openapi.FormatYAML {
				return fmt.Errorf("unknown format %q (json or yaml)", schemaFormat)
			}
			payload, err = openapi.Document(cmd.Context(), appCatalog, openapi.Info{
				Title:   schemaTitle,
				Version: schemaVersion,
			}, format)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := out.Write(payload); err != nil {
			return err
		}
		if len(payload) > 0 && payload[len(payload)-1] != '\n' {
			_, err = fmt.Fprintln(out)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "json", "document format: json or yaml")
	schemaCmd.Flags().StringVar(&schemaTitle, "title", "", "document title")
	schemaCmd.Flags().StringVar(&schemaVersion, "doc-version", Version, "document version")
}
