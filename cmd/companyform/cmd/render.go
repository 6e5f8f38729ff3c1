package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	companyform "github.com/goliatone/go-companyform"
)

var (
	renderRenderer string
	renderOutput   string
	renderValues   map[string]string
	renderValidate bool
	renderVariant  string
	renderTitle    string
)

var renderCmd = &cobra.Command{
	Use:   "render [company]",
	Short: "Render a company form as HTML or text",
	Long: `Render writes the form of a company using the named renderer
("vanilla" HTML by default, "tui" for a plain text summary). Without a
company only the selector is rendered.

Examples:
  companyform render "Acme Corp" --output acme.html
  companyform render Globex --renderer tui --set employee_id=GX-1 --validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var company string
		if len(args) == 1 {
			company = args[0]
			if err := requireCompany(company); err != nil {
				return err
			}
		}

		gen, err := newGenerator()
		if err != nil {
			return err
		}
		out, err := gen.Generate(cmd.Context(), companyform.Request{
			Company:  company,
			Renderer: renderRenderer,
			Values:   renderValues,
			Validate: renderValidate,
			Options: companyform.RenderOptions{
				Title: renderTitle,
				Theme: themeConfig(renderVariant),
			},
		})
		if err != nil {
			return err
		}

		if renderOutput == "" {
			_, err := cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", renderOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", renderOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderRenderer, "renderer", "r", "", "renderer to use (vanilla, tui)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().StringToStringVar(&renderValues, "set", nil, "prefill a field value (name=value)")
	renderCmd.Flags().BoolVar(&renderValidate, "validate", false, "validate every field and render the errors")
	renderCmd.Flags().StringVar(&renderVariant, "variant", "", "theme variant (overrides config)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "page title")
}
