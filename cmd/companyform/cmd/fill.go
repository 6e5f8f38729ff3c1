package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/renderers/tui"
)

var fillAttempts int

var fillCmd = &cobra.Command{
	Use:   "fill [company]",
	Short: "Fill a company form interactively",
	Long: `Fill prompts for every field of the company's form, validating each
answer as it is entered, and prints the accepted submission as JSON.
Without a company it asks which one to use first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := newGenerator()
		if err != nil {
			return err
		}

		var accepted *form.Submission
		ctrl := gen.Controller(form.WithSubmitHandler(func(s form.Submission) {
			accepted = &s
		}))
		if len(args) == 1 {
			if err := requireCompany(args[0]); err != nil {
				return err
			}
			ctrl.SelectCompany(args[0])
		}

		session := tui.New(tui.WithMaxAttempts(fillAttempts))
		if _, err := session.Fill(cmd.Context(), ctrl, appCatalog.Companies()); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Form discarded.")
				return nil
			}
			return err
		}
		if accepted == nil {
			return errors.New("submission was not recorded")
		}
		appLogger.Debug("interactive submission", zap.String("submission_id", accepted.ID))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"id":      accepted.ID,
			"company": accepted.Company,
			"values":  accepted.Values,
		})
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().IntVar(&fillAttempts, "attempts", 3, "prompts per field before giving up")
}
