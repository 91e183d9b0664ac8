package cli

import (
	"github.com/spf13/cobra"

	"callcenter-analysis-be/internal/client"
)

func newInvoiceCmd(a *app) *cobra.Command {
	var phone, year, month string
	cmd := &cobra.Command{
		Use:     "invoice",
		Short:   "Request a detailed invoice for a billing period",
		Example: `  console invoice --phone 5321234567 --year 2024 --month 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := renderer{out: a.stdout}
			wizard := client.NewInvoiceWizard(a.server, nil)
			view.system("filing invoice request for %s (%s/%s)...", phone, month, year)

			sr, err := wizard.Submit(cmd.Context(), phone, year, month)
			if err != nil {
				return err
			}
			scoreColor.Fprintf(a.stdout, "service request created: %s\n", sr)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "subscriber phone number (10-12 digits)")
	cmd.Flags().StringVar(&year, "year", "", "invoice year")
	cmd.Flags().StringVar(&month, "month", "", "invoice month (1-12)")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
