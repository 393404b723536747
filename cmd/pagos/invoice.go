package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagos/internal/invoice"
)

func invoiceCmd() *cobra.Command {
	var out string
	var credit bool

	cmd := &cobra.Command{
		Use:   "invoice [id]",
		Short: "Generate the invoice (or credit note) HTML for a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			p, err := d.client.Payment(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			kind := invoice.KindInvoice
			if credit {
				kind = invoice.KindCreditNote
			}
			if out == "" {
				out = fmt.Sprintf("factura-%s.html", p.ID)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := invoice.Render(f, kind, *p); err != nil {
				return err
			}
			fmt.Printf("Comprobante generado en %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to factura-<id>.html)")
	cmd.Flags().BoolVar(&credit, "credit-note", false, "Generate a credit note instead of an invoice")
	return cmd
}
