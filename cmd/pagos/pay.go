package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pagos/internal/card"
	"pagos/internal/checkout"
	"pagos/internal/models"
)

func payCmd() *cobra.Command {
	var (
		method, number, name, exp, cvv, docType, doc string
	)

	cmd := &cobra.Command{
		Use:   "pay [id]",
		Short: "Pay a payment: wallet, or card with validated details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			flow, err := checkout.Load(cmd.Context(), d.client, args[0])
			if err != nil {
				return err
			}

			switch method {
			case "wallet":
				flow.SelectWallet()
			case "card", "debit":
				kind := models.MethodCreditCard
				if method == "debit" {
					kind = models.MethodDebitCard
				}
				form := card.Form{
					Number:         number,
					HolderName:     name,
					Expiry:         exp,
					CVV:            cvv,
					DocumentType:   docType,
					DocumentNumber: doc,
				}
				data, verr := form.CardData(kind, time.Now())
				if verr != nil {
					return verr
				}
				flow.SelectCard(data)
				fmt.Printf("Tarjeta %s\n", card.Mask(data.Number))
			default:
				return errors.New("elegí un medio de pago: --method wallet|card|debit")
			}

			p, err := flow.Purchase(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Pago %s: %s\n", p.ID, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Payment method: wallet, card or debit")
	cmd.Flags().StringVar(&number, "number", "", "Card number (16 digits)")
	cmd.Flags().StringVar(&name, "name", "", "Cardholder name")
	cmd.Flags().StringVar(&exp, "exp", "", "Expiry MM/YY")
	cmd.Flags().StringVar(&cvv, "cvv", "", "Security code (3 digits)")
	cmd.Flags().StringVar(&docType, "doc-type", models.DocDNI, "Document type: DNI, CUIL, CUIT or Pasaporte")
	cmd.Flags().StringVar(&doc, "doc", "", "Document number")
	return cmd
}
