package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pagos/internal/cache"
	"pagos/internal/models"
	"pagos/internal/payments"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List, inspect and export payments",
	}
	cmd.AddCommand(paymentsListCmd())
	cmd.AddCommand(paymentsShowCmd())
	return cmd
}

func paymentsListCmd() *cobra.Command {
	var (
		search, method, from, to, sortKey, csvPath string
		statuses                                   []string
		desc, offline                              bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List my payments with client-side filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}

			list, err := fetchPayments(cmd, d, offline)
			if err != nil {
				return err
			}

			f := payments.Filter{Search: search, Method: method, Statuses: statuses}
			if t, perr := time.Parse("2006-01-02", from); perr == nil {
				f.From = t
			}
			if t, perr := time.Parse("2006-01-02", to); perr == nil {
				f.To = t.Add(24*time.Hour - time.Second)
			}
			filtered := f.Apply(list)
			payments.Sort(filtered, sortKey, desc)

			if csvPath != "" {
				out, cerr := os.Create(csvPath)
				if cerr != nil {
					return cerr
				}
				defer out.Close()
				if werr := payments.WriteCSV(out, filtered); werr != nil {
					return werr
				}
				fmt.Printf("%d pagos exportados a %s\n", len(filtered), csvPath)
				return nil
			}

			printPayments(filtered)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Substring match on the counterparty")
	cmd.Flags().StringVar(&method, "method", "", "Filter by payment method")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Created-at lower bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Created-at upper bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortKey, "sort", payments.SortDate, "Sort key: date or amount")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read the local cache instead of the API")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the filtered set to a CSV file")
	return cmd
}

func paymentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one payment with its refunds and timeline",
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
			fmt.Printf("Pago %s — %s\n", p.ID, p.Counterparty)
			fmt.Printf("  Estado:     %s\n", p.Status)
			fmt.Printf("  Subtotal:   %s %.2f\n", p.Currency, p.AmountSubtotal)
			fmt.Printf("  Impuestos:  %s %.2f\n", p.Currency, p.Taxes)
			fmt.Printf("  Comisiones: %s %.2f\n", p.Currency, p.Fees)
			fmt.Printf("  Total:      %s %.2f\n", p.Currency, p.Total())
			if p.CUIT != "" {
				fmt.Printf("  CUIT:       %s\n", p.CUIT)
			}
			for _, r := range p.Refunds {
				fmt.Printf("  Reembolso %s: %.2f (%s)\n", r.ID, r.Amount, r.Status)
			}
			timeline, err := d.client.Timeline(cmd.Context(), p.ID)
			if err != nil {
				fmt.Println("  (no se pudo cargar el historial)")
				return nil
			}
			for _, e := range timeline {
				fmt.Printf("  %s  %s\n", e.CreatedAt.Format("02/01/2006 15:04"), e.Label())
			}
			return nil
		},
	}
}

// fetchPayments reads from the API (writing through to the cache) or, with
// offline set, straight from the cache.
func fetchPayments(cmd *cobra.Command, d *deps, offline bool) ([]models.Payment, error) {
	db, dbErr := cache.Open(d.cfg.Cache.Path)
	var repo *cache.PaymentRepository
	if dbErr == nil {
		repo = cache.NewPaymentRepository(db)
	}

	if offline {
		if repo == nil {
			return nil, dbErr
		}
		return repo.List()
	}

	list, err := d.client.MyPayments(cmd.Context())
	if err != nil {
		return nil, err
	}
	if repo != nil {
		_ = repo.PutAll(list)
	}
	return list, nil
}

func printPayments(list []models.Payment) {
	if len(list) == 0 {
		fmt.Println("Sin pagos.")
		return
	}
	fmt.Printf("%-12s %-10s %-24s %-14s %-16s %12s\n", "ID", "FECHA", "CONTRAPARTE", "MEDIO", "ESTADO", "TOTAL")
	for _, p := range list {
		fmt.Printf("%-12s %-10s %-24s %-14s %-16s %9s %.2f\n",
			p.ID, p.CreatedAt.Format("02/01/2006"), trim(p.Counterparty, 24), p.Method, p.Status, p.Currency, p.Total())
	}
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
