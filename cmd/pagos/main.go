package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagos/config"
	"pagos/internal/api"
	"pagos/internal/session"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "pagos",
		Short:   "Pagos - terminal and local-web client for the Pagos payments API",
		Version: Version,
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(payCmd())
	rootCmd.AddCommand(invoiceCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps bundles what every command needs.
type deps struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
}

func loadDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(cfg.Session.Path)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, store)
	return &deps{cfg: cfg, store: store, client: client}, nil
}
