package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pagos/internal/cache"
	"pagos/internal/router"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local web UI (login, payments, checkout, invoices)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			if addr != "" {
				d.cfg.Serve.Addr = addr
			}

			db, err := cache.Open(d.cfg.Cache.Path)
			if err != nil {
				log.Printf("[pagos] cache disabled: %v", err)
				db = nil
			}

			engine := router.Setup(d.cfg, d.client, d.store, db)
			srv := &http.Server{
				Addr:         d.cfg.Serve.Addr,
				Handler:      engine,
				ReadTimeout:  d.cfg.Serve.ReadTimeout,
				WriteTimeout: d.cfg.Serve.WriteTimeout,
			}

			go func() {
				log.Printf("[pagos] web UI on http://%s", d.cfg.Serve.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("listen: %v", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			log.Println("[pagos] shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to 127.0.0.1:8099)")
	return cmd
}
