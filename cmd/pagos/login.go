package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pagos/internal/api"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the Pagos API and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Contraseña: ")
			}
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("Completá email y contraseña.")
			}

			sess, err := d.client.Login(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				if errors.Is(err, api.ErrInvalidCredentials) {
					return errors.New("Credenciales inválidas.")
				}
				return errors.New("Ocurrió un error inesperado.")
			}
			if err := d.store.Save(sess); err != nil {
				return err
			}
			fmt.Printf("Sesión iniciada como %s (%s)\n", sess.Name, sess.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			if err := d.store.Clear(); err != nil {
				return err
			}
			fmt.Println("Sesión cerrada.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			sess, err := d.store.Current()
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> rol=%s id=%s\n", sess.Name, sess.Email, sess.Role, sess.UserID)
			if exp, ok := d.store.ExpiresAt(); ok {
				if exp.Before(time.Now()) {
					fmt.Println("La sesión expiró; volvé a iniciar sesión.")
				} else {
					fmt.Printf("La sesión expira %s\n", exp.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
