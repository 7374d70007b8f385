package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Tokens de sesión"}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <token>",
		Short: "Verifica un token con la clave configurada e imprime sus claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.JWT.Key) == "" {
				return fmt.Errorf("MENAHQ_API_JWT_KEY is not set")
			}
			ks, err := jwtx.ParseKeySet(cfg.JWT.Key)
			if err != nil {
				return err
			}
			claims, err := jwtx.NewVerifier(cfg.JWT.Issuer, ks).Verify(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(claims)
		},
	})
	return cmd
}
