package main

import (
	"fmt"

	"github.com/spf13/cobra"

	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "keys", Short: "Claves de firma"}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Genera una clave Ed25519 (PKCS#8 PEM) para MENAHQ_API_JWT_KEY",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ks, err := jwtx.GenerateKeySet()
			if err != nil {
				return err
			}
			pem, err := ks.PrivatePEM()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# kid: %s\n%s", ks.KID, pem)
			return nil
		},
	})
	return cmd
}
