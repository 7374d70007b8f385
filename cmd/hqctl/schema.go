package main

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/cobra"

	migrations "github.com/dropDatabas3/menahq/migrations/postgres"
)

// newSchemaCmd imprime el esquema embebido, para aplicarlo con psql.
func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Imprime el esquema SQL de Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := fs.Glob(migrations.FS, "*.sql")
			if err != nil {
				return err
			}
			sort.Strings(names)
			for _, n := range names {
				b, err := fs.ReadFile(migrations.FS, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n%s\n", n, b)
			}
			return nil
		},
	}
}
