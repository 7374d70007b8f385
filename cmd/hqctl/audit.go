package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

func newAuditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "audit", Short: "Consulta del audit log"}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list <cid>",
		Short: "Lista las entradas de un usuario en orden cronológico",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid := strings.TrimSpace(args[0])
			if cid == "" {
				return fmt.Errorf("cid is required")
			}
			return a.withConn(cmd.Context(), func(ctx context.Context, conn core.Conn) error {
				entries, err := conn.AuditLog().ListByItem(ctx, types.UserItem(cid))
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(entries)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TIMESTAMP\tACTOR\tMESSAGE\tID")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.Format(time.RFC3339Nano), e.Actor, e.Message, e.ID)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "salida JSON con before/after")

	cmd.AddCommand(list)
	return cmd
}
