package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

// rolesFile es el formato de roles.yaml.
type rolesFile struct {
	Roles []types.Role `yaml:"roles"`
}

func parseRoles(b []byte) ([]types.Role, error) {
	var f rolesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse roles: %w", err)
	}
	if len(f.Roles) == 0 {
		return nil, fmt.Errorf("no roles defined")
	}
	seen := map[string]bool{}
	for i := range f.Roles {
		r := &f.Roles[i]
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("role #%d: id is required", i+1)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("role %q defined twice", r.ID)
		}
		seen[r.ID] = true
		if r.Permissions == nil {
			r.Permissions = []string{}
		}
	}
	return f.Roles, nil
}

func newRolesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "roles", Short: "Gestión de roles"}

	var file string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Upsert de roles desde un YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				b   []byte
				err error
			)
			if file == "" {
				b, err = yaml.Marshal(rolesFile{Roles: types.DefaultRoles()})
			} else {
				b, err = os.ReadFile(file)
			}
			if err != nil {
				return err
			}
			roles, err := parseRoles(b)
			if err != nil {
				return err
			}
			return a.withConn(cmd.Context(), func(ctx context.Context, conn core.Conn) error {
				c := conn.Roles()
				for i := range roles {
					if err := c.Upsert(ctx, &roles[i]); err != nil {
						return fmt.Errorf("upsert %s: %w", roles[i].ID, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "upserted %s (%d permissions)\n", roles[i].ID, len(roles[i].Permissions))
				}
				return nil
			})
		},
	}
	seed.Flags().StringVarP(&file, "file", "f", "", "roles.yaml (vacío => roles por defecto)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConn(cmd.Context(), func(ctx context.Context, conn core.Conn) error {
				roles, err := conn.Roles().List(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tPERMISSIONS")
				for _, r := range roles {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, strings.Join(r.Permissions, ","))
				}
				return tw.Flush()
			})
		},
	}

	cmd.AddCommand(seed, list)
	return cmd
}

// withConn abre el store, toma una conexión y la libera al terminar.
func (a *app) withConn(ctx context.Context, fn func(ctx context.Context, conn core.Conn) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := a.config()
	if err != nil {
		return err
	}
	opened, err := a.open(cfg)
	if err != nil {
		return err
	}
	defer opened.Close()

	pool, err := opened.Provider.Pool(ctx)
	if err != nil {
		return err
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return fn(ctx, conn)
}
