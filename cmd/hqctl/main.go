// hqctl: tareas administrativas fuera del flujo HTTP (roles, claves, tokens).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/menahq/internal/config"
	"github.com/dropDatabas3/menahq/internal/store"
)

type app struct {
	out        io.Writer
	configPath string
	open       func(cfg *config.Config) (*store.Opened, error)
}

func openStore(cfg *config.Config) (*store.Opened, error) {
	scfg := store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN}
	scfg.Postgres.MaxOpenConns = 2
	scfg.Postgres.MaxIdleConns = 1
	scfg.Postgres.ConnMaxLifetime = cfg.Storage.Postgres.ConnMaxLifetime
	return store.Open(scfg)
}

func (a *app) config() (*config.Config, error) {
	return config.Load(a.configPath)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hqctl",
		Short:         "CLI admin de MENA HQ",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "archivo YAML opcional (env CONFIG_PATH)")

	root.AddCommand(newRolesCmd(a), newKeysCmd(a), newTokenCmd(a), newAuditCmd(a), newSchemaCmd())
	return root
}

func main() {
	_ = godotenv.Load()
	a := &app{out: os.Stdout, configPath: os.Getenv("CONFIG_PATH"), open: openStore}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
