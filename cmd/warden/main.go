package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/warden/internal/interfaces/cli/migrate"
	"github.com/orris-inc/warden/internal/interfaces/cli/server"
	"github.com/orris-inc/warden/internal/interfaces/cli/superuser"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "warden",
		Short: "Warden - identity, permissions and subscriptions service",
		Long:  `Warden serves authentication, role based permissions, organizations and subscription entitlements over HTTP.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		superuser.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
