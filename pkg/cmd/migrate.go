package cmd

import (
	contextPkg "context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.InitConfig(configPath); err != nil {
			return err
		}

		client, err := db.New(contextPkg.Background())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		if err := client.GetDB().AutoMigrate(
			&model.Site{},
			&model.Deployment{},
			&model.SiteEnvVar{},
		); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "migration complete")

		return nil
	},
}

// registerMigrateCommand 注册迁移命令.
func registerMigrateCommand() {
	rootCmd.AddCommand(migrateCmd)
}
