package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/sitevault/pkg/configs"
)

// registerConfigsCommands 注册配置检查子命令.
func registerConfigsCommands() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config subcommands",
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "print the path of the config file in use",
			RunE:  runConfigPath,
		},
		&cobra.Command{
			Use:   "debug",
			Short: "print the resolved config values",
			RunE:  runConfigDebug,
		},
	)

	rootCmd.AddCommand(configCmd)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if err := configs.InitConfig(configPath); err != nil {
		return err
	}

	used := configs.GetViper().ConfigFileUsed()
	if used == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "no config file used (defaults and env only)")

		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), used)

	return nil
}

func runConfigDebug(cmd *cobra.Command, args []string) error {
	if err := configs.InitConfig(configPath); err != nil {
		return err
	}

	// --debug 时附带 viper 的内部状态
	if debug {
		configs.GetViper().Debug()
	}

	b, err := json.MarshalIndent(configs.GetConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(b))

	return nil
}
