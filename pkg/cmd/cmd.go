// Package cmd 定义 sitevault 的命令行入口.
package cmd

import (
	contextPkg "context"

	"github.com/spf13/cobra"

	"github.com/yeisme/sitevault/pkg/app"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "sitevault",
		Short: "A static site publishing service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
)

func runServe() error {
	a := app.NewApp(configPath)
	defer a.Shutdown(contextPkg.Background())

	return a.Run()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerBackendCommands()
	registerMigrateCommand()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
