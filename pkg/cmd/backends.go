package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/storage/kv"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
)

// listCommand 列出某类存储后端已注册的实现.
func listCommand(kind string, names func() []string) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   fmt.Sprintf("list registered %s backends", kind),
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s backends:\n", kind)
			for _, n := range names() {
				fmt.Fprintln(cmd.OutOrStdout(), "  - "+n)
			}
		},
	}
}

// registerBackendCommands 注册 db / kv / mq 的查询子命令.
func registerBackendCommands() {
	dbCmd := &cobra.Command{Use: "db", Short: "database backend commands"}
	dbCmd.AddCommand(listCommand("database", func() []string {
		types := db.GetRegisteredDBTypes()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		return names
	}))

	kvCmd := &cobra.Command{Use: "kv", Short: "key-value backend commands"}
	kvCmd.AddCommand(listCommand("kv", func() []string {
		types := kv.GetRegisteredKVTypes()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		return names
	}))

	mqCmd := &cobra.Command{Use: "mq", Short: "message queue backend commands"}
	mqCmd.AddCommand(listCommand("mq", func() []string {
		types := mq.GetRegisteredMQTypes()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		return names
	}))

	rootCmd.AddCommand(dbCmd, kvCmd, mqCmd)
}
