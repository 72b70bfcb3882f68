package main

import (
	"log"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/spf13/cobra"
)

// RootCmd запускает сервер, если подкоманда не указана
var RootCmd = &cobra.Command{
	Use:   "yatube [command] [flags]",
	Short: "Yatube: blog platform with groups, comments and author subscriptions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// загружаем .env из нашего config.go
		config.LoadEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), serveOpts)
	},
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
