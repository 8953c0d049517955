package cmd

import (
	"github.com/spf13/cobra"
)

var (
	debug      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "blog-platform",
	Short: "Blog platform backend: runtime config for the Strapi-backed frontend",
	RunE:  runServe, // по умолчанию — запуск сервера
}

// Execute запускает корневую команду (Cobra CLI)
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config/config.yaml", "Path to config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
