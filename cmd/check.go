package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/psds-microservice/blog-platform/internal/config"
	"github.com/psds-microservice/blog-platform/internal/logger"
	"github.com/psds-microservice/blog-platform/internal/strapi"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check Strapi runtime config and print its public part",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		log, err := logger.New("info", "console", debug)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer log.Sync()

		rc := config.ResolveFromOS()
		strapi.Check(log, rc)
		return printCheck(cmd.OutOrStdout(), rc)
	},
}

// printCheck печатает публичный конфиг и статус. Неполный конфиг — не ошибка.
func printCheck(w io.Writer, rc config.RuntimeConfig) error {
	out, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\nupstream: %s\n", out, strapi.Status(rc))
	return err
}
