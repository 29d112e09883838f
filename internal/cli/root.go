package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
	backend    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "quiz-builder",
		Short:        "Author multiple-choice quizzes, take them and review past attempts",
		SilenceUsage: true,
	}

	// empty flags defer to the config file
	cmd.PersistentFlags().StringVar(&port, "port", os.Getenv("PORT"), "port to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&backend, "storage", os.Getenv("QUIZ_STORAGE"), "storage backend: memory, sqlite, redis or postgres")
	cmd.AddCommand(NewServeCmd(&configPath, &port, &backend))
	cmd.AddCommand(NewShellCmd(&configPath, &backend))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
