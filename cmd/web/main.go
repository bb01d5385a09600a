package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/server"
	"github.com/de-tools/assessment-atlas/pkg/services/config"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Assessment Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to an atlas config file")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Report profile providing request defaults")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if profile != "" {
		settings.Profile = profile
	}
	if err := settings.ResolveProfile(); err != nil {
		return fmt.Errorf("failed to resolve report profile: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(settings.ZerologLevel()).With().Timestamp().Logger()

	level, err := domain.ParseDetailLevel(settings.DetailLevel)
	if err != nil {
		return err
	}

	registry := report.DefaultRegistry()
	logger.Info().Strs("agents", registry.ListAgents()).Msg("section agents registered")
	if settings.Profile != "" {
		logger.Info().Str("profile", settings.Profile).Msg("report profile applied")
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(settings.Server.Host, settings.Server.Port),
		Dependencies: server.Dependencies{
			Reports: report.NewService(registry),
			Defaults: report.Request{
				DetailLevel:  level,
				Agents:       settings.Agents,
				AgentTimeout: settings.AgentTimeout,
			},
			Logger: logger,
		},
	})

	return api.Start()
}
