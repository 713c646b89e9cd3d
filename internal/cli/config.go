package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Dugout Pulse configuration",
	Long: `Manage Dugout Pulse configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PULSE_*, plus ROSTER_URL, RECRUITS_URL,
   SLACK_WEBHOOK_URL, OPENAI_API_KEY)
3. Config file (~/.dugoutpulse/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the fully layered configuration as YAML. Secrets are redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if file := viper.ConfigFileUsed(); file != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", file)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		// Sheet URLs and the webhook grant access; never print them.
		if cfg.Alerts.SlackWebhookURL != "" {
			cfg.Alerts.SlackWebhookURL = "<redacted>"
		}
		if cfg.Roster.URL != "" {
			cfg.Roster.URL = "<redacted>"
		}
		if cfg.Roster.RecruitsURL != "" {
			cfg.Roster.RecruitsURL = "<redacted>"
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
