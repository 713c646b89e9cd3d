package cli

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/svsports/dugoutpulse/internal/model"
)

// loadConfig layers the viper state (file + PULSE_* env) over the defaults.
// Secrets come straight from the environment, never from the config file.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if url := os.Getenv("ROSTER_URL"); url != "" {
		cfg.Roster.URL = url
	}
	if url := os.Getenv("RECRUITS_URL"); url != "" {
		cfg.Roster.RecruitsURL = url
	}
	if hook := os.Getenv("SLACK_WEBHOOK_URL"); hook != "" {
		cfg.Alerts.SlackWebhookURL = hook
	}
	cfg.Digest.APIKey = os.Getenv("OPENAI_API_KEY")

	if cfg.Roster.URL == "" {
		return nil, fmt.Errorf("no roster URL configured (set roster.url or ROSTER_URL)")
	}
	return cfg, nil
}
