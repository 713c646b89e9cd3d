package model

import "time"

// Config is the full runtime configuration.
type Config struct {
	Roster  RosterConfig  `yaml:"roster"`
	Sources SourcesConfig `yaml:"sources"`
	Grading GradingConfig `yaml:"grading"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Run     RunConfig     `yaml:"run"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Digest  DigestConfig  `yaml:"digest"`
}

// RosterConfig points at the published-sheet CSV exports.
type RosterConfig struct {
	URL         string        `yaml:"url"`
	RecruitsURL string        `yaml:"recruits_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SourcesConfig configures the stat provider adapters.
type SourcesConfig struct {
	MLBBaseURL     string        `yaml:"mlb_base_url"`
	NCAABaseURL    string        `yaml:"ncaa_base_url"`
	AdapterTimeout time.Duration `yaml:"adapter_timeout"`
	UserAgent      string        `yaml:"user_agent"`
	RatePerHost    float64       `yaml:"rate_per_host"`
	Burst          int           `yaml:"burst"`

	// Per-school feed URLs; a school absent from a map is NotFound for
	// that adapter and the chain falls through.
	SidearmFeeds       map[string]string `yaml:"sidearm_feeds"`
	StatBroadcastFeeds map[string]string `yaml:"statbroadcast_feeds"`
	NCAATeamPages      map[string]string `yaml:"ncaa_team_pages"`

	// SchoolChains overrides the default NCAA fallback order per school,
	// as adapter names (e.g. ["statbroadcast", "ncaa.org"]).
	SchoolChains map[string][]string `yaml:"school_chains"`
}

// GradingConfig carries the grade thresholds. Innings thresholds are in outs.
type GradingConfig struct {
	StandoutHits        int `yaml:"standout_hits"`
	StandoutRBI         int `yaml:"standout_rbi"`
	GoodHits            int `yaml:"good_hits"`
	SoftFlagAtBats      int `yaml:"soft_flag_at_bats"`
	StandoutStrikeouts  int `yaml:"standout_strikeouts"`
	QualityStartOuts    int `yaml:"quality_start_outs"`
	QualityStartMaxER   int `yaml:"quality_start_max_er"`
	CleanInningsOuts    int `yaml:"clean_innings_outs"`
	SoftFlagEarnedRuns  int `yaml:"soft_flag_earned_runs"`
	SoftFlagMaxOuts     int `yaml:"soft_flag_max_outs"`
	OnBaseAlertCount    int `yaml:"on_base_alert_count"`
	OnBaseAlertMaxTier  int `yaml:"on_base_alert_max_tier"`
}

// AlertsConfig configures the notification sink.
type AlertsConfig struct {
	Enabled         bool          `yaml:"enabled"`
	SlackWebhookURL string        `yaml:"slack_webhook_url"`
	Timeout         time.Duration `yaml:"timeout"`
	LedgerPath      string        `yaml:"ledger_path"`
}

// RunConfig bounds a single pipeline run.
type RunConfig struct {
	Deadline    time.Duration `yaml:"deadline"`
	Concurrency int           `yaml:"concurrency"`
}

// OutputConfig locates the rendered documents.
type OutputConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
	Verbose      bool   `yaml:"verbose"`
}

// HistoryConfig configures window aggregation.
type HistoryConfig struct {
	Window7DPath     string `yaml:"window_7d_path"`
	Window30DPath    string `yaml:"window_30d_path"`
	WindowSeasonPath string `yaml:"window_season_path"`
	MinPlateAppear   int    `yaml:"min_plate_appearances"`
	MinOuts          int    `yaml:"min_outs"`
}

// DigestConfig configures the optional LLM recap. It never affects grading.
type DigestConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the baseline configuration before file, env and
// flag overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		Roster: RosterConfig{
			Timeout: 30 * time.Second,
		},
		Sources: SourcesConfig{
			MLBBaseURL:     "https://statsapi.mlb.com",
			NCAABaseURL:    "https://stats.ncaa.org",
			AdapterTimeout: 15 * time.Second,
			UserAgent:      "DugoutPulse/1.0 (+https://github.com/svsports/dugoutpulse)",
			RatePerHost:    2,
			Burst:          4,
		},
		Grading: GradingConfig{
			StandoutHits:       3,
			StandoutRBI:        3,
			GoodHits:           2,
			SoftFlagAtBats:     4,
			StandoutStrikeouts: 5,
			QualityStartOuts:   18, // 6.0 IP
			QualityStartMaxER:  3,
			CleanInningsOuts:   9, // 3.0 IP
			SoftFlagEarnedRuns: 3,
			SoftFlagMaxOuts:    12, // under 4.0 IP
			OnBaseAlertCount:   3,
			OnBaseAlertMaxTier: 2,
		},
		Alerts: AlertsConfig{
			Enabled:    true,
			Timeout:    10 * time.Second,
			LedgerPath: "data/alert_ledger.json",
		},
		Run: RunConfig{
			Deadline:    4 * time.Minute,
			Concurrency: 8,
		},
		Output: OutputConfig{
			SnapshotPath: "data/current_pulse.json",
		},
		History: HistoryConfig{
			Window7DPath:     "data/window_7d.json",
			Window30DPath:    "data/window_30d.json",
			WindowSeasonPath: "data/window_season.json",
			MinPlateAppear:   8,
			MinOuts:          9,
		},
		Digest: DigestConfig{
			Model: "gpt-4o-mini",
			Path:  "data/daily_digest.md",
		},
	}
}
