package config

import "time"

// Config holds runtime settings for the Luz da Palavra CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the account backend.
//   - DatabasePath: path of the local SQLite state file.
//   - SpeechResumeGrace: how long after a speech resume the player waits
//     before checking that audio actually restarted.
type Config struct {
	ServerBaseURL     string
	DatabasePath      string
	SpeechResumeGrace time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://api.luzdapalavra.app"
	c.DatabasePath = "luzpalavra.db"
	c.SpeechResumeGrace = 200 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
