package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/flagx"
	"github.com/dmelo-dev/luzpalavra/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify intervals either as strings like
// "200ms" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	DatabasePath      string         `json:"database_path"`
	SpeechResumeGrace timex.Duration `json:"speech_resume_grace"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c/-config flags. Missing file path means no JSON is loaded.
// Read or unmarshal errors panic; intended usage is
// defaults -> parseJson -> parseFlags, later stages overriding earlier
// ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.SpeechResumeGrace.Duration != 0 {
		cfg.SpeechResumeGrace = time.Duration(jc.SpeechResumeGrace.Duration)
	}
}
