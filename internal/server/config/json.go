package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/flagx"
	"github.com/dmelo-dev/luzpalavra/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration for interval fields, which allows parsing both string
// values such as "24h" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr       string         `json:"endpoint_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	PayRefValidity     timex.Duration `json:"pay_ref_validity"`
	PaymentAPIURL      string         `json:"payment_api_url"`
	PaymentAPIToken    string         `json:"payment_api_token"`
	PushAPIURL         string         `json:"push_api_url"`
	PushAPIKey         string         `json:"push_api_key"`
	S3RootUser         string         `json:"s3_root_user"`
	S3RootPassword     string         `json:"s3_root_password"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
	PublicMediaBaseURL string         `json:"public_media_base_url"`
}

// parseJson overlays Config with values from the JSON file selected via
// the -c/-config flags. No flag means no JSON is loaded; a file that
// cannot be read or parsed panics. Empty JSON fields keep the values
// already in Config.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	overlay(&config.EndpointAddr, c.EndpointAddr)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.PaymentAPIURL, c.PaymentAPIURL)
	overlay(&config.PaymentAPIToken, c.PaymentAPIToken)
	overlay(&config.PushAPIURL, c.PushAPIURL)
	overlay(&config.PushAPIKey, c.PushAPIKey)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.PublicMediaBaseURL, c.PublicMediaBaseURL)

	if c.PayRefValidity.Duration != 0 {
		config.PayRefValidity = time.Duration(c.PayRefValidity.Duration)
	}
}
