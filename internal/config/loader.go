package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnv names the variable pointing at an optional YAML config file.
const FileEnv = "SCORING_CONFIG"

// envKeys maps deployment environment variables to config keys. Names match
// the ones already set on the deployed functions.
var envKeys = map[string]string{
	"ADDR":               "addr",
	"LOG_LEVEL":          "log_level",
	"LOG_FORMAT":         "log_format",
	"UPLOAD_BUCKET":      "bucket",
	"STAGING_PREFIX":     "staging_prefix",
	"PRESIGN_TTL":        "presign_ttl",
	"UPLOAD_ACL":         "upload_acl",
	"AUTO_DELETE":        "auto_delete",
	"AWS_REGION":         "region",
	"S3_ENDPOINT":        "s3_endpoint",
	"S3_ACCESS_KEY":      "s3_access_key",
	"S3_SECRET_KEY":      "s3_secret_key",
	"BEDROCK_TEMP":       "temperature",
	"MAX_TOKENS":         "max_tokens",
	"LLAMA_PROFILE_ARN":  "llama_profile_arn",
	"GEMINI_API_KEY":     "gemini_api_key",
	"REDIS_ADDR":         "redis_addr",
	"WORKER_CONCURRENCY": "worker_concurrency",
	"BASE_PATH":          "base_path",
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file named by SCORING_CONFIG, if set
//  3. environment variables listed in envKeys
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// unknown variables map to "" and are skipped by the provider
	envProvider := env.Provider("", ".", func(s string) string {
		return envKeys[s]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every entry point relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Bucket) == "":
		return fmt.Errorf("%w: bucket must not be empty", ErrInvalidConfig)
	case c.PresignTTLSeconds <= 0:
		return fmt.Errorf("%w: presign_ttl must be > 0", ErrInvalidConfig)
	case c.MaxTokens <= 0:
		return fmt.Errorf("%w: max_tokens must be > 0", ErrInvalidConfig)
	case c.WorkerConcurrency < 1:
		return fmt.Errorf("%w: worker_concurrency must be >= 1", ErrInvalidConfig)
	}
	return nil
}
