// Package config holds process configuration. It is read once at startup and
// passed explicitly to every component; nothing reads the environment later.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address for cmd/api.
	Addr string `koanf:"addr"`

	// LogLevel is one of debug, info, warn, error. LogFormat is json or console.
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Bucket receives uploads and holds job results.
	Bucket string `koanf:"bucket"`
	// StagingPrefix is where evaluation uploads must live.
	StagingPrefix string `koanf:"staging_prefix"`
	// PresignTTLSeconds bounds presigned upload URLs.
	PresignTTLSeconds int `koanf:"presign_ttl"`
	// UploadACL is an optional canned ACL applied to presigned uploads.
	UploadACL string `koanf:"upload_acl"`
	// AutoDelete allows removal of a source object after a final run.
	AutoDelete bool `koanf:"auto_delete"`

	Region      string `koanf:"region"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`

	// Temperature and MaxTokens apply to every generation request.
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
	// LlamaProfileARN is the inference profile used for every Llama 3 model id.
	LlamaProfileARN string `koanf:"llama_profile_arn"`
	// GeminiAPIKey enables gemini-* model ids when set.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// RedisAddr enables asynchronous evaluation jobs when set.
	RedisAddr         string `koanf:"redis_addr"`
	WorkerConcurrency int    `koanf:"worker_concurrency"`

	// BasePath is a custom-domain mapping prefix the Lambda entry point
	// removes before routing. API Gateway stage names are removed regardless.
	BasePath string `koanf:"base_path"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Addr:              ":8000",
		LogLevel:          "info",
		LogFormat:         "json",
		Bucket:            "my-model-evalution",
		StagingPrefix:     "temp2/",
		PresignTTLSeconds: 900,
		AutoDelete:        true,
		Region:            "us-east-1",
		Temperature:       0.7,
		MaxTokens:         300,
		LlamaProfileARN:   "arn:aws:bedrock:us-east-1:349440382087:inference-profile/us.meta.llama3-1-8b-instruct-v1:0",
		WorkerConcurrency: 5,
	}
}

// PresignTTL is PresignTTLSeconds as a duration.
func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.PresignTTLSeconds) * time.Second
}
