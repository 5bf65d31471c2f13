package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading with defaults only", func() {
			clearEnv(t)

			cfg, err := config.Load()

			convey.Convey("Then the deployed defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Bucket, convey.ShouldEqual, "my-model-evalution")
				convey.So(cfg.PresignTTL(), convey.ShouldEqual, 900*time.Second)
				convey.So(cfg.StagingPrefix, convey.ShouldEqual, "temp2/")
				convey.So(cfg.AutoDelete, convey.ShouldBeTrue)
				convey.So(cfg.MaxTokens, convey.ShouldEqual, 300)
				convey.So(cfg.Temperature, convey.ShouldEqual, 0.7)
				convey.So(cfg.UploadACL, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading with environment variables", func() {
			clearEnv(t)
			t.Setenv("UPLOAD_BUCKET", "evals")
			t.Setenv("PRESIGN_TTL", "60")
			t.Setenv("AUTO_DELETE", "0")
			t.Setenv("BEDROCK_TEMP", "0.2")
			t.Setenv("UPLOAD_ACL", "private")
			t.Setenv("BASE_PATH", "/scoring")

			cfg, err := config.Load()

			convey.Convey("Then they override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Bucket, convey.ShouldEqual, "evals")
				convey.So(cfg.PresignTTLSeconds, convey.ShouldEqual, 60)
				convey.So(cfg.AutoDelete, convey.ShouldBeFalse)
				convey.So(cfg.Temperature, convey.ShouldEqual, 0.2)
				convey.So(cfg.UploadACL, convey.ShouldEqual, "private")
				convey.So(cfg.BasePath, convey.ShouldEqual, "/scoring")
			})
		})

		convey.Convey("When loading with a YAML file and env together", func() {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "scoring.yaml")
			err := os.WriteFile(path, []byte("bucket: from-file\nmax_tokens: 512\nlog_level: debug\n"), 0o600)
			convey.So(err, convey.ShouldBeNil)
			t.Setenv(config.FileEnv, path)
			t.Setenv("MAX_TOKENS", "128")

			cfg, err := config.Load()

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Bucket, convey.ShouldEqual, "from-file")
				convey.So(cfg.MaxTokens, convey.ShouldEqual, 128)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When a value fails validation", func() {
			clearEnv(t)
			t.Setenv("PRESIGN_TTL", "0")

			_, err := config.Load()

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearEnv(t)
			t.Setenv(config.FileEnv, filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// clearEnv blanks every variable the loader reads for the rest of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.FileEnv, "ADDR", "LOG_LEVEL", "LOG_FORMAT", "UPLOAD_BUCKET", "STAGING_PREFIX",
		"PRESIGN_TTL", "UPLOAD_ACL", "AUTO_DELETE", "AWS_REGION", "S3_ENDPOINT",
		"S3_ACCESS_KEY", "S3_SECRET_KEY", "BEDROCK_TEMP", "MAX_TOKENS", "LLAMA_PROFILE_ARN",
		"GEMINI_API_KEY", "REDIS_ADDR", "WORKER_CONCURRENCY",
		"BASE_PATH",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
