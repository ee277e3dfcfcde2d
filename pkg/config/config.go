package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime-tunable for the file processing server:
// HTTP port, worker pool sizing, storage limits, the dedup cache's
// optional Redis backing, and tracing. Loaded from YAML with environment
// variables taking precedence over file values, and built-in defaults
// filling in whatever neither supplies.
type Config struct {
	Port int `yaml:"port"`

	LogLevel string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	Env      string `yaml:"env"`

	StorageDir  string `yaml:"storageDir"`
	MaxFileSize int64  `yaml:"maxFileSize"`

	CoreWorkers         int `yaml:"coreWorkers"`
	MaxWorkers          int `yaml:"maxWorkers"`
	QueueCapacity       int `yaml:"queueCapacity"`
	ResizeThreshold     int `yaml:"resizeThreshold"`
	IdleTimeoutSeconds  int `yaml:"idleTimeoutSeconds"`
	MonitorIntervalSecs int `yaml:"monitorIntervalSeconds"`

	RedisAddr          string  `yaml:"redisAddr"`
	RedisPassword      string  `yaml:"redisPassword"`
	DedupCapacity      uint64  `yaml:"dedupCapacity"`
	DedupFalsePositive float64 `yaml:"dedupFalsePositiveRate"`
	DedupRotateHours   int     `yaml:"dedupRotateHours"`
	DedupTTLHours      int     `yaml:"dedupTtlHours"`

	TracingEnabled bool    `yaml:"tracingEnabled"`
	ServiceName    string  `yaml:"serviceName"`
	OTLPEndpoint   string  `yaml:"otlpEndpoint"`
	OTLPInsecure   bool    `yaml:"otlpInsecure"`
	SampleRatio    float64 `yaml:"sampleRatio"`
}

// LoadConfig reads YAML from filePath, applies environment overrides, then
// fills defaults. An empty or missing filePath is not an error — LoadConfig
// falls back to environment variables and defaults alone.
func LoadConfig(filePath string) (*Config, error) {
	var c Config
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(&c)
	applyDefaults(&c)

	log.Printf("file processing server config: port=%d storageDir=%s coreWorkers=%d maxWorkers=%d redisAddr=%s tracingEnabled=%v\n",
		c.Port, c.StorageDir, c.CoreWorkers, c.MaxWorkers, c.RedisAddr, c.TracingEnabled)
	return &c, nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		c.StorageDir = v
	}
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxFileSize = n
		}
	}
	if v := os.Getenv("CORE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CoreWorkers = n
		}
	}
	if v := os.Getenv("MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxWorkers = n
		}
	}
	if v := os.Getenv("QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QueueCapacity = n
		}
	}
	if v := os.Getenv("RESIZE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ResizeThreshold = n
		}
	}
	if v := os.Getenv("IDLE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdleTimeoutSeconds = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		c.TracingEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.OTLPEndpoint = v
	}
}

func applyDefaults(c *Config) {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.StorageDir == "" {
		c.StorageDir = "/tmp/fileproc-storage"
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 200
	}
	if c.ResizeThreshold <= 0 {
		c.ResizeThreshold = 50
	}
	if c.IdleTimeoutSeconds <= 0 {
		c.IdleTimeoutSeconds = 60
	}
	if c.MonitorIntervalSecs <= 0 {
		c.MonitorIntervalSecs = 1
	}
	if c.DedupCapacity == 0 {
		c.DedupCapacity = 1_000_000
	}
	if c.DedupFalsePositive <= 0 {
		c.DedupFalsePositive = 0.01
	}
	if c.DedupRotateHours <= 0 {
		c.DedupRotateHours = 24
	}
	if c.DedupTTLHours <= 0 {
		c.DedupTTLHours = 24
	}
	if c.ServiceName == "" {
		c.ServiceName = "fileproc"
	}
	if c.SampleRatio <= 0 {
		c.SampleRatio = 1
	}
	// CoreWorkers and MaxWorkers are left at zero when unset so
	// workerpool.Config.withDefaults can apply its own CPU-derived
	// defaults instead of duplicating that logic here.
}

// Validate checks the handful of settings that must hold for the server to
// start safely. Most fields have usable defaults and need no validation.
func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, "port must be between 1 and 65535")
	}
	if c.MaxWorkers > 0 && c.CoreWorkers > c.MaxWorkers {
		errs = append(errs, "coreWorkers must not exceed maxWorkers")
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, "maxFileSize must not be negative")
	}
	if c.DedupFalsePositive <= 0 || c.DedupFalsePositive >= 1 {
		errs = append(errs, "dedupFalsePositiveRate must be between 0 and 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IdleTimeout returns the configured worker idle timeout as a Duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// MonitorInterval returns the configured pool monitor tick as a Duration.
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalSecs) * time.Second
}

// DedupRotateEvery returns how often the dedup cache's Bloom filter
// rotates as a Duration.
func (c *Config) DedupRotateEvery() time.Duration {
	return time.Duration(c.DedupRotateHours) * time.Hour
}

// DedupTTL returns the Redis TTL applied to dedup cache entries.
func (c *Config) DedupTTL() time.Duration {
	return time.Duration(c.DedupTTLHours) * time.Hour
}
