package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AppConfig holds the client configuration
type AppConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	DownloadDir    string        `mapstructure:"download_dir"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	LogCapacity    int           `mapstructure:"log_capacity"`
	LogLevel       string        `mapstructure:"log_level"`
	Surface        string        `mapstructure:"surface"`
	ChromePath     string        `mapstructure:"chrome_path"`
	ChromeProfile  string        `mapstructure:"chrome_profile_dir"`
	CheckUpdates   bool          `mapstructure:"check_updates"`
}

const (
	SurfaceChrome  = "chrome"
	SurfaceBrowser = "browser"
)

const envPrefix = "MUTABAKAT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://127.0.0.1:5000")
	v.SetDefault("download_dir", "./downloads")
	v.SetDefault("rate_limit", 5)
	v.SetDefault("rate_burst", 5)
	v.SetDefault("request_timeout", 0)
	v.SetDefault("max_upload_bytes", 500*1024*1024)
	v.SetDefault("log_capacity", 1000)
	v.SetDefault("log_level", "info")
	v.SetDefault("surface", SurfaceChrome)
	v.SetDefault("chrome_path", "")
	v.SetDefault("chrome_profile_dir", "")
	v.SetDefault("check_updates", true)
}

// LoadConfig reads config.yaml from path (when present), the environment and
// a .env file in the working directory, in increasing order of precedence for
// the environment. The result is not validated; callers apply their overrides
// first and then call Validate.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system envs")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Debugf("Could not find config file, using defaults: %v", err)
	}

	var appConfig AppConfig
	if err := v.Unmarshal(&appConfig); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &appConfig, nil
}

func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	switch c.Surface {
	case SurfaceChrome, SurfaceBrowser:
	default:
		return fmt.Errorf("invalid surface %q (want %q or %q)", c.Surface, SurfaceChrome, SurfaceBrowser)
	}
	if c.LogCapacity < 1 {
		return fmt.Errorf("log_capacity must be positive, got %d", c.LogCapacity)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must not be negative, got %d", c.MaxUploadBytes)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
