package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIODESK_UI_PAGE_SIZE.
const EnvPrefix = "PORTFOLIODESK"

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Data     DataConfig     `mapstructure:"data"`
	UI       UIConfig       `mapstructure:"ui"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Notice   NoticeConfig   `mapstructure:"notice"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DataConfig points at the static loan document. Empty means the embedded sample.
type DataConfig struct {
	LoansPath string `mapstructure:"loans_path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	PageSize       int    `mapstructure:"page_size"`
	NarrowWidth    int    `mapstructure:"narrow_width"`
	OperatorName   string `mapstructure:"operator_name"`
	OperatorEmail  string `mapstructure:"operator_email"`
}

// UploadConfig tunes the upload dialog.
type UploadConfig struct {
	PreviewRows int           `mapstructure:"preview_rows"`
	SampleRows  int           `mapstructure:"sample_rows"`
	CloseDelay  time.Duration `mapstructure:"close_delay"`
	BannerDelay time.Duration `mapstructure:"banner_delay"`
}

// NoticeConfig holds notice register export settings.
type NoticeConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LogConfig holds the file logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Path returns the config file location: $PORTFOLIODESK_CONFIG or
// ~/.config/portfoliodesk/config.toml.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "portfoliodesk", "config.toml")
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	share := filepath.Join(home, ".local", "share", "portfoliodesk")

	v.SetDefault("database.path", filepath.Join(share, "portfolio.db"))
	v.SetDefault("data.loans_path", "")
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.narrow_width", 100)
	v.SetDefault("ui.operator_name", "Operator")
	v.SetDefault("ui.operator_email", "operator@example.com")
	v.SetDefault("upload.preview_rows", 15)
	v.SetDefault("upload.sample_rows", 3)
	v.SetDefault("upload.close_delay", "2s")
	v.SetDefault("upload.banner_delay", "3s")
	v.SetDefault("notice.output_dir", filepath.Join(share, "notices"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "portfoliodesk", "portfoliodesk.log"))
	v.SetDefault("metrics.addr", "")
}

// Load reads configuration from file and env. Env var overrides use prefix PORTFOLIODESK_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(Path()); statErr == nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("data.loans_path", cfg.Data.LoansPath)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.narrow_width", cfg.UI.NarrowWidth)
	v.Set("ui.operator_name", cfg.UI.OperatorName)
	v.Set("ui.operator_email", cfg.UI.OperatorEmail)
	v.Set("upload.preview_rows", cfg.Upload.PreviewRows)
	v.Set("upload.sample_rows", cfg.Upload.SampleRows)
	v.Set("upload.close_delay", cfg.Upload.CloseDelay.String())
	v.Set("upload.banner_delay", cfg.Upload.BannerDelay.String())
	v.Set("notice.output_dir", cfg.Notice.OutputDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.path", cfg.Log.Path)
	v.Set("metrics.addr", cfg.Metrics.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
