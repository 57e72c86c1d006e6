// Package config loads the settings of the charts tools from a YAML file and
// from the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/midbel/charts/v2"
	"github.com/midbel/charts/v2/load"
)

const envPrefix = "CHARTS"

type Config struct {
	Chart   ChartConfig   `mapstructure:"chart"   yaml:"chart"`
	Ticks   TicksConfig   `mapstructure:"ticks"   yaml:"ticks"`
	Input   InputConfig   `mapstructure:"input"   yaml:"input"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type ChartConfig struct {
	Width    float64       `mapstructure:"width"     yaml:"width"`
	Height   float64       `mapstructure:"height"    yaml:"height"`
	Padding  PaddingConfig `mapstructure:"padding"   yaml:"padding"`
	Duration time.Duration `mapstructure:"duration"  yaml:"duration"`
	RescaleY bool          `mapstructure:"rescale_y" yaml:"rescale_y"`
	Dash     []int         `mapstructure:"dash"      yaml:"dash"`
	Inner    float64       `mapstructure:"inner"     yaml:"inner"` // band padding
	Outer    float64       `mapstructure:"outer"     yaml:"outer"`
}

type PaddingConfig struct {
	Top    float64 `mapstructure:"top"    yaml:"top"`
	Right  float64 `mapstructure:"right"  yaml:"right"`
	Bottom float64 `mapstructure:"bottom" yaml:"bottom"`
	Left   float64 `mapstructure:"left"   yaml:"left"`
}

type TicksConfig struct {
	DayFormat  string  `mapstructure:"day_format"  yaml:"day_format"`
	YearFormat string  `mapstructure:"year_format" yaml:"year_format"`
	Offset     int     `mapstructure:"offset"      yaml:"offset"`
	FontSize   float64 `mapstructure:"font_size"   yaml:"font_size"`
}

type InputConfig struct {
	Delimiter   string `mapstructure:"delimiter"   yaml:"delimiter"`
	TimeFormat  string `mapstructure:"time_format" yaml:"time_format"`
	Sheet       string `mapstructure:"sheet"       yaml:"sheet"`
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
}

type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr is the address the API server listens on.
func (c APIConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads charts.yaml from ./config, $HOME/.charts or /etc/charts, the
// first found winning. A missing file is not an error. Environment variables
// prefixed by CHARTS_ override the file, e.g. CHARTS_CHART_WIDTH.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("charts")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".charts"))
	v.AddConfigPath("/etc/charts")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chart.width", charts.DefaultWidth)
	v.SetDefault("chart.height", charts.DefaultHeight)
	v.SetDefault("chart.padding.top", charts.DefaultPadding.Top)
	v.SetDefault("chart.padding.right", charts.DefaultPadding.Right)
	v.SetDefault("chart.padding.bottom", charts.DefaultPadding.Bottom)
	v.SetDefault("chart.padding.left", charts.DefaultPadding.Left)
	v.SetDefault("chart.duration", charts.DefaultDuration)
	v.SetDefault("chart.rescale_y", true)
	v.SetDefault("chart.dash", []int{})
	v.SetDefault("chart.inner", 0.2)
	v.SetDefault("chart.outer", 0.1)

	v.SetDefault("ticks.day_format", charts.DefaultDayFormat)
	v.SetDefault("ticks.year_format", charts.DefaultYearFormat)
	v.SetDefault("ticks.offset", 0)
	v.SetDefault("ticks.font_size", charts.FontSize)

	v.SetDefault("input.delimiter", load.DefaultDelimiter)
	v.SetDefault("input.time_format", load.DefaultTimeFormat)
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.concurrency", 4)

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func (c *Config) Validate() error {
	if c.Chart.Width <= c.Chart.Padding.Left+c.Chart.Padding.Right {
		return fmt.Errorf("chart.width %g leaves no room for padding", c.Chart.Width)
	}
	if c.Chart.Height <= c.Chart.Padding.Top+c.Chart.Padding.Bottom {
		return fmt.Errorf("chart.height %g leaves no room for padding", c.Chart.Height)
	}
	if c.Chart.Inner < 0 || c.Chart.Inner > 1 {
		return fmt.Errorf("chart.inner must be between 0 and 1, got %g", c.Chart.Inner)
	}
	if utf8Len(c.Input.Delimiter) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	if _, err := charts.NewDateFormatter(c.Ticks.DayFormat, c.Ticks.YearFormat); err != nil {
		return fmt.Errorf("ticks: %w", err)
	}
	return nil
}

// Options converts the settings to the options of a chart.
func (c *Config) Options() charts.Config {
	cfg := charts.DefaultConfig()
	cfg.Width = c.Chart.Width
	cfg.Height = c.Chart.Height
	cfg.Padding = charts.Padding{
		Top:    c.Chart.Padding.Top,
		Right:  c.Chart.Padding.Right,
		Bottom: c.Chart.Padding.Bottom,
		Left:   c.Chart.Padding.Left,
	}
	cfg.Duration = c.Chart.Duration
	cfg.RescaleY = c.Chart.RescaleY
	cfg.Dash = append([]int(nil), c.Chart.Dash...)
	cfg.DayFormat = c.Ticks.DayFormat
	cfg.YearFormat = c.Ticks.YearFormat
	cfg.TickOffset = c.Ticks.Offset
	cfg.FontSize = c.Ticks.FontSize
	return cfg
}

func (c *Config) Loader() load.Options {
	return load.Options{
		Delimiter:   []rune(c.Input.Delimiter)[0],
		TimeFormat:  c.Input.TimeFormat,
		Sheet:       c.Input.Sheet,
		Concurrency: c.Input.Concurrency,
	}
}

func utf8Len(s string) int {
	return len([]rune(s))
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
