package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/midbel/charts/v2"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chart.Width != charts.DefaultWidth || cfg.Chart.Height != charts.DefaultHeight {
		t.Errorf("unexpected size %gx%g", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.Duration != charts.DefaultDuration || !cfg.Chart.RescaleY {
		t.Errorf("unexpected zoom settings %+v", cfg.Chart)
	}
	if cfg.Ticks.DayFormat != charts.DefaultDayFormat || cfg.Ticks.YearFormat != charts.DefaultYearFormat {
		t.Errorf("unexpected tick formats %+v", cfg.Ticks)
	}
	if cfg.Input.Delimiter != "," || cfg.Input.Concurrency != 4 {
		t.Errorf("unexpected input settings %+v", cfg.Input)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging settings %+v", cfg.Logging)
	}
	if got := cfg.API.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("unexpected api address %s", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	const content = `
chart:
  width: 1024
  padding:
    left: 80
  duration: 500ms
  rescale_y: false
  dash: [4, 2]
ticks:
  offset: 1
input:
  delimiter: ";"
logging:
  level: debug
  format: json
`
	file := filepath.Join(t.TempDir(), "charts.yaml")
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chart.Width != 1024 || cfg.Chart.Height != charts.DefaultHeight {
		t.Errorf("unexpected size %gx%g", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.Padding.Left != 80 || cfg.Chart.Padding.Top != charts.DefaultPadding.Top {
		t.Errorf("unexpected padding %+v", cfg.Chart.Padding)
	}
	if cfg.Chart.Duration != 500*time.Millisecond || cfg.Chart.RescaleY {
		t.Errorf("unexpected zoom settings %+v", cfg.Chart)
	}
	if !slices.Equal(cfg.Chart.Dash, []int{4, 2}) {
		t.Errorf("unexpected dash %v", cfg.Chart.Dash)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging settings %+v", cfg.Logging)
	}

	c := cfg.Options()
	if c.DrawingWidth() != 1024-80-charts.DefaultPadding.Right || c.TickOffset != 1 || c.RescaleY {
		t.Errorf("unexpected chart options %+v", c)
	}
	if opts := cfg.Loader(); opts.Delimiter != ';' {
		t.Errorf("unexpected delimiter %q", opts.Delimiter)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHARTS_CHART_WIDTH", "1200")
	t.Setenv("CHARTS_CHART_RESCALE_Y", "false")
	t.Setenv("CHARTS_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chart.Width != 1200 || cfg.Chart.RescaleY || cfg.Logging.Level != "warn" {
		t.Errorf("environment should override defaults, got %+v", cfg)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Errorf("missing file should be reported")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		Name   string
		Change func(*Config)
	}{
		{Name: "width", Change: func(c *Config) { c.Chart.Width = 50 }},
		{Name: "height", Change: func(c *Config) { c.Chart.Height = c.Chart.Padding.Top + c.Chart.Padding.Bottom }},
		{Name: "inner", Change: func(c *Config) { c.Chart.Inner = 1.5 }},
		{Name: "delimiter", Change: func(c *Config) { c.Input.Delimiter = ";;" }},
		{Name: "empty delimiter", Change: func(c *Config) { c.Input.Delimiter = "" }},
		{Name: "port", Change: func(c *Config) { c.API.Port = 70000 }},
		{Name: "year format", Change: func(c *Config) { c.Ticks.YearFormat = "%Y%" }},
	}
	for _, tt := range tests {
		cfg := *base
		tt.Change(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: error expected", tt.Name)
		}
	}
	if err := base.Validate(); err != nil {
		t.Errorf("defaults should be valid: %s", err)
	}
}
