package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/komsit37/sheetreport/pkg/sheetreport/a1"
	"github.com/komsit37/sheetreport/pkg/sheetreport/sheet"
)

// Spreadsheet backends.
const (
	BackendGoogle = "google"
	BackendYAML   = "yaml"
)

// Config holds all process configuration.
type Config struct {
	Backend          string        `mapstructure:"backend"`
	SheetID          string        `mapstructure:"sheet_id"`
	CredentialsFile  string        `mapstructure:"credentials_file"`
	Workbook         string        `mapstructure:"workbook"`
	InputRange       string        `mapstructure:"input_range"`
	OutputRange      string        `mapstructure:"output_range"`
	ValueInputOption string        `mapstructure:"value_input_option"`
	Port             string        `mapstructure:"port"`
	QuoteTimeout     time.Duration `mapstructure:"quote_timeout"`
	QuoteRPS         float64       `mapstructure:"quote_rps"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
}

var envKeys = map[string][]string{
	"backend":            {"SHEET_BACKEND"},
	"sheet_id":           {"GOOGLE_SHEET_ID", "SHEET_ID"},
	"credentials_file":   {"GOOGLE_APPLICATION_CREDENTIALS"},
	"workbook":           {"SHEET_WORKBOOK"},
	"input_range":        {"INPUT_RANGE"},
	"output_range":       {"OUTPUT_RANGE"},
	"value_input_option": {"VALUE_INPUT_OPTION"},
	"port":               {"PORT"},
	"quote_timeout":      {"QUOTE_TIMEOUT"},
	"quote_rps":          {"QUOTE_RPS"},
	"log_level":          {"LOG_LEVEL"},
	"log_format":         {"LOG_FORMAT"},
}

// Load reads .env (if present), then the optional config file, then the
// environment. Later sources win.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	v := viper.New()
	v.SetDefault("backend", BackendGoogle)
	v.SetDefault("credentials_file", "service-account.json")
	v.SetDefault("input_range", "Sheet1!E5:K9")
	v.SetDefault("output_range", "Sheet1!E15:K15")
	v.SetDefault("value_input_option", sheet.InputUserEntered)
	v.SetDefault("port", "3000")
	v.SetDefault("quote_timeout", 5*time.Second)
	v.SetDefault("quote_rps", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs and that both
// ranges parse.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGoogle:
		if c.SheetID == "" {
			return fmt.Errorf("sheet_id (GOOGLE_SHEET_ID) is required for the google backend")
		}
	case BackendYAML:
		if c.Workbook == "" {
			return fmt.Errorf("workbook (SHEET_WORKBOOK) is required for the yaml backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendGoogle, BackendYAML)
	}
	if _, _, err := c.Ranges(); err != nil {
		return err
	}
	switch c.ValueInputOption {
	case sheet.InputUserEntered, sheet.InputRaw:
	default:
		return fmt.Errorf("value_input_option must be %s or %s", sheet.InputUserEntered, sheet.InputRaw)
	}
	if c.QuoteRPS < 0 {
		return fmt.Errorf("quote_rps must not be negative")
	}
	return nil
}

// Ranges parses the input range and the output anchor.
func (c *Config) Ranges() (in, out a1.Range, err error) {
	if in, err = a1.Parse(c.InputRange); err != nil {
		return in, out, fmt.Errorf("input_range: %w", err)
	}
	if out, err = a1.Parse(c.OutputRange); err != nil {
		return in, out, fmt.Errorf("output_range: %w", err)
	}
	return in, out, nil
}
