package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/render"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every configuration environment variable.
const EnvPrefix = "MODELBIND"

// Config is the complete application configuration.
type Config struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ScriptsDir string `yaml:"scripts_dir" envconfig:"SCRIPTS_DIR" default:"scripts" validate:"required"`
	DataExt    string `yaml:"data_ext" envconfig:"DATA_EXT" default:".txt" validate:"omitempty,startswith=."`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`

	DecimalSeparator  string `yaml:"decimal_separator" envconfig:"DECIMAL_SEPARATOR" default:"," validate:"required,nefield=GroupingSeparator"`
	GroupingSeparator string `yaml:"grouping_separator" envconfig:"GROUPING_SEPARATOR" default:" "`

	ListenAddr string `yaml:"listen_addr" envconfig:"LISTEN_ADDR" default:":8080" validate:"required"`
	WidgetURL  string `yaml:"widget_url" envconfig:"WIDGET_URL" validate:"omitempty,url"`
}

// Load builds a Config from defaults, the environment and, when path is not
// empty, the YAML file at path. The result is not validated yet so that
// flags can still be applied.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fault.New(fault.Config, "load environment", err)
	}

	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.New(fault.IO, "read config", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fault.New(fault.Config, path, err)
	}
	return &cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)

	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fault.Errorf(fault.Config, "validate", "%s", strings.Join(msgs, "; "))
		}
		return fault.New(fault.Config, "validate", err)
	}
	return nil
}

// NumberFormat returns the number format described by the separators.
func (c *Config) NumberFormat() render.NumberFormat {
	return render.NumberFormat{Decimal: c.DecimalSeparator, Grouping: c.GroupingSeparator}
}
