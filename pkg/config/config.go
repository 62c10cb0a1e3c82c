package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/thomhuang/MonumentsByPostcode/pkg/logger"
)

type Config struct {
	MonumentsPath      string        `mapstructure:"MONUMENTS_PATH" validate:"required"`
	MonumentsNameField string        `mapstructure:"MONUMENTS_NAME_FIELD" validate:"required"`
	MonumentsEPSG      int           `mapstructure:"MONUMENTS_EPSG" validate:"omitempty,oneof=4326 27700"`
	PostcodesPath      string        `mapstructure:"POSTCODES_PATH" validate:"required_without=PostcodesDSN"`
	PostcodesEntry     string        `mapstructure:"POSTCODES_ENTRY"`
	PostcodesDSN       string        `mapstructure:"POSTCODES_DSN"`
	PostcodesTable     string        `mapstructure:"POSTCODES_TABLE" validate:"required_with=PostcodesDSN"`
	FetchTimeout       time.Duration `mapstructure:"FETCH_TIMEOUT" validate:"gt=0"`
	FinderLimit        int           `mapstructure:"FINDER_LIMIT" validate:"min=1,max=1000"`
	MapCenterLat       float64       `mapstructure:"MAP_CENTER_LAT" validate:"min=-90,max=90"`
	MapCenterLon       float64       `mapstructure:"MAP_CENTER_LON" validate:"min=-180,max=180"`
	MapZoom            int           `mapstructure:"MAP_ZOOM" validate:"min=0,max=19"`
	AnnotatePostcode   bool          `mapstructure:"MAP_ANNOTATE_POSTCODE"`
	APIPort            int           `mapstructure:"API_PORT" validate:"min=1,max=65535"`
	APITimeout         time.Duration `mapstructure:"API_TIMEOUT" validate:"gt=0"`
	LogLevel           int           `mapstructure:"LOG_LEVEL" validate:"min=-1,max=5"`
	LogTimeFormat      string        `mapstructure:"LOG_TIME_FORMAT" validate:"required"`
}

var keys = []string{
	"MONUMENTS_PATH", "MONUMENTS_NAME_FIELD", "MONUMENTS_EPSG",
	"POSTCODES_PATH", "POSTCODES_ENTRY", "POSTCODES_DSN", "POSTCODES_TABLE",
	"FETCH_TIMEOUT", "FINDER_LIMIT",
	"MAP_CENTER_LAT", "MAP_CENTER_LON", "MAP_ZOOM", "MAP_ANNOTATE_POSTCODE",
	"API_PORT", "API_TIMEOUT", "LOG_LEVEL", "LOG_TIME_FORMAT",
}

func setDefaults() {
	viper.SetDefault("MONUMENTS_PATH", "Scheduled Monuments/Monuments2.shp")
	viper.SetDefault("MONUMENTS_NAME_FIELD", "Name")
	viper.SetDefault("MONUMENTS_EPSG", 0)
	viper.SetDefault("POSTCODES_PATH", "englishpostcodes3.csv")
	viper.SetDefault("POSTCODES_ENTRY", "")
	viper.SetDefault("POSTCODES_DSN", "")
	viper.SetDefault("POSTCODES_TABLE", "")
	viper.SetDefault("FETCH_TIMEOUT", "60s")
	viper.SetDefault("FINDER_LIMIT", 5)
	viper.SetDefault("MAP_CENTER_LAT", 52.4776)
	viper.SetDefault("MAP_CENTER_LON", 1.8944)
	viper.SetDefault("MAP_ZOOM", 6)
	viper.SetDefault("MAP_ANNOTATE_POSTCODE", false)
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "1000s")
	viper.SetDefault("LOG_LEVEL", logger.INFO_LEVEL)
	viper.SetDefault("LOG_TIME_FORMAT", time.RFC3339Nano)
}

// New reads config.yaml from the working directory when present, environment
// variables take precedence over it.
func New() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, k := range keys {
		_ = viper.BindEnv(k)
	}

	if err := viper.ReadInConfig(); err != nil {
		var typeErr viper.ConfigFileNotFoundError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Logger() logger.Configuration {
	return logger.Configuration{
		Level:      c.LogLevel,
		TimeFormat: c.LogTimeFormat,
	}
}
