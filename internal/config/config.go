// Package config loads the defaults of the command line tool.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/novemberborn/sixtyfour/pkg/base64json"
	"github.com/spf13/viper"
)

// JSONConfig holds the serialization defaults of the JSON commands.
type JSONConfig struct {
	// Indent is a number of spaces, or the literal indentation.
	Indent string `mapstructure:"indent"`

	// Keys is the allow-list of object member names. Nil keeps everything.
	Keys []string `mapstructure:"keys"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config holds configuration information for the command line tool.
type Config struct {
	Padding bool       `mapstructure:"padding"`
	JSON    JSONConfig `mapstructure:"json"`
	Log     LogConfig  `mapstructure:"log"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
}

// JSONOptions returns the serialization options described by the
// configuration.
func (c *Config) JSONOptions() *base64json.Options {
	return &base64json.Options{
		Keys:    c.JSON.Keys,
		Indent:  ParseIndent(c.JSON.Indent),
		Padding: c.Padding,
	}
}

// ParseIndent turns a number into that many spaces (clamped the same way
// base64json.IndentSpaces does), and returns anything else unchanged.
func ParseIndent(indent string) string {
	if n, err := strconv.Atoi(indent); err == nil {
		return base64json.IndentSpaces(n)
	}
	return indent
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("padding", false)
	v.SetDefault("json.indent", "")
	v.SetDefault("log.level", "warning")

	// No default: an unset allow-list must stay nil rather than empty.
	_ = v.BindEnv("json.keys")
}

// Load reads the configuration from the given file, or when path is empty
// from config.yaml in $HOME/.sixtyfour or /etc/sixtyfour if there is one.
//
// Environment variables prefixed with SIXTYFOUR_ override the file, for
// example SIXTYFOUR_JSON_KEYS=a,b.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("sixtyfour")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		home, err := homedir.Dir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".sixtyfour"))
		}
		v.AddConfigPath("/etc/sixtyfour")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var cfg Config
	err = v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}
