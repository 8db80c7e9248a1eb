package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is everything the commands read from .annals.yaml and the
// environment.
type Config interface {
	BasePath() string
	LogLevel() string
	IntervalPolicy() string
	Cascade() string
	ZoomDefault() int
}

const (
	DefaultPath           = "~/.annals.db"
	DefaultLogLevel       = "info"
	DefaultIntervalPolicy = "clamp"
	DefaultCascade        = "descendants"
	DefaultZoom           = 100
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// LoadConfig reads .annals.yaml from $ANNALS_CONFIG_PATH or the working
// directory. A missing file is fine; every key has a default and can be set
// as ANNALS_<KEY> (dots become underscores).
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("layout.interval_policy", DefaultIntervalPolicy)
	v.SetDefault("delete.cascade", DefaultCascade)
	v.SetDefault("zoom.default", DefaultZoom)

	v.SetConfigName(".annals") // .yaml is implicit
	v.SetEnvPrefix("ANNALS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if override := os.Getenv("ANNALS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:     path,
		Level:    v.GetString("log.level"),
		Policy:   v.GetString("layout.interval_policy"),
		OnDelete: v.GetString("delete.cascade"),
		Zoom:     v.GetInt("zoom.default"),
	}, nil
}

// StaticConfig is a Config fixed at construction, used by tests and by
// callers that already know the base path.
func StaticConfig(path string) Config {
	return &fileConfig{
		Path:     path,
		Level:    DefaultLogLevel,
		Policy:   DefaultIntervalPolicy,
		OnDelete: DefaultCascade,
		Zoom:     DefaultZoom,
	}
}

type fileConfig struct {
	Path     string `json:"path"`
	Level    string `json:"log.level"`
	Policy   string `json:"layout.interval_policy"`
	OnDelete string `json:"delete.cascade"`
	Zoom     int    `json:"zoom.default"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) LogLevel() string       { return f.Level }
func (f *fileConfig) IntervalPolicy() string { return f.Policy }
func (f *fileConfig) Cascade() string        { return f.OnDelete }
func (f *fileConfig) ZoomDefault() int       { return f.Zoom }
