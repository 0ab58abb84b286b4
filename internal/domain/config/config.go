package config

import (
	"gopkg.in/yaml.v3"
	domainerr "mdblog/internal/domain/errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	TimeZone    string `yaml:"time_zone"`
}

type Mode string

const (
	ModeHTML Mode = "html"
	ModeJSON Mode = "json"
)

type BuildConfig struct {
	SourceDir string    `yaml:"source_dir"`
	PublicDir string    `yaml:"public_dir"`
	ThemeDir  string    `yaml:"theme_dir"`
	Mode      Mode      `yaml:"mode"`
	Now       time.Time `yaml:"-"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "My Blog",
			Language: "en",
		},
		Build: BuildConfig{
			SourceDir: "posts",
			PublicDir: "generated",
			Mode:      ModeHTML,
			Now:       time.Now(),
		},
	}
}

// Location resolves Site.TimeZone; an empty zone means the local one.
func (s SiteConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(s.TimeZone)
	if tz == "" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if _, err := c.Site.Location(); err != nil {
		ve.Add("site.time_zone", "unknown time zone: "+c.Site.TimeZone)
	}

	if strings.TrimSpace(c.Build.SourceDir) == "" {
		ve.Add("build.source_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}

	switch c.Build.Mode {
	case "", ModeHTML, ModeJSON:
	default:
		ve.Add("build.mode", "must be 'html' or 'json'")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// fields present in the file override defaults, the rest keep Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.finish()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

func (c *Config) finish() {
	if c.Build.Now.IsZero() {
		c.Build.Now = time.Now()
	}
	if c.Build.Mode == "" {
		c.Build.Mode = ModeHTML
	}
}
