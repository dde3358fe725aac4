// config.go - YAML application configuration

package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// CollaboratorConfig holds the optional description service settings. The
// key falls back to OPENAI_API_KEY so it never has to live in a file.
type CollaboratorConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AppConfig is the on-disk configuration. Every field has a working
// default; LoadConfig always hands back a usable value even when it
// reports an error.
type AppConfig struct {
	Profile     string `yaml:"profile"`
	LuaProfile  string `yaml:"lua_profile"`
	SampleGap   int    `yaml:"sample_gap"`
	GrainCount  int    `yaml:"grain_count"`
	Seed        int64  `yaml:"seed"`
	RefreshRate int    `yaml:"refresh_rate"`
	Scale       int    `yaml:"scale"`
	SnapshotDir string `yaml:"snapshot_dir"`
	DownloadDir string `yaml:"download_dir"`
	Chime       bool   `yaml:"chime"`
	LogLevel    string `yaml:"log_level"`

	Collaborator CollaboratorConfig `yaml:"collaborator"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() AppConfig {
	return AppConfig{
		Profile:     "default",
		SampleGap:   DefaultSampleGap,
		GrainCount:  defaultGrainCnt,
		RefreshRate: 60,
		Scale:       1,
		SnapshotDir: ".",
		DownloadDir: ".",
		Chime:       true,
		LogLevel:    "info",
		Collaborator: CollaboratorConfig{
			Model: defaultCollaboratorModel,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns
// the defaults unchanged.
func LoadConfig(path string) (AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &EngineError{Operation: "config load", Details: path, Err: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &EngineError{Operation: "config parse", Details: path, Err: err}
	}
	cfg.normalize()
	return cfg, nil
}

// normalize pulls out-of-range values back to usable ones rather than
// rejecting the file.
func (c *AppConfig) normalize() {
	if c.Profile == "" {
		c.Profile = "default"
	}
	if c.SampleGap < minSampleGap || c.SampleGap > maxSampleGap {
		c.SampleGap = DefaultSampleGap
	}
	if c.GrainCount < minGrainCount {
		c.GrainCount = minGrainCount
	}
	if c.GrainCount > maxGrainCount {
		c.GrainCount = maxGrainCount
	}
	if c.RefreshRate < 24 || c.RefreshRate > 240 {
		c.RefreshRate = 60
	}
	c.Scale = clampScale(c.Scale)
	if c.SnapshotDir == "" {
		c.SnapshotDir = "."
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Collaborator.Model == "" {
		c.Collaborator.Model = defaultCollaboratorModel
	}
	if c.Collaborator.APIKey == "" {
		c.Collaborator.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

func clampScale(scale int) int {
	if scale < 1 {
		return 1
	}
	if scale > 4 {
		return 4
	}
	return scale
}
