package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type gitAuthorConfig struct {
	Name  string `koanf:"name"`
	Email string `koanf:"email"`
}

type gitConfig struct {
	Timeout       time.Duration   `koanf:"timeout"`
	InitTimeout   time.Duration   `koanf:"init_timeout"`
	WorkDir       string          `koanf:"work_dir"`
	BranchMatch   string          `koanf:"branch_match"`
	Author        gitAuthorConfig `koanf:"author"`
	CommitMessage string          `koanf:"commit_message"`
}

type githubConfig struct {
	Token   string `koanf:"token"`
	BaseURL string `koanf:"base_url"`
}

type gitlabConfig struct {
	Host     string `koanf:"host"`
	Username string `koanf:"username"`
	Token    string `koanf:"token"`
}

type storageConfig struct {
	DataDir  string `koanf:"data_dir"`
	InMemory bool   `koanf:"in_memory"`
}

type metricsConfig struct {
	Textfile string `koanf:"textfile"`
}

type Config struct {
	Git    gitConfig    `koanf:"git"`
	GitHub githubConfig `koanf:"github"`
	GitLab gitlabConfig `koanf:"gitlab"`

	Storage storageConfig `koanf:"storage"`
	Metrics metricsConfig `koanf:"metrics"`
}

// Overrides are values taken from command line flags. Non-empty fields win
// over every other source.
type Overrides struct {
	Path        string
	GitHubToken string
	GitLabToken string
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		Git: gitConfig{
			Timeout:     5 * time.Minute,
			InitTimeout: 15 * time.Minute,
			WorkDir:     "",
			BranchMatch: "substring",
			Author: gitAuthorConfig{
				Name:  "release-manager",
				Email: "release-manager@localhost",
			},
		},

		GitLab: gitlabConfig{
			Host:     "gitlab.com",
			Username: "oauth2",
		},

		Storage: storageConfig{
			DataDir: "./data",
		},
	}
}

func New(overrides Overrides) (Config, error) {
	cfg := Default()

	options := []config.Option{}
	yamlPath := overrides.Path
	if yamlPath == "" {
		yamlPath = os.Getenv("CONFIG_PATH")
	}
	if yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if overrides.GitHubToken != "" {
		cfg.GitHub.Token = overrides.GitHubToken
	}
	if overrides.GitLabToken != "" {
		cfg.GitLab.Token = overrides.GitLabToken
	}

	return cfg, nil
}
