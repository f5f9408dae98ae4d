package release

// FileName is the release definition file at the root of a release repository.
const FileName = "release.yml"

// DateLayout is the ISO 8601 calendar date used by schedules.
const DateLayout = "2006-01-02"

type Release struct {
	Version    string      `yaml:"version"              validate:"required"`
	Key        string      `yaml:"key,omitempty"`
	Project    string      `yaml:"project,omitempty"`
	Schedule   *Schedule   `yaml:"schedule,omitempty"`
	Components []Component `yaml:"components,omitempty" validate:"dive"`
}

type Schedule struct {
	Release string `yaml:"release"`
	Due     string `yaml:"due"`
	EOL     string `yaml:"eol"`
}

type Component struct {
	Name    string `yaml:"name"              validate:"required"`
	Version string `yaml:"version,omitempty"`
	Key     string `yaml:"key,omitempty"`
}
