package config

// Context names a platform environment the CLI can talk to.
type Context struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

// Config is the persisted CLI configuration (~/.airvend/config.yaml).
type Config struct {
	Current  string             `yaml:"current"`
	Contexts map[string]Context `yaml:"contexts"`
}
