package config

import (
	"os"
	"strings"
)

// Environment is the deployment stage the process runs in. It decides the
// log encoding, whether password reset links are echoed in API responses and
// whether the bodies of unsent emails are logged.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads the stage from the process environment. CI=true takes
// precedence over ENV so pipelines never inherit a developer's setting.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps an ENV value to an Environment, ignoring case and
// surrounding space. Empty and unknown values mean Development.
func ParseEnvironment(value string) Environment {
	switch env := Environment(strings.ToLower(strings.TrimSpace(value))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

// IsDevelopment reports whether reset links and email bodies may be shown.
func (e Environment) IsDevelopment() bool {
	return e == Development
}

// ConsoleLogs reports whether logs use the console encoder instead of JSON.
func (e Environment) ConsoleLogs() bool {
	return e != Production
}
