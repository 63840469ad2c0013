// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix namespaces every environment variable read by cozy.galaxy services.
const Prefix = "COZY_GALAXY_"

// ParseEnv loads configuration from the process environment. Field tags are
// written without Prefix; `env:"WEB_HTTP_ADDR"` reads COZY_GALAXY_WEB_HTTP_ADDR.
func ParseEnv(target any) error {
	return parse(target, env.Options{Prefix: Prefix})
}

// ParseEnvFrom loads configuration from vars instead of the process
// environment. Keys must include Prefix.
func ParseEnvFrom(target any, vars map[string]string) error {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(target, env.Options{Prefix: Prefix, Environment: vars})
}

func parse(target any, opts env.Options) error {
	if target == nil {
		return errors.New("config target is required")
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
