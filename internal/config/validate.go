package config

import (
	"net/url"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return derrors.ConfigError("at least one source is required").Build()
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name == "" {
			return derrors.ConfigError("source name is required").WithContext("index", i).Build()
		}
		if _, dup := seen[s.Name]; dup {
			return derrors.ConfigError("duplicate source name").WithContext("source", s.Name).Build()
		}
		seen[s.Name] = struct{}{}

		switch s.Type {
		case SourceLocal:
			if s.Path == "" {
				return derrors.ConfigError("local source requires a path").WithContext("source", s.Name).Build()
			}
		case SourceGit:
			if s.URL == "" {
				return derrors.ConfigError("git source requires a url").WithContext("source", s.Name).Build()
			}
		default:
			return derrors.ConfigError("unknown source type").WithContext("source", s.Name).Build()
		}
	}

	if c.Site.BaseURL != "" {
		if _, err := url.Parse(c.Site.BaseURL); err != nil {
			return derrors.WrapError(err, derrors.CategoryConfig, "invalid site base_url").
				WithContext("base_url", c.Site.BaseURL).
				Build()
		}
	}
	if err := c.Build.Retry.validate(); err != nil {
		return err
	}
	if c.Refresh.Interval < 0 {
		return derrors.ConfigError("refresh interval must not be negative").Build()
	}
	return nil
}

// GitSources returns the sources fetched from git.
func (c *Config) GitSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Type == SourceGit {
			out = append(out, s)
		}
	}
	return out
}

func (r RetryConfig) validate() error {
	switch r.Backoff {
	case "", "fixed", "linear", "exponential":
	default:
		return derrors.ConfigError("unknown retry backoff").WithContext("backoff", r.Backoff).Build()
	}
	if r.Initial < 0 || r.Max < 0 {
		return derrors.ConfigError("retry delays must not be negative").Build()
	}
	if r.MaxRetries != nil && *r.MaxRetries < 0 {
		return derrors.ConfigError("retry max_retries must not be negative").Build()
	}
	return nil
}
