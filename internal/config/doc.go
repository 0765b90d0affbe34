// Package config provides configuration structures and utilities for TrustGuard.
// It defines the runtime options for the semantic model, company verification,
// scoring weights, caching, history storage and report output, and loads
// overrides from a YAML configuration file.
package config
