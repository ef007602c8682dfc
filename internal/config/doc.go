// Package config loads and validates the pipeline configuration from a YAML
// file. The resulting Config is passed explicitly into every stage — there is
// no process-wide settings object. Secrets (storage credentials, platform
// keys) are referenced by environment-variable name, never stored in the
// file itself.
package config
